// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory provides persistent conversation memory for NovaMind.
package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jeranaias/novamind-tui/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "memory.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.BeginSession(ctx, "First chat")
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("session ID should be generated")
	}

	got, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Title != "First chat" {
		t.Errorf("title = %q", got.Title)
	}
	if got.MessageCount != 0 {
		t.Errorf("message count = %d, want 0", got.MessageCount)
	}

	if err := s.SetSessionTitle(ctx, sess.ID, "Renamed"); err != nil {
		t.Fatalf("SetSessionTitle: %v", err)
	}
	got, _ = s.GetSession(ctx, sess.ID)
	if got.Title != "Renamed" {
		t.Errorf("title after rename = %q", got.Title)
	}

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := s.GetSession(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAppendAndRecentHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.BeginSession(ctx, "")
	if err != nil {
		t.Fatal(err)
	}

	contents := []string{"one", "two", "three", "four"}
	for i, c := range contents {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		msg := model.NewMessage(role, c)
		if err := s.AppendMessage(ctx, sess.ID, msg); err != nil {
			t.Fatalf("AppendMessage(%q): %v", c, err)
		}
	}

	// Last 3 messages, chronological order.
	hist, err := s.RecentHistory(ctx, sess.ID, 3)
	if err != nil {
		t.Fatalf("RecentHistory: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	want := []string{"two", "three", "four"}
	for i, m := range hist {
		if m.Content != want[i] {
			t.Errorf("hist[%d] = %q, want %q", i, m.Content, want[i])
		}
	}
	if hist[0].Role != model.RoleAssistant {
		t.Errorf("hist[0] role = %q, want assistant", hist[0].Role)
	}

	got, _ := s.GetSession(ctx, sess.ID)
	if got.MessageCount != 4 {
		t.Errorf("message count = %d, want 4", got.MessageCount)
	}
}

func TestAppendMessageUnknownSession(t *testing.T) {
	s := newTestStore(t)
	msg := model.NewUserMessage("hello")
	err := s.AppendMessage(context.Background(), "no-such-session", msg)
	if err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.BeginSession(ctx, "")
	s.AppendMessage(ctx, sess.ID, model.NewUserMessage("bye"))

	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}

	hist, err := s.RecentHistory(ctx, sess.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 0 {
		t.Errorf("messages should cascade-delete, got %d", len(hist))
	}
}

func TestSearchMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.BeginSession(ctx, "")
	s.AppendMessage(ctx, sess.ID, model.NewUserMessage("tell me about gophers"))
	s.AppendMessage(ctx, sess.ID, model.NewUserMessage("unrelated"))

	found, err := s.SearchMessages(ctx, "gopher", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(found) != 1 || found[0].Content != "tell me about gophers" {
		t.Errorf("search results = %v", found)
	}

	// LIKE wildcards in the query are literal.
	found, err = s.SearchMessages(ctx, "%", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Errorf("literal %% should match nothing, got %d results", len(found))
	}
}

func TestFacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RememberFact(ctx, "Name", "Ada"); err != nil {
		t.Fatalf("RememberFact: %v", err)
	}

	// Keys are case-insensitive.
	f, err := s.RecallFact(ctx, "name")
	if err != nil {
		t.Fatalf("RecallFact: %v", err)
	}
	if f.Value != "Ada" {
		t.Errorf("value = %q, want Ada", f.Value)
	}

	// Upsert replaces.
	if err := s.RememberFact(ctx, "name", "Grace"); err != nil {
		t.Fatal(err)
	}
	f, _ = s.RecallFact(ctx, "name")
	if f.Value != "Grace" {
		t.Errorf("value after upsert = %q, want Grace", f.Value)
	}

	facts, err := s.ListFacts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(facts) != 1 {
		t.Errorf("fact count = %d, want 1", len(facts))
	}

	if err := s.ForgetFact(ctx, "NAME"); err != nil {
		t.Fatalf("ForgetFact: %v", err)
	}
	if _, err := s.RecallFact(ctx, "name"); !errors.Is(err, ErrFactNotFound) {
		t.Errorf("err = %v, want ErrFactNotFound", err)
	}
	if err := s.ForgetFact(ctx, "name"); !errors.Is(err, ErrFactNotFound) {
		t.Errorf("double forget err = %v, want ErrFactNotFound", err)
	}
}

func TestRememberFactEmptyKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.RememberFact(context.Background(), "  ", "x"); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, _ := s.BeginSession(ctx, "")
	user := model.NewUserMessage("hi")
	user.TokenCount = 3
	s.AppendMessage(ctx, sess.ID, user)

	asst := model.NewMessage(model.RoleAssistant, "hello")
	asst.TokenCount = 7
	s.AppendMessage(ctx, sess.ID, asst)

	s.RememberFact(ctx, "color", "green")

	st, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if st.SessionCount != 1 || st.MessageCount != 2 {
		t.Errorf("sessions/messages = %d/%d, want 1/2", st.SessionCount, st.MessageCount)
	}
	if st.UserMessages != 1 || st.AssistantMessages != 1 {
		t.Errorf("user/assistant = %d/%d, want 1/1", st.UserMessages, st.AssistantMessages)
	}
	if st.FactCount != 1 {
		t.Errorf("facts = %d, want 1", st.FactCount)
	}
	if st.TotalTokens != 10 {
		t.Errorf("tokens = %d, want 10", st.TotalTokens)
	}
}

func TestListSessionsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.BeginSession(ctx, "a")
	b, _ := s.BeginSession(ctx, "b")

	// Touching a session bumps it to the top.
	s.AppendMessage(ctx, a.ID, model.NewUserMessage("bump"))

	sessions, err := s.ListSessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("session count = %d, want 2", len(sessions))
	}
	_ = b
}

func TestFavoriteTopic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.BeginSession(ctx, "")
	if err != nil {
		t.Fatalf("BeginSession: %v", err)
	}

	for _, text := range []string{
		"tell me about goroutines",
		"how do goroutines compare to threads?",
		"Goroutines again, please.",
	} {
		if err := s.AppendMessage(ctx, sess.ID, model.NewUserMessage(text)); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}

	topic, err := s.FavoriteTopic(ctx)
	if err != nil {
		t.Fatalf("FavoriteTopic: %v", err)
	}
	if topic != "goroutines" {
		t.Errorf("topic = %q, want goroutines", topic)
	}
}

func TestFavoriteTopicEmptyStore(t *testing.T) {
	s := newTestStore(t)

	topic, err := s.FavoriteTopic(context.Background())
	if err != nil {
		t.Fatalf("FavoriteTopic: %v", err)
	}
	if topic != "" {
		t.Errorf("topic = %q, want empty", topic)
	}
}
