// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory provides persistent conversation memory for NovaMind.
package memory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/novamind-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrFactNotFound    = errors.New("fact not found")
)

// =============================================================================
// TYPES
// =============================================================================

// Session describes one chat session.
type Session struct {
	ID           string
	Title        string
	StartedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

// StoredMessage is one persisted transcript entry.
type StoredMessage struct {
	ID         string
	SessionID  string
	Role       model.Role
	Content    string
	TokenCount int
	CreatedAt  time.Time
}

// Fact is a remembered key/value pair, global across sessions.
type Fact struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Stats summarizes stored history.
type Stats struct {
	SessionCount      int
	MessageCount      int
	UserMessages      int
	AssistantMessages int
	FactCount         int
	TotalTokens       int
}

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite-backed memory store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the memory database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initSchema creates tables if they do not exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL DEFAULT '',
		started_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		role        TEXT NOT NULL,
		content     TEXT NOT NULL,
		token_count INTEGER NOT NULL DEFAULT 0,
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, created_at);

	CREATE TABLE IF NOT EXISTS facts (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// SESSIONS
// =============================================================================

// BeginSession creates a new session row and returns it.
func (s *Store) BeginSession(ctx context.Context, title string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		Title:     title,
		StartedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, title, started_at, updated_at) VALUES (?, ?, ?, ?)",
		sess.ID, sess.Title, now.Unix(), now.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// GetSession fetches a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	var started, updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.title, s.started_at, s.updated_at,
		        (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id)
		 FROM sessions s WHERE s.id = ?`, id).
		Scan(&sess.ID, &sess.Title, &started, &updated, &sess.MessageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	sess.StartedAt = time.Unix(started, 0)
	sess.UpdatedAt = time.Unix(updated, 0)
	return &sess, nil
}

// ListSessions returns sessions newest-first, up to limit (0 = all).
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	query := `SELECT s.id, s.title, s.started_at, s.updated_at,
	                 (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id)
	          FROM sessions s ORDER BY s.updated_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started, updated int64
		if err := rows.Scan(&sess.ID, &sess.Title, &started, &updated, &sess.MessageCount); err != nil {
			return nil, err
		}
		sess.StartedAt = time.Unix(started, 0)
		sess.UpdatedAt = time.Unix(updated, 0)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SetSessionTitle updates a session title.
func (s *Store) SetSessionTitle(ctx context.Context, id, title string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET title = ?, updated_at = ? WHERE id = ?",
		title, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes a session and, via cascade, its messages.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// AppendMessage persists a message to a session's transcript.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, msg *model.Message) error {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO messages (id, session_id, role, content, token_count, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, sessionID, string(msg.Role), msg.Content, msg.TokenCount, now.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE sessions SET updated_at = ? WHERE id = ?", now.Unix(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}

	return tx.Commit()
}

// RecentHistory returns the last n messages of a session in chronological
// order, suitable for rebuilding completion context.
func (s *Store) RecentHistory(ctx context.Context, sessionID string, n int) ([]StoredMessage, error) {
	// Order by rowid: timestamps have second resolution, so a burst of
	// messages would tie on created_at. rowid preserves insertion order.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, token_count, created_at
		 FROM (
			SELECT rowid, * FROM messages WHERE session_id = ?
			ORDER BY rowid DESC LIMIT ?
		 ) ORDER BY rowid ASC`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var role string
		var created int64
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.TokenCount, &created); err != nil {
			return nil, err
		}
		m.Role = model.Role(role)
		m.CreatedAt = time.Unix(created, 0)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// SearchMessages finds messages whose content contains the query string.
func (s *Store) SearchMessages(ctx context.Context, query string, limit int) ([]StoredMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(query, "%", `\%`), "_", `\_`) + "%"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, token_count, created_at
		 FROM messages WHERE content LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var role string
		var created int64
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.TokenCount, &created); err != nil {
			return nil, err
		}
		m.Role = model.Role(role)
		m.CreatedAt = time.Unix(created, 0)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// =============================================================================
// FACTS
// =============================================================================

// RememberFact stores or replaces a fact. Keys are case-insensitive.
func (s *Store) RememberFact(ctx context.Context, key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return errors.New("fact key cannot be empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO facts (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store fact: %w", err)
	}
	return nil
}

// RecallFact retrieves a fact by key.
func (s *Store) RecallFact(ctx context.Context, key string) (*Fact, error) {
	key = strings.ToLower(strings.TrimSpace(key))

	var f Fact
	var updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT key, value, updated_at FROM facts WHERE key = ?", key).
		Scan(&f.Key, &f.Value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to recall fact: %w", err)
	}
	f.UpdatedAt = time.Unix(updated, 0)
	return &f, nil
}

// ForgetFact removes a fact.
func (s *Store) ForgetFact(ctx context.Context, key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	res, err := s.db.ExecContext(ctx, "DELETE FROM facts WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to forget fact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFactNotFound
	}
	return nil
}

// ListFacts returns all facts sorted by key.
func (s *Store) ListFacts(ctx context.Context) ([]Fact, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value, updated_at FROM facts ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list facts: %w", err)
	}
	defer rows.Close()

	var facts []Fact
	for rows.Next() {
		var f Fact
		var updated int64
		if err := rows.Scan(&f.Key, &f.Value, &updated); err != nil {
			return nil, err
		}
		f.UpdatedAt = time.Unix(updated, 0)
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// =============================================================================
// STATS
// =============================================================================

// GetStats returns aggregate counts across the store.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM sessions),
			(SELECT COUNT(*) FROM messages),
			(SELECT COUNT(*) FROM messages WHERE role = 'user'),
			(SELECT COUNT(*) FROM messages WHERE role = 'assistant'),
			(SELECT COUNT(*) FROM facts),
			(SELECT COALESCE(SUM(token_count), 0) FROM messages)
	`).Scan(&st.SessionCount, &st.MessageCount, &st.UserMessages,
		&st.AssistantMessages, &st.FactCount, &st.TotalTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return &st, nil
}

// topicStopwords are common words excluded from topic frequency counting.
var topicStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "to": true,
	"of": true, "in": true, "on": true, "for": true, "with": true, "at": true,
	"by": true, "it": true, "this": true, "that": true, "i": true, "you": true,
	"me": true, "my": true, "your": true, "we": true, "they": true, "he": true,
	"she": true, "do": true, "does": true, "did": true, "can": true, "could": true,
	"would": true, "should": true, "what": true, "how": true, "why": true,
	"when": true, "where": true, "who": true, "which": true, "not": true,
	"no": true, "yes": true, "please": true, "tell": true, "about": true,
	"have": true, "has": true, "had": true, "will": true, "if": true, "so": true,
	"as": true, "from": true, "there": true, "here": true, "just": true,
}

// FavoriteTopic returns the most frequent non-stopword across user messages,
// or "" when there is not enough material. Ties break alphabetically so the
// result is deterministic.
func (s *Store) FavoriteTopic(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM messages WHERE role = 'user'`)
	if err != nil {
		return "", fmt.Errorf("failed to scan topics: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return "", err
		}
		for _, word := range strings.Fields(strings.ToLower(content)) {
			word = strings.Trim(word, ".,!?;:\"'()[]{}")
			if len(word) < 3 || topicStopwords[word] {
				continue
			}
			counts[word]++
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	best, bestCount := "", 1
	for word, n := range counts {
		if n > bestCount || (n == bestCount && best != "" && word < best) {
			best, bestCount = word, n
		}
	}
	return best, nil
}
