// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for novamind.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/novamind-tui/internal/render"
	"github.com/jeranaias/novamind-tui/internal/textproc"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete novamind configuration.
type Config struct {
	Version string `toml:"version"`

	// API configuration
	API APIConfig `toml:"api"`

	// Output pipeline configuration
	Pipeline PipelineConfig `toml:"pipeline"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Memory configuration
	Memory MemoryConfig `toml:"memory"`
}

// APIConfig contains completion API settings.
type APIConfig struct {
	// BaseURL is the OpenRouter-compatible endpoint.
	BaseURL string `toml:"base_url"`
	// Model is the completion model identifier.
	Model string `toml:"model"`
	// Keys is the API key ring; the client rotates to the next key when the
	// current one is rejected or rate limited.
	Keys []string `toml:"keys"`
	// TimeoutSeconds bounds each completion request.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// PipelineConfig carries the sanitization tables as plain data, evaluated by
// internal/textproc in its documented order (forbidden phrases before role
// prefixes). Empty slices mean "use the built-in defaults".
type PipelineConfig struct {
	StripTokens      []string `toml:"strip_tokens"`
	ForbiddenPhrases []string `toml:"forbidden_phrases"`
	RoleNames        []string `toml:"role_names"`

	// Repetition thresholds. Zero means "use the default".
	RepetitionMinWords    int `toml:"repetition_min_words"`
	RepetitionMinSegment  int `toml:"repetition_min_segment"`
	RepetitionHalfPrefix  int `toml:"repetition_half_prefix"`
	RepetitionThirdPrefix int `toml:"repetition_third_prefix"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme is the named color palette: cosmic, matrix, sunset, ocean.
	Theme string `toml:"theme"`
	// BoxWidth is the outer width of response boxes.
	BoxWidth int `toml:"box_width"`
	// TypingIntervalMs paces the character-reveal animation; 0 disables it.
	TypingIntervalMs int `toml:"typing_interval_ms"`
}

// MemoryConfig contains persistence settings.
type MemoryConfig struct {
	// Enabled toggles conversation memory entirely.
	Enabled bool `toml:"enabled"`
	// DatabasePath overrides the default ~/.novamind/memory.db.
	DatabasePath string `toml:"database_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:        "https://openrouter.ai/api/v1",
			Model:          "openrouter/auto",
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			Theme:            "cosmic",
			BoxWidth:         render.DefaultBoxWidth,
			TypingIntervalMs: 12,
		},
		Memory: MemoryConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ConfigDir returns the novamind configuration directory (~/.novamind).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".novamind"), nil
}

// Path returns the active config file path, honoring NOVAMIND_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("NOVAMIND_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration file, applies environment overrides, and
// validates the result. A missing file is not an error: defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.normalize()
	return cfg, nil
}

// applyEnvOverrides layers environment variables over file values.
func (c *Config) applyEnvOverrides() {
	if keys := os.Getenv("NOVAMIND_API_KEYS"); keys != "" {
		c.API.Keys = nil
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.API.Keys = append(c.API.Keys, k)
			}
		}
	} else if key := os.Getenv("NOVAMIND_API_KEY"); key != "" {
		c.API.Keys = []string{strings.TrimSpace(key)}
	}

	if theme := os.Getenv("NOVAMIND_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if model := os.Getenv("NOVAMIND_MODEL"); model != "" {
		c.API.Model = model
	}
}

// normalize clamps nonsense values back to usable ones.
func (c *Config) normalize() {
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 60
	}
	if c.UI.BoxWidth <= 0 {
		c.UI.BoxWidth = render.DefaultBoxWidth
	}
	if c.UI.TypingIntervalMs < 0 {
		c.UI.TypingIntervalMs = 0
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "cosmic"
	}
}

// Save writes the configuration as TOML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// =============================================================================
// PIPELINE WIRING
// =============================================================================

// TextprocConfig converts the pipeline tables into an immutable sanitization
// config for internal/textproc, substituting defaults for empty tables.
func (c *Config) TextprocConfig() textproc.Config {
	tokens := c.Pipeline.StripTokens
	if len(tokens) == 0 {
		tokens = textproc.DefaultStripTokens
	}
	phrases := c.Pipeline.ForbiddenPhrases
	if len(phrases) == 0 {
		phrases = textproc.DefaultForbiddenPhrases
	}
	roles := c.Pipeline.RoleNames
	if len(roles) == 0 {
		roles = textproc.DefaultRoleNames
	}

	th := textproc.DefaultThresholds()
	if c.Pipeline.RepetitionMinWords > 0 {
		th.MinWords = c.Pipeline.RepetitionMinWords
	}
	if c.Pipeline.RepetitionMinSegment > 0 {
		th.MinSegment = c.Pipeline.RepetitionMinSegment
	}
	if c.Pipeline.RepetitionHalfPrefix > 0 {
		th.HalfPrefix = c.Pipeline.RepetitionHalfPrefix
	}
	if c.Pipeline.RepetitionThirdPrefix > 0 {
		th.ThirdPrefix = c.Pipeline.RepetitionThirdPrefix
	}

	return textproc.NewConfig(tokens, phrases, roles, th)
}

// DatabasePath returns the memory database location.
func (c *Config) DatabasePath() (string, error) {
	if c.Memory.DatabasePath != "" {
		return c.Memory.DatabasePath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "memory.db"), nil
}
