// Package config loads lexstorm settings from a TOML file with
// LEXSTORM_* environment overrides layered on top. A missing config
// file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every user-tunable setting.
type Config struct {
	// Theme names the active color theme.
	Theme string `toml:"theme"`

	// Color selects colorization: "auto" (on for terminals), "always"
	// or "never".
	Color string `toml:"color"`

	// List shows the per-token listing after each render.
	List bool `toml:"list"`

	// Depth annotates nesting depth in the token listing.
	Depth bool `toml:"depth"`

	// Prompt and Continuation are the interactive prompts for fresh
	// input and for continued multi-line input.
	Prompt       string `toml:"prompt"`
	Continuation string `toml:"continuation"`

	// HistoryFile persists interactive input across sessions; empty
	// disables persistence. HistorySize bounds the entries kept.
	HistoryFile string `toml:"history_file"`
	HistorySize int    `toml:"history_size"`

	// ThemeDir holds user theme scripts, one .lua file per theme.
	// WatchThemes reloads scripts in place when they change on disk
	// and follows the config file's theme selection.
	ThemeDir    string `toml:"theme_dir"`
	WatchThemes bool   `toml:"watch_themes"`

	// LogFile receives diagnostics; empty discards them. LogLevel is
	// one of debug, info, warn, error.
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings. Paths derive from the user's
// home and config directories when those resolve; otherwise they stay
// empty and the features they gate are off.
func Default() Config {
	cfg := Config{
		Theme:        "storm",
		Color:        "auto",
		Depth:        true,
		Prompt:       "lex> ",
		Continuation: "...> ",
		HistorySize:  500,
		WatchThemes:  true,
		LogLevel:     "info",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".lexstorm_history")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.ThemeDir = filepath.Join(dir, "lexstorm", "themes")
	}
	return cfg
}

// DefaultPath returns the standard config file location, or "" when
// the user config directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lexstorm", "config.toml")
}

// Load reads the TOML file at path over the defaults. A missing file
// returns the defaults without error; a malformed one returns a
// *ParseError carrying the position go-toml reports.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, newParseError(path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no component could act on.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.LogLevel)
	}

	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	return nil
}

// ParseError positions a config file problem for display.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
		pe.Message = de.Error()
	}
	return pe
}
