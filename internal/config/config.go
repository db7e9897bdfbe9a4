package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is wrapped by all validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Script ScriptConfig `toml:"script"`
	Log    LogConfig    `toml:"log"`
	Store  StoreConfig  `toml:"store"`
}

// EditorConfig controls the editing core.
type EditorConfig struct {
	// IndentUnit is the text inserted for Tab.
	IndentUnit string `toml:"indent_unit"`

	// DebounceMillis is the history quiet period in milliseconds.
	DebounceMillis int `toml:"debounce_millis"`

	// HistoryLimit caps the number of history snapshots per document.
	HistoryLimit int `toml:"history_limit"`

	// AutoPair enables bracket pair insertion, overtype, and deletion.
	AutoPair bool `toml:"auto_pair"`

	// ListContinuation enables list continuation on Enter.
	ListContinuation bool `toml:"list_continuation"`
}

// ScriptConfig controls the Lua transform host.
type ScriptConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// StoreConfig controls persistence.
type StoreConfig struct {
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			IndentUnit:       "  ",
			DebounceMillis:   700,
			HistoryLimit:     50,
			AutoPair:         true,
			ListContinuation: true,
		},
		Script: ScriptConfig{
			Enabled: false,
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Path: "inkmark.json",
		},
	}
}

// Debounce returns the history debounce as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Editor.DebounceMillis) * time.Millisecond
}

var validLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the configuration for values the application cannot
// run with.
func (c Config) Validate() error {
	if c.Editor.IndentUnit == "" {
		return fmt.Errorf("%w: editor.indent_unit must not be empty", ErrInvalid)
	}
	if strings.Trim(c.Editor.IndentUnit, " \t") != "" {
		return fmt.Errorf("%w: editor.indent_unit must be spaces or tabs, got %q",
			ErrInvalid, c.Editor.IndentUnit)
	}
	if c.Editor.DebounceMillis <= 0 {
		return fmt.Errorf("%w: editor.debounce_millis must be positive, got %d",
			ErrInvalid, c.Editor.DebounceMillis)
	}
	if c.Editor.HistoryLimit <= 0 {
		return fmt.Errorf("%w: editor.history_limit must be positive, got %d",
			ErrInvalid, c.Editor.HistoryLimit)
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("%w: log.level %q is not a level name", ErrInvalid, c.Log.Level)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("%w: store.path must not be empty", ErrInvalid)
	}
	if c.Script.Enabled && c.Script.Dir == "" {
		return fmt.Errorf("%w: script.dir required when script.enabled", ErrInvalid)
	}
	return nil
}
