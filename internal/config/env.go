package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix is the prefix shared by all override variables.
const EnvPrefix = "INKMARK_"

// envBinding ties one environment variable to one config field.
type envBinding struct {
	key   string
	apply func(cfg *Config, value string) error
}

var envBindings = []envBinding{
	{"EDITOR_INDENT_UNIT", func(c *Config, v string) error {
		c.Editor.IndentUnit = v
		return nil
	}},
	{"EDITOR_DEBOUNCE_MILLIS", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Editor.DebounceMillis = n
		return nil
	}},
	{"EDITOR_HISTORY_LIMIT", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Editor.HistoryLimit = n
		return nil
	}},
	{"EDITOR_AUTO_PAIR", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Editor.AutoPair = b
		return nil
	}},
	{"EDITOR_LIST_CONTINUATION", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Editor.ListContinuation = b
		return nil
	}},
	{"SCRIPT_ENABLED", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Script.Enabled = b
		return nil
	}},
	{"SCRIPT_DIR", func(c *Config, v string) error {
		c.Script.Dir = v
		return nil
	}},
	{"LOG_LEVEL", func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	}},
	{"STORE_PATH", func(c *Config, v string) error {
		c.Store.Path = v
		return nil
	}},
}

// applyEnv overlays INKMARK_* environment variables onto cfg. Set but
// unparseable values are errors rather than silent fallbacks.
func applyEnv(cfg *Config) error {
	for _, b := range envBindings {
		name := EnvPrefix + b.key
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := b.apply(cfg, value); err != nil {
			return fmt.Errorf("parse %s=%q: %w", name, value, err)
		}
	}
	return nil
}
