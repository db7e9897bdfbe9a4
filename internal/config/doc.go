// Package config loads and watches the application configuration.
//
// Configuration comes from three layers, lowest priority first:
// built-in defaults, a TOML file, and INKMARK_* environment variables.
// A missing config file is not an error; the defaults simply stand.
// The Watcher reloads the file on change, debouncing editor save
// bursts, and hands the re-parsed Config to a reload callback.
package config
