// Package config loads, validates, and normalizes shorttrack's TOML
// configuration. Paths are tilde-expanded and made absolute at load time so
// downstream packages never deal with relative locations.
package config
