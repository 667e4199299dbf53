// Package config loads and validates clipforge configuration from TOML.
// Defaults cover every field so the tool runs without a config file; a file,
// when present, overrides selectively.
package config
