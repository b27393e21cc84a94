// Package config loads, normalizes, and validates textpurge configuration.
//
// It supplies defaults that reproduce the classic command-line behaviour
// (threshold 0.6, "*.txt" files, single-threaded scan), expands user paths
// including tilde shortcuts, reads TOML files, and honours environment
// overrides such as TEXTPURGE_THRESHOLD. Command-line flags are applied on top
// of the loaded value by the CLI.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
