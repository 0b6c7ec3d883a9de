// Package config loads, normalizes, and validates stardate configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment overrides such as STARDATE_SCRIPTS_DIR.
// The Config type centralizes where the script corpus lives, how its files are
// named and encoded, where episode titles are scraped from, and how results
// are rendered and persisted.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical encodings and formats, and clear validation errors.
package config
