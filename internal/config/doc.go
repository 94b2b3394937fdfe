// Package config loads, normalizes, and validates Instatory configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the OPENAI_API_KEY environment
// fallback for the vision credential. The Config type centralizes every knob
// the CLI and pipeline need, so the uploads/inventory directory tree and the
// catalog database location are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
