// Package config loads, normalizes, and validates sceneloom configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI and pipeline need: artifact directories, merge thresholds, chunking
// targets, frame sampling, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
