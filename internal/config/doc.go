// Package config loads, normalizes, and validates mkvmux configuration.
//
// It supplies repository defaults, expands tilde shortcuts in paths, reads
// TOML files, and validates values before anything else runs. Always obtain
// settings through this package so downstream code receives sanitized paths
// and canonical log formats.
package config
