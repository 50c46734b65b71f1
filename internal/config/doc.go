// Package config loads, normalizes, and validates dynoctl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DYNOCTL_HOST. The Config type centralizes every knob the commands need,
// from daemon endpoint defaults to trace request parameters and the history
// ledger location.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
