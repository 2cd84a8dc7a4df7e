// Package config loads, normalizes, and validates napi configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: destination and journal directories, subtitle language, worker
// bound, and the endpoints plus client identities of the two subtitle
// services.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
