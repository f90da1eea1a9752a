// Package config loads, normalizes, and validates podpull configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: database and audio cache locations, the feeds file, whisper model
// selection, HTTP timeouts, and export bounds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
