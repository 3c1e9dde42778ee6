// Package config loads, normalizes, and validates notarycheck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MANUAL_APPLE_ID and GITHUB_OUTPUT. A dotenv file, when present, is consulted
// after the process environment so local runs can keep credentials out of the
// TOML file.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
