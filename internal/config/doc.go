// Package config loads, normalizes, and validates engine configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ADMISSIONS_TARGET_YEAR
// environment fallback. The Config value is loaded once per run and then
// treated as immutable: the validator denylist, ranking weights, similarity
// threshold and identity allowlist are all derived from it and handed to
// their components by value.
//
// Always obtain settings through this package so downstream code receives
// trimmed keyword sets, canonical log formats, and clear validation errors.
package config
