// Package config loads, normalizes, and validates farrdist configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the standard path-prefix
// environment variables (DESTDIR, PREFIX, EXEC_PREFIX, DATAROOTDIR). The
// Config type centralizes every knob the deployment commands need: project
// tree layout, install prefixes, the packaging command, and shebang policy.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
