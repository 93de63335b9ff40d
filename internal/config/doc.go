// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. Besides the HTTP server settings it carries
// the default catalog and shelf parameters and the upper bounds the API
// enforces on caller-supplied sizes.
package config
