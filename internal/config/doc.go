// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides type-safe
// access to the settings of the HTTP server, token validation, the CV analyzer
// and CORS while keeping configuration details separate from request handling.
package config
