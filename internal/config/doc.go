// Package config loads the daemon configuration from a JSON file,
// applies defaults for omitted fields and overlays sensitive credentials
// from environment variables.
package config
