// Package config loads environment-driven configuration structs.
//
// A local .env file is loaded once per process when present, then
// struct fields are populated from `env` tags. Config structs stay
// small and per-package; this loader only glues the two libraries
// together with consistent errors.
package config
