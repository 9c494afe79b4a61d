// Package config provides configuration management for the specloom CLI.
//
// Configuration is layered: defaults, then specloom.yaml, then SPECLOOM_*
// environment variables, then CLI flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string         `koanf:"state_path"`
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	Server       ServerConfig   `koanf:"server"`
	// Checks is the "validate" section of specloom.yaml. The field name
	// differs from the koanf key so it does not collide with the
	// Validate method.
	Checks ValidateConfig `koanf:"validate"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// ValidateConfig tunes the consistency checks.
type ValidateConfig struct {
	// Disabled lists rule IDs to skip (e.g. "OR01").
	Disabled []string `koanf:"disabled"`

	// Severity overrides the classified severity per violation kind,
	// keyed by violation name (e.g. "orphan-node: info").
	Severity map[string]string `koanf:"severity"`
}

// Default configuration values.
const (
	DefaultStateFile = ".specloom/state.db"
	DefaultAddr      = "127.0.0.1:8765"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
