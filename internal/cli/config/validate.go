package config

import (
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/check"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}
	for name, sev := range c.Checks.Severity {
		if _, ok := check.ParseSeverity(sev); !ok {
			return fmt.Errorf("validate.severity[%s]: unknown severity %q", name, sev)
		}
	}
	return nil
}

// CheckConfig builds the analyzer configuration from the validate
// section: disabled rule IDs and per-violation severity overrides.
func (c *Config) CheckConfig() (*check.Config, error) {
	cc := check.NewConfig()
	for _, id := range c.Checks.Disabled {
		cc.Disable(id)
	}
	for name, sev := range c.Checks.Severity {
		parsed, ok := check.ParseSeverity(sev)
		if !ok {
			return nil, fmt.Errorf("validate.severity[%s]: unknown severity %q", name, sev)
		}
		cc.SetSeverity(check.Violation(name), parsed)
	}
	return cc, nil
}
