package check

import (
	"golang.org/x/sync/errgroup"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// Config controls which rules run and their severity.
type Config struct {
	// DisabledRules contains rule IDs to skip.
	DisabledRules map[string]bool

	// SeverityOverrides changes the classified severity of violation kinds.
	SeverityOverrides map[Violation]Severity
}

// NewConfig creates a default configuration with all rules enabled and
// the fixed severity classification in force.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[Violation]Severity),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a violation, applying any override.
func (c *Config) GetSeverity(v Violation, classified Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[v]; ok {
			return sev
		}
	}
	return classified
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a violation kind.
func (c *Config) SetSeverity(v Violation, severity Severity) *Config {
	c.SeverityOverrides[v] = severity
	return c
}

// Analyzer runs all registered rule checks against a graph snapshot.
// It holds no state between runs; each invocation is a pure function of
// the supplied snapshot.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// Validate analyzes the snapshot and returns the full report.
// The screens slice may be nil.
func (a *Analyzer) Validate(nodes []spec.Node, edges []spec.Edge, screens []spec.Screen) Report {
	return a.ValidateGraph(spec.NewGraph(nodes, edges, screens))
}

// ValidateGraph analyzes an already-indexed graph. Rule checks are
// independent, so they run concurrently; results merge in the canonical
// registry order to keep the report deterministic.
func (a *Analyzer) ValidateGraph(g *spec.Graph) Report {
	ctx := NewContext(g)
	rules := All()
	results := make([][]Issue, len(rules))

	var eg errgroup.Group
	for i, rule := range rules {
		if a.config.IsDisabled(rule.ID) {
			continue
		}
		eg.Go(func() error {
			results[i] = rule.Check(ctx)
			return nil
		})
	}
	// Checks are total functions; the group carries no errors.
	_ = eg.Wait()

	report := Report{Issues: []Issue{}}
	for _, issues := range results {
		for _, issue := range issues {
			issue.Severity = a.config.GetSeverity(issue.Violation, issue.Severity)
			report.Issues = append(report.Issues, issue)
		}
	}

	for _, issue := range report.Issues {
		report.Counts.Total++
		switch issue.Severity {
		case SeverityError:
			report.Counts.Error++
		case SeverityWarning:
			report.Counts.Warning++
		case SeverityInfo:
			report.Counts.Info++
		}
	}

	return report
}

// Validate runs all registered rules with the default configuration.
// This is the single entry point for callers that need no rule tuning.
func Validate(nodes []spec.Node, edges []spec.Edge, screens []spec.Screen) Report {
	return NewAnalyzer(nil).Validate(nodes, edges, screens)
}
