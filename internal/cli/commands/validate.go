package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomstack-labs/specloom/internal/cli/config"
	"github.com/loomstack-labs/specloom/internal/cli/output"
	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules" // register consistency rules
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity to report: error, warning, info
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <spec-file>",
		Short: "Check a specification for consistency",
		Long: `Analyze a specification document for consistency issues.

Runs every registered consistency check against the graph and reports
violations grouped by category. Rules can be configured in specloom.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Validate a spec
  specloom validate app.spec.yaml

  # Output as JSON
  specloom validate app.spec.yaml --format json

  # Disable specific rules
  specloom validate app.spec.yaml --disable OR01,TD01

  # Only report errors
  specloom validate app.spec.yaml --severity error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity: error, warning, info")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts *ValidateOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	nodes, edges, screens, err := loadSpecFile(path)
	if err != nil {
		return err
	}

	checkCfg, err := buildCheckConfig(cfg, opts)
	if err != nil {
		return err
	}

	analyzer := check.NewAnalyzer(checkCfg)
	report := analyzer.Validate(nodes, edges, screens)

	// Filter by severity threshold for display; counts keep the full
	// picture so exit status is unaffected by the filter.
	display := filterBySeverity(report, opts.Severity)

	if err := renderValidateResults(r, path, report, display); err != nil {
		return err
	}

	if report.Counts.Error > 0 {
		return fmt.Errorf("validation failed: %d errors", report.Counts.Error)
	}
	return nil
}

// buildCheckConfig merges project config with CLI overrides.
func buildCheckConfig(cfg *config.Config, opts *ValidateOptions) (*check.Config, error) {
	checkCfg, err := cfg.CheckConfig()
	if err != nil {
		return nil, err
	}
	for _, id := range opts.Disable {
		checkCfg.Disable(strings.TrimSpace(id))
	}
	return checkCfg, nil
}

// filterBySeverity keeps only issues at or above the threshold.
func filterBySeverity(report check.Report, severityThreshold string) []check.Issue {
	threshold, ok := check.ParseSeverity(severityThreshold)
	if !ok {
		threshold = check.SeverityInfo
	}

	var filtered []check.Issue
	for _, issue := range report.Issues {
		if issue.Severity <= threshold {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// ValidateOutput is the JSON output structure for validation results.
type ValidateOutput struct {
	Path   string        `json:"path"`
	Issues []check.Issue `json:"issues"`
	Counts check.Counts  `json:"counts"`
}

func renderValidateResults(r *output.Renderer, path string, report check.Report, display []check.Issue) error {
	mode := r.EffectiveMode()

	if mode == output.ModeJSON {
		out := ValidateOutput{Path: path, Issues: display, Counts: report.Counts}
		if out.Issues == nil {
			out.Issues = []check.Issue{}
		}
		return r.JSON(out)
	}

	if report.Counts.Total == 0 {
		r.Success("No issues found. The specification is consistent.")
		return nil
	}

	if mode == output.ModeMarkdown {
		filtered := check.Report{Issues: display, Counts: report.Counts}
		r.Printf("%s", filtered.Render())
		return nil
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.NodeLabel.Render(path))
	r.Println("")
	for _, issue := range display {
		r.Printf("  %s  %s  %s\n",
			severityStyle(r, issue.Severity),
			styles.Bold.Render(string(issue.Violation)),
			issue.Message,
		)
	}
	r.Println("")

	var parts []string
	if report.Counts.Error > 0 {
		parts = append(parts, styles.Error.Render(fmt.Sprintf("%d errors", report.Counts.Error)))
	}
	if report.Counts.Warning > 0 {
		parts = append(parts, styles.Warning.Render(fmt.Sprintf("%d warnings", report.Counts.Warning)))
	}
	if report.Counts.Info > 0 {
		parts = append(parts, styles.Info.Render(fmt.Sprintf("%d info", report.Counts.Info)))
	}
	r.Printf("Summary: %d issues (%s)\n", report.Counts.Total, strings.Join(parts, ", "))

	return nil
}

func severityStyle(r *output.Renderer, sev check.Severity) string {
	switch sev {
	case check.SeverityError:
		return r.Styles().Error.Render("error  ")
	case check.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case check.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
