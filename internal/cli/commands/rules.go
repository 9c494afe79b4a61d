package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/loomstack-labs/specloom/internal/cli/output"
	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules" // register consistency rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available consistency rules",
		Long: `List all registered consistency rules.

Rules are organized by group (provenance, transforms, references,
types, structure) and run in a fixed canonical order.`,
		Example: `  # List all rules
  specloom rules

  # Show details for a specific rule
  specloom rules PV01

  # List structure rules only
  specloom rules --group structure

  # Output as JSON
  specloom rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRuleDefs(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// RulesOutput is the JSON output structure for the rules listing.
type RulesOutput struct {
	Rules []ruleInfo `json:"rules"`
	Count int        `json:"count"`
}

// ruleInfo is the exported view of a rule definition.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

func listRuleDefs(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	var rules []check.RuleDef
	for _, rule := range check.All() {
		if opts.Group != "" && rule.Group != opts.Group {
			continue
		}
		rules = append(rules, rule)
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := RulesOutput{Rules: []ruleInfo{}, Count: len(rules)}
		for _, rule := range rules {
			out.Rules = append(out.Rules, ruleInfo{
				ID: rule.ID, Name: rule.Name, Group: rule.Group,
				Description: rule.Description,
			})
		}
		return r.JSON(out)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Group", "Description"})
	for _, rule := range rules {
		t.AppendRow(table.Row{rule.ID, rule.Name, rule.Group, rule.Description})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	r.Println("")
	r.Println(r.Styles().Muted.Render("Use 'specloom rules <rule-id>' for details"))

	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, ok := check.GetByID(strings.ToUpper(strings.TrimSpace(ruleID)))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(ruleInfo{
			ID: rule.ID, Name: rule.Name, Group: rule.Group,
			Description: rule.Description,
		})
	}

	styles := r.Styles()
	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Println("")
	r.Println("  " + rule.Description)
	r.Println("")

	return nil
}
