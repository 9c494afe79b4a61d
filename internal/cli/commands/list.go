package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/loomstack-labs/specloom/internal/cli/output"
	"github.com/loomstack-labs/specloom/internal/state"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in the state database",
		Example: `  # List all projects
  specloom list

  # Output as JSON
  specloom list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// ListOutput is the JSON output structure for project listing.
type ListOutput struct {
	Projects []*state.Project `json:"projects"`
	Count    int              `json:"count"`
}

func runList(cmd *cobra.Command, format string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}

	projects, err := cmdCtx.Store.ListProjects(cmd.Context())
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := ListOutput{Projects: projects, Count: len(projects)}
		if out.Projects == nil {
			out.Projects = []*state.Project{}
		}
		return r.JSON(out)
	}

	if len(projects) == 0 {
		r.Println("No projects found. Use 'specloom import' to add one.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Created", "Updated"})
	for _, p := range projects {
		t.AppendRow(table.Row{
			p.ID,
			p.Name,
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	return nil
}
