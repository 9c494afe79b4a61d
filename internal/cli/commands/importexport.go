package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomstack-labs/specloom/internal/state"
	"github.com/loomstack-labs/specloom/pkg/specio"
)

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Project string // Existing project ID; empty creates a new project
	Name    string // Name for a newly created project
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}
	cmd := &cobra.Command{
		Use:   "import <spec-file>",
		Short: "Import a specification into the project store",
		Long: `Load a specification document into the state database.

Without --project a new project is created, named after the document
(or --name). With --project the existing project's graph is replaced.`,
		Example: `  # Import as a new project
  specloom import app.spec.yaml

  # Replace an existing project's graph
  specloom import app.spec.yaml --project 6f1c...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Project, "project", "", "Existing project ID to replace")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Name for the new project")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts *ImportOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	r := cmdCtx.Renderer

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc *specio.Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = specio.ParseJSON(data)
	} else {
		doc, err = specio.ParseYAML(data)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	nodes, edges, screens, err := doc.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	projectID := opts.Project
	if projectID == "" {
		name := opts.Name
		if name == "" {
			name = doc.Name
		}
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		p, err := cmdCtx.Store.CreateProject(ctx, name)
		if err != nil {
			return err
		}
		projectID = p.ID
	}

	g := &state.Graph{Nodes: nodes, Edges: edges, Screens: screens}
	if err := cmdCtx.Store.ReplaceGraph(ctx, projectID, g); err != nil {
		return err
	}

	r.Success(fmt.Sprintf("Imported %d nodes, %d edges into project %s",
		len(nodes), len(edges), projectID))
	return nil
}

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Format string // yaml or json
	Out    string // Output file; empty writes to stdout
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export a project as a specification document",
		Example: `  # Export to stdout as YAML
  specloom export 6f1c...

  # Export to a JSON file
  specloom export 6f1c... --format json --out app.spec.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "yaml", "Output format: yaml, json")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, projectID string, opts *ExportOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	p, err := cmdCtx.Store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	g, err := cmdCtx.Store.GetGraph(ctx, projectID)
	if err != nil {
		return err
	}

	doc, err := specio.Encode(p.Name, g.Nodes, g.Edges, g.Screens)
	if err != nil {
		return err
	}

	var out []byte
	switch opts.Format {
	case "json":
		out, err = doc.EncodeJSON()
	case "yaml":
		out, err = doc.EncodeYAML()
	default:
		return fmt.Errorf("unsupported format %q (want yaml or json)", opts.Format)
	}
	if err != nil {
		return err
	}

	if opts.Out == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.Out, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Exported project %s to %s", projectID, opts.Out))
	return nil
}
