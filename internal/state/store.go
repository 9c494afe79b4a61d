// Package state persists specification projects in SQLite. A project owns
// one graph snapshot (nodes, edges, screens) that is replaced wholesale;
// the validator never reads from here directly, it receives the snapshot
// from a caller.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// ErrNotFound is returned when a project id does not resolve.
var ErrNotFound = errors.New("project not found")

// Project is a stored specification project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Graph is one project's full snapshot as stored.
type Graph struct {
	Nodes   []spec.Node   `json:"nodes"`
	Edges   []spec.Edge   `json:"edges"`
	Screens []spec.Screen `json:"screens,omitempty"`
}

// Store is the persistence interface for projects and their graphs.
type Store interface {
	CreateProject(ctx context.Context, name string) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	DeleteProject(ctx context.Context, id string) error

	// ReplaceGraph swaps the project's snapshot wholesale.
	ReplaceGraph(ctx context.Context, projectID string, g *Graph) error

	// GetGraph returns the project's snapshot with nodes and edges in
	// insertion order.
	GetGraph(ctx context.Context, projectID string) (*Graph, error)

	Close() error
}
