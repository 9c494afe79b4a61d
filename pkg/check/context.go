package check

import "github.com/loomstack-labs/specloom/pkg/spec"

// Context provides all data a rule check needs: the immutable graph and
// the workflow-member exclusion set. Rules never mutate it.
type Context struct {
	graph    *spec.Graph
	excluded map[string]bool
}

// NewContext builds a rule context for the graph, resolving workflow
// members into the exclusion set.
func NewContext(g *spec.Graph) *Context {
	return &Context{
		graph:    g,
		excluded: WorkflowMembers(g),
	}
}

// Graph returns the immutable graph under analysis.
func (c *Context) Graph() *spec.Graph {
	return c.graph
}

// IsExcluded reports whether the node is a workflow member. Members are
// referenced structurally through their workflow's members list, so the
// standalone checks skip them.
func (c *Context) IsExcluded(id string) bool {
	return c.excluded[id]
}

// WorkflowMembers collects every members[].transformId across all
// workflow-type transforms into an exclusion set. The workflow structure
// check still sees the full node set; every other check analyzes the
// graph with these nodes removed from its candidate pool.
func WorkflowMembers(g *spec.Graph) map[string]bool {
	members := make(map[string]bool)
	for _, n := range g.Nodes() {
		tr, ok := n.AsTransform()
		if !ok || !tr.IsWorkflow() {
			continue
		}
		for _, m := range tr.Members {
			if m.TransformID != "" {
				members[m.TransformID] = true
			}
		}
	}
	return members
}
