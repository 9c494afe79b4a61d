package structure

import (
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/check"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "OR01",
		Name:        "orphan-nodes",
		Group:       "structure",
		Description: "Non-visual nodes must have at least one incident edge",
		Order:       70,
		Check:       checkOrphans,
	})
}

// checkOrphans flags nodes with no incident edges in either direction.
// Screen and image nodes are container/visual surrogates and exempt;
// workflow members are intentionally unconnected on the main graph.
func checkOrphans(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		if n.Type.Visual() || ctx.IsExcluded(n.ID) {
			continue
		}
		if len(g.Incoming(n.ID)) > 0 || len(g.Outgoing(n.ID)) > 0 {
			continue
		}
		issues = append(issues, check.Issue{
			Violation: check.ViolationOrphanNode,
			Severity:  check.SeverityOf(check.ViolationOrphanNode),
			RuleID:    "OR01",
			NodeID:    n.ID,
			Label:     g.LabelOf(n.ID),
			Message:   fmt.Sprintf("%s '%s' is not connected to anything", n.Type, g.LabelOf(n.ID)),
		})
	}

	return issues
}
