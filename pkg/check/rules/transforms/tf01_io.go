package transforms

import (
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "TF01",
		Name:        "transform-io",
		Group:       "transforms",
		Description: "Non-workflow transforms must have at least one data-flow input and one data-flow output",
		Order:       20,
		Check:       checkTransformIO,
	})
}

// checkTransformIO flags non-workflow transforms without data-flow inputs
// or outputs. Contains edges are structural and do not count. Both
// conditions are independent; a disconnected transform accumulates both.
func checkTransformIO(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		tr, ok := n.AsTransform()
		if !ok || tr.IsWorkflow() || ctx.IsExcluded(n.ID) {
			continue
		}

		if countDataFlow(g.Incoming(n.ID)) == 0 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationNoInputs,
				Severity:  check.SeverityOf(check.ViolationNoInputs),
				RuleID:    "TF01",
				NodeID:    n.ID,
				Label:     tr.Label,
				Message:   fmt.Sprintf("Transform '%s' has no inputs", tr.Label),
			})
		}
		if countDataFlow(g.Outgoing(n.ID)) == 0 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationNoOutputs,
				Severity:  check.SeverityOf(check.ViolationNoOutputs),
				RuleID:    "TF01",
				NodeID:    n.ID,
				Label:     tr.Label,
				Message:   fmt.Sprintf("Transform '%s' has no outputs", tr.Label),
			})
		}
	}

	return issues
}

func countDataFlow(edges []*spec.Edge) int {
	count := 0
	for _, e := range edges {
		if e.Type != spec.EdgeContains {
			count++
		}
	}
	return count
}
