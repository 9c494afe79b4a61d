package transforms

import (
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/check"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "WF01",
		Name:        "workflow-structure",
		Group:       "transforms",
		Description: "Workflow transforms must have at least two members, resolvable member references, no nested workflows, and at least one output",
		Order:       30,
		Check:       checkWorkflowStructure,
	})
}

// checkWorkflowStructure validates every workflow-type transform against
// the full node set; workflows must see their members even though members
// are excluded from the standalone checks.
//
// An empty members list is terminal for the node: no further workflow
// checks run on it.
func checkWorkflowStructure(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		tr, ok := n.AsTransform()
		if !ok || !tr.IsWorkflow() {
			continue
		}

		if len(tr.Members) == 0 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationEmptyWorkflow,
				Severity:  check.SeverityOf(check.ViolationEmptyWorkflow),
				RuleID:    "WF01",
				NodeID:    n.ID,
				Label:     tr.Label,
				Message:   fmt.Sprintf("Workflow '%s' has no members", tr.Label),
			})
			continue
		}

		if len(tr.Members) < 2 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationInsufficientWorkflowMembers,
				Severity:  check.SeverityOf(check.ViolationInsufficientWorkflowMembers),
				RuleID:    "WF01",
				NodeID:    n.ID,
				Label:     tr.Label,
				Message:   fmt.Sprintf("Workflow '%s' has %d member; a workflow composes at least 2 steps", tr.Label, len(tr.Members)),
			})
		}

		if len(g.Outgoing(n.ID)) == 0 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationWorkflowNoOutputs,
				Severity:  check.SeverityOf(check.ViolationWorkflowNoOutputs),
				RuleID:    "WF01",
				NodeID:    n.ID,
				Label:     tr.Label,
				Message:   fmt.Sprintf("Workflow '%s' has no outgoing edges", tr.Label),
			})
		}

		for _, m := range tr.Members {
			if m.TransformID == "" {
				continue
			}
			ref, found := g.NodeByID(m.TransformID)
			if !found {
				issues = append(issues, check.Issue{
					Violation: check.ViolationDanglingMemberReference,
					Severity:  check.SeverityOf(check.ViolationDanglingMemberReference),
					RuleID:    "WF01",
					NodeID:    n.ID,
					Label:     tr.Label,
					Member:    m.Name,
					Message:   fmt.Sprintf("Workflow '%s' member '%s' references missing transform '%s'", tr.Label, m.Name, m.TransformID),
				})
				continue
			}
			if refTr, isTr := ref.AsTransform(); isTr && refTr.IsWorkflow() {
				issues = append(issues, check.Issue{
					Violation: check.ViolationNestedWorkflow,
					Severity:  check.SeverityOf(check.ViolationNestedWorkflow),
					RuleID:    "WF01",
					NodeID:    n.ID,
					Label:     tr.Label,
					Member:    m.Name,
					Message:   fmt.Sprintf("Workflow '%s' member '%s' references workflow '%s'; nested workflows are not supported", tr.Label, m.Name, refTr.Label),
				})
			}
		}
	}

	return issues
}
