package references

import (
	"fmt"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "CP01",
		Name:        "component-references",
		Group:       "references",
		Description: "Component captures/displays entries must resolve to a node id or label, and components must connect to at least one data point",
		Order:       40,
		Check:       checkComponentReferences,
	})
}

// checkComponentReferences resolves every captures/displays entry against
// the id index first, then the label index (exact, case-sensitive, any
// node type). Unresolvable entries are reported per list. A component
// additionally needs at least one edge, in either direction, connecting
// it to a datapoint node.
func checkComponentReferences(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		comp, ok := n.AsComponent()
		if !ok || ctx.IsExcluded(n.ID) {
			continue
		}

		if bad := unresolvedEntries(g, comp.Captures); len(bad) > 0 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationInvalidCaptureReference,
				Severity:  check.SeverityOf(check.ViolationInvalidCaptureReference),
				RuleID:    "CP01",
				NodeID:    n.ID,
				Label:     comp.Label,
				Entries:   bad,
				Message:   fmt.Sprintf("Component '%s' captures unresolvable references: %s", comp.Label, strings.Join(bad, ", ")),
			})
		}
		if bad := unresolvedEntries(g, comp.Displays); len(bad) > 0 {
			issues = append(issues, check.Issue{
				Violation: check.ViolationInvalidDisplayReference,
				Severity:  check.SeverityOf(check.ViolationInvalidDisplayReference),
				RuleID:    "CP01",
				NodeID:    n.ID,
				Label:     comp.Label,
				Entries:   bad,
				Message:   fmt.Sprintf("Component '%s' displays unresolvable references: %s", comp.Label, strings.Join(bad, ", ")),
			})
		}

		if !touchesDataPoint(g, n.ID) {
			issues = append(issues, check.Issue{
				Violation: check.ViolationComponentNoDataPoints,
				Severity:  check.SeverityOf(check.ViolationComponentNoDataPoints),
				RuleID:    "CP01",
				NodeID:    n.ID,
				Label:     comp.Label,
				Message:   fmt.Sprintf("Component '%s' has no edge to any data point", comp.Label),
			})
		}
	}

	return issues
}

// unresolvedEntries returns the entries that resolve to neither a node id
// nor a node label.
func unresolvedEntries(g *spec.Graph, entries []string) []string {
	var bad []string
	for _, entry := range entries {
		if _, ok := g.NodeByID(entry); ok {
			continue
		}
		if len(g.NodesByLabel(entry)) > 0 {
			continue
		}
		bad = append(bad, entry)
	}
	return bad
}

// touchesDataPoint reports whether any incident edge, in either direction,
// connects the node to a datapoint.
func touchesDataPoint(g *spec.Graph, id string) bool {
	for _, e := range g.Incoming(id) {
		if src, ok := g.NodeByID(e.Source); ok && src.Type == spec.NodeDataPoint {
			return true
		}
	}
	for _, e := range g.Outgoing(id) {
		if tgt, ok := g.NodeByID(e.Target); ok && tgt.Type == spec.NodeDataPoint {
			return true
		}
	}
	return false
}
