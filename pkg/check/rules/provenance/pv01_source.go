package provenance

import (
	"fmt"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "PV01",
		Name:        "datapoint-provenance",
		Group:       "provenance",
		Description: "Data points must have exactly one incoming data-flow edge of a type matching their declared source kind",
		Order:       10,
		Check:       checkProvenance,
	})
}

// expectedSourceTypes maps a datapoint's declared source kind to the node
// types allowed to originate its value.
var expectedSourceTypes = map[spec.SourceKind][]spec.NodeType{
	spec.SourceCaptured:  {spec.NodeScreen, spec.NodeComponent},
	spec.SourceRetrieved: {spec.NodeTable, spec.NodeTransform, spec.NodeComponent},
	spec.SourceInferred:  {spec.NodeTransform},
}

// checkProvenance verifies that every datapoint's incoming data flow matches
// its declared source kind.
//
// Qualifying edges are all non-contains incoming edges plus contains edges
// whose source is not a table: a screen containing a datapoint is a capture
// path (provenance), while a table containing a datapoint is a structural
// decomposition and carries no provenance.
func checkProvenance(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		dp, ok := n.AsDataPoint()
		if !ok || ctx.IsExcluded(n.ID) {
			continue
		}

		var qualifying []*spec.Edge
		for _, e := range g.Incoming(n.ID) {
			if e.Type == spec.EdgeContains {
				if src, found := g.NodeByID(e.Source); found && src.Type == spec.NodeTable {
					continue
				}
			}
			qualifying = append(qualifying, e)
		}

		source := dp.SourceOrDefault()
		expected := expectedSourceTypes[source]

		switch len(qualifying) {
		case 0:
			issues = append(issues, check.Issue{
				Violation:           check.ViolationMissingSource,
				Severity:            check.SeverityOf(check.ViolationMissingSource),
				RuleID:              "PV01",
				NodeID:              n.ID,
				Label:               dp.Label,
				ExpectedSourceTypes: expected,
				Message: fmt.Sprintf("Data point '%s' declares source '%s' but has no incoming data-flow edge (expected from: %s)",
					dp.Label, source, joinTypes(expected)),
			})
		case 1:
			actual := g.SourceTypeOf(qualifying[0])
			if !containsType(expected, actual) {
				issues = append(issues, check.Issue{
					Violation:           check.ViolationWrongSourceType,
					Severity:            check.SeverityOf(check.ViolationWrongSourceType),
					RuleID:              "PV01",
					NodeID:              n.ID,
					Label:               dp.Label,
					ExpectedSourceTypes: expected,
					ActualSourceTypes:   []spec.NodeType{actual},
					Message: fmt.Sprintf("Data point '%s' declares source '%s' but is fed by a %s node (expected from: %s)",
						dp.Label, source, actual, joinTypes(expected)),
				})
			}
		default:
			actual := observedTypes(g, qualifying)
			issues = append(issues, check.Issue{
				Violation:           check.ViolationMultipleSources,
				Severity:            check.SeverityOf(check.ViolationMultipleSources),
				RuleID:              "PV01",
				NodeID:              n.ID,
				Label:               dp.Label,
				ExpectedSourceTypes: expected,
				ActualSourceTypes:   actual,
				Message: fmt.Sprintf("Data point '%s' has %d incoming data-flow edges (from: %s); exactly one source is expected",
					dp.Label, len(qualifying), joinTypes(actual)),
			})
		}
	}

	return issues
}

// observedTypes returns the source node types of the edges, deduplicated
// in first-seen order.
func observedTypes(g *spec.Graph, edges []*spec.Edge) []spec.NodeType {
	seen := make(map[spec.NodeType]bool)
	var types []spec.NodeType
	for _, e := range edges {
		t := g.SourceTypeOf(e)
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types
}

func containsType(types []spec.NodeType, t spec.NodeType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func joinTypes(types []spec.NodeType) string {
	if len(types) == 0 {
		return "none"
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
