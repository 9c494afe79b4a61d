package structure

import (
	"fmt"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "DL01",
		Name:        "duplicate-labels",
		Group:       "structure",
		Description: "Nodes of the same type must not share a label",
		Order:       90,
		Check:       checkDuplicateLabels,
	})
}

// checkDuplicateLabels groups non-visual, non-excluded nodes by
// (type, normalized label); a group of two or more is one issue listing
// all member ids. Labels normalize by trimming and lowercasing, so
// "Email" and "email" collide. Nodes of a different type never join a
// group, and empty labels never group.
func checkDuplicateLabels(ctx *check.Context) []check.Issue {
	g := ctx.Graph()

	type labelGroup struct {
		nodes  []*spec.Node
		labels []string
	}
	groups := make(map[string]*labelGroup)
	var order []string // first-seen group keys, for deterministic output

	for _, n := range g.Nodes() {
		if n.Type.Visual() || ctx.IsExcluded(n.ID) {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(n.Label()))
		if normalized == "" {
			continue
		}
		key := string(n.Type) + "\x00" + normalized
		grp, ok := groups[key]
		if !ok {
			grp = &labelGroup{}
			groups[key] = grp
			order = append(order, key)
		}
		grp.nodes = append(grp.nodes, n)
		grp.labels = append(grp.labels, n.Label())
	}

	var issues []check.Issue
	for _, key := range order {
		grp := groups[key]
		if len(grp.nodes) < 2 {
			continue
		}
		ids := make([]string, len(grp.nodes))
		for i, n := range grp.nodes {
			ids[i] = n.ID
		}
		issues = append(issues, check.Issue{
			Violation: check.ViolationDuplicateLabel,
			Severity:  check.SeverityOf(check.ViolationDuplicateLabel),
			RuleID:    "DL01",
			NodeIDs:   ids,
			Labels:    grp.labels,
			Message: fmt.Sprintf("%d %s nodes share the label '%s': %s",
				len(grp.nodes), grp.nodes[0].Type, grp.labels[0], strings.Join(ids, ", ")),
		})
	}

	return issues
}
