package types

import (
	"fmt"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "TY01",
		Name:        "table-type-reconciliation",
		Group:       "types",
		Description: "Retrieved data points must agree with the type of the table column they match by label",
		Order:       50,
		Check:       checkTypeReconciliation,
	})
}

// checkTypeReconciliation compares retrieved datapoints against the columns
// of the tables feeding them. The datapoint label matches a column name
// case-insensitively after trimming; a mismatch is reported only when both
// sides declare a concrete type (TBD is a deliberate placeholder). Workflow
// membership does not exempt a datapoint here: a wrong type is a defect no
// matter what references the node.
func checkTypeReconciliation(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		dp, ok := n.AsDataPoint()
		if !ok {
			continue
		}
		if dp.SourceOrDefault() != spec.SourceRetrieved {
			continue
		}
		label := strings.TrimSpace(dp.Label)
		if label == "" {
			continue
		}

		for _, e := range g.Incoming(n.ID) {
			src, found := g.NodeByID(e.Source)
			if !found {
				continue
			}
			table, isTable := src.AsTable()
			if !isTable {
				continue
			}

			for _, col := range table.Columns {
				if !strings.EqualFold(strings.TrimSpace(col.Name), label) {
					continue
				}
				if dp.Type.Concrete() && col.Type.Concrete() && dp.Type != col.Type {
					issues = append(issues, check.Issue{
						Violation:     check.ViolationTypeMismatch,
						Severity:      check.SeverityOf(check.ViolationTypeMismatch),
						RuleID:        "TY01",
						NodeID:        n.ID,
						Label:         dp.Label,
						Column:        col.Name,
						DataPointType: dp.Type,
						ColumnType:    col.Type,
						Message: fmt.Sprintf("Data point '%s' is typed '%s' but table '%s' column '%s' is typed '%s'",
							dp.Label, dp.Type, table.Label, col.Name, col.Type),
					})
				}
				break
			}
		}
	}

	return issues
}
