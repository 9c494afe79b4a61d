package types

import (
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "TD01",
		Name:        "tbd-placeholders",
		Group:       "types",
		Description: "Data points and table columns still typed 'tbd' need a decision",
		Order:       80,
		Check:       checkPlaceholders,
	})
}

// checkPlaceholders flags every remaining TBD type: one issue per
// datapoint and one per table column.
func checkPlaceholders(ctx *check.Context) []check.Issue {
	g := ctx.Graph()
	var issues []check.Issue

	for _, n := range g.Nodes() {
		if ctx.IsExcluded(n.ID) {
			continue
		}
		if dp, ok := n.AsDataPoint(); ok && dp.Type == spec.DataTBD {
			issues = append(issues, check.Issue{
				Violation: check.ViolationDataPointTBDType,
				Severity:  check.SeverityOf(check.ViolationDataPointTBDType),
				RuleID:    "TD01",
				NodeID:    n.ID,
				Label:     dp.Label,
				Message:   fmt.Sprintf("Data point '%s' has placeholder type 'tbd'", dp.Label),
			})
		}
		if table, ok := n.AsTable(); ok {
			for _, col := range table.Columns {
				if col.Type != spec.DataTBD {
					continue
				}
				issues = append(issues, check.Issue{
					Violation: check.ViolationTableColumnTBD,
					Severity:  check.SeverityOf(check.ViolationTableColumnTBD),
					RuleID:    "TD01",
					NodeID:    n.ID,
					Label:     table.Label,
					Column:    col.Name,
					Message:   fmt.Sprintf("Table '%s' column '%s' has placeholder type 'tbd'", table.Label, col.Name),
				})
			}
		}
	}

	return issues
}
