package structure

import (
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/check"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "SC01",
		Name:        "empty-screens",
		Group:       "structure",
		Description: "Screens without regions carry no specification content",
		Order:       100,
		Check:       checkEmptyScreens,
	})
}

// checkEmptyScreens reports screens with zero regions. Informational
// only: an empty screen is usually a capture session that was started
// and abandoned.
func checkEmptyScreens(ctx *check.Context) []check.Issue {
	var issues []check.Issue
	for _, s := range ctx.Graph().Screens() {
		if len(s.Regions) > 0 {
			continue
		}
		issues = append(issues, check.Issue{
			Violation: check.ViolationEmptyScreen,
			Severity:  check.SeverityOf(check.ViolationEmptyScreen),
			RuleID:    "SC01",
			NodeID:    s.ID,
			Label:     s.Name,
			Message:   fmt.Sprintf("Screen '%s' has no regions", s.Name),
		})
	}
	return issues
}
