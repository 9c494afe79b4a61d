package check_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack-labs/specloom/pkg/check"
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func TestRenderNoIssuesShortCircuit(t *testing.T) {
	report := check.Validate(nil, nil, nil)
	out := report.Render()

	assert.Equal(t, "No issues found. The specification is consistent.\n", out)
}

func TestRenderCategoriesInCanonicalOrder(t *testing.T) {
	nodes := []spec.Node{
		// missing-source + orphan
		dataPoint("dp1", "Email", spec.DataTBD, spec.SourceCaptured),
		// no-inputs/no-outputs + orphan
		transform("t1", "calc"),
	}

	report := check.Validate(nodes, nil, nil)
	out := report.Render()

	headings := []string{
		"## Provenance",
		"## Transform I/O",
		"## Orphans",
		"## Placeholders",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(out, h)
		require.GreaterOrEqual(t, idx, 0, "missing heading %q in:\n%s", h, out)
		assert.Greater(t, idx, last, "heading %q out of order", h)
		last = idx
	}

	assert.Contains(t, out, "- [error] missing-source:")
	assert.Contains(t, out, "- [warning] datapoint-tbd-type:")
	assert.Contains(t, out, "Summary: ")
}

func TestRenderSummaryLine(t *testing.T) {
	nodes := []spec.Node{
		dataPoint("dp1", "Email", spec.DataString, spec.SourceCaptured),
	}
	screens := []spec.Screen{{ID: "s1", Name: "Login"}}

	report := check.Validate(nodes, nil, screens)
	out := report.Render()

	assert.Contains(t, out, "Summary: 3 issues, 2 errors, 1 info")
	assert.NotContains(t, out, "warnings", "zero severities stay out of the summary")
}
