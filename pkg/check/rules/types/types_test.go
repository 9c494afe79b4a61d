package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/types" // register TY01, TD01
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func runRule(t *testing.T, ruleID string, nodes []spec.Node, edges []spec.Edge) []check.Issue {
	t.Helper()
	report := check.Validate(nodes, edges, nil)

	var filtered []check.Issue
	for _, issue := range report.Issues {
		if issue.RuleID == ruleID {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func retrieved(id, label string, dt spec.DataType) spec.Node {
	return spec.Node{
		ID:   id,
		Type: spec.NodeDataPoint,
		DataPoint: &spec.DataPointData{
			Label:  label,
			Type:   dt,
			Source: spec.SourceRetrieved,
		},
	}
}

func usersTable(cols ...spec.Column) spec.Node {
	return spec.Node{
		ID:    "tbl",
		Type:  spec.NodeTable,
		Table: &spec.TableData{Label: "users", Columns: cols},
	}
}

func feed(target string) spec.Edge {
	return spec.Edge{ID: "e-" + target, Source: "tbl", Target: target, Type: spec.EdgeFlowsTo}
}

func TestTY01_Mismatch(t *testing.T) {
	tests := []struct {
		name    string
		dpType  spec.DataType
		colType spec.DataType
		want    bool
	}{
		{"string vs number", spec.DataString, spec.DataNumber, true},
		{"same type", spec.DataString, spec.DataString, false},
		{"datapoint tbd exempt", spec.DataTBD, spec.DataNumber, false},
		{"column tbd exempt", spec.DataString, spec.DataTBD, false},
		{"column type empty exempt", spec.DataString, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := []spec.Node{
				retrieved("dp1", "age", tt.dpType),
				usersTable(spec.Column{Name: "age", Type: tt.colType}),
			}
			edges := []spec.Edge{feed("dp1")}

			issues := runRule(t, "TY01", nodes, edges)
			if tt.want {
				require.Len(t, issues, 1)
				assert.Equal(t, check.ViolationTypeMismatch, issues[0].Violation)
				assert.Equal(t, tt.dpType, issues[0].DataPointType)
				assert.Equal(t, tt.colType, issues[0].ColumnType)
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestTY01_CaseInsensitiveColumnMatch(t *testing.T) {
	nodes := []spec.Node{
		retrieved("dp1", "Age", spec.DataString),
		usersTable(spec.Column{Name: " AGE ", Type: spec.DataNumber}),
	}
	edges := []spec.Edge{feed("dp1")}

	issues := runRule(t, "TY01", nodes, edges)
	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationTypeMismatch, issues[0].Violation)
}

func TestTY01_FirstMatchingColumnWins(t *testing.T) {
	// Only the first label match per table is compared.
	nodes := []spec.Node{
		retrieved("dp1", "age", spec.DataString),
		usersTable(
			spec.Column{Name: "age", Type: spec.DataString},
			spec.Column{Name: "AGE", Type: spec.DataNumber},
		),
	}
	edges := []spec.Edge{feed("dp1")}

	assert.Empty(t, runRule(t, "TY01", nodes, edges))
}

func TestTY01_WorkflowMembershipDoesNotExempt(t *testing.T) {
	// A datapoint listed as a workflow member still gets type-checked;
	// the member exclusion applies to other rules, not reconciliation.
	nodes := []spec.Node{
		retrieved("dp1", "age", spec.DataString),
		usersTable(spec.Column{Name: "age", Type: spec.DataNumber}),
		{
			ID:   "wf",
			Type: spec.NodeTransform,
			Transform: &spec.TransformData{
				Label: "flow",
				Type:  spec.TransformWorkflow,
				Members: []spec.WorkflowMember{
					{Name: "a", TransformID: "dp1"},
					{Name: "b", TransformID: "t2"},
				},
			},
		},
	}
	edges := []spec.Edge{feed("dp1")}

	issues := runRule(t, "TY01", nodes, edges)
	require.Len(t, issues, 1)
	assert.Equal(t, "dp1", issues[0].NodeID)
}

func TestTY01_OnlyRetrievedDataPoints(t *testing.T) {
	nodes := []spec.Node{
		{
			ID:   "dp1",
			Type: spec.NodeDataPoint,
			DataPoint: &spec.DataPointData{
				Label:  "age",
				Type:   spec.DataString,
				Source: spec.SourceCaptured,
			},
		},
		usersTable(spec.Column{Name: "age", Type: spec.DataNumber}),
	}
	edges := []spec.Edge{feed("dp1")}

	assert.Empty(t, runRule(t, "TY01", nodes, edges))
}

func TestTY01_NonTableSourcesIgnored(t *testing.T) {
	nodes := []spec.Node{
		retrieved("dp1", "age", spec.DataString),
		{ID: "t1", Type: spec.NodeTransform, Transform: &spec.TransformData{Label: "calc", Type: spec.TransformFormula}},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "t1", Target: "dp1", Type: spec.EdgeFlowsTo},
	}

	assert.Empty(t, runRule(t, "TY01", nodes, edges))
}

func TestTD01_Placeholders(t *testing.T) {
	nodes := []spec.Node{
		retrieved("dp1", "age", spec.DataTBD),
		retrieved("dp2", "name", spec.DataString),
		usersTable(
			spec.Column{Name: "a", Type: spec.DataTBD},
			spec.Column{Name: "b", Type: spec.DataNumber},
			spec.Column{Name: "c", Type: spec.DataTBD},
		),
	}
	edges := []spec.Edge{feed("dp1"), feed("dp2")}

	issues := runRule(t, "TD01", nodes, edges)
	require.Len(t, issues, 3)

	assert.Equal(t, check.ViolationDataPointTBDType, issues[0].Violation)
	assert.Equal(t, "dp1", issues[0].NodeID)

	assert.Equal(t, check.ViolationTableColumnTBD, issues[1].Violation)
	assert.Equal(t, "a", issues[1].Column)
	assert.Equal(t, check.ViolationTableColumnTBD, issues[2].Violation)
	assert.Equal(t, "c", issues[2].Column)
}
