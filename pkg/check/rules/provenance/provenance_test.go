package provenance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/provenance" // register PV01
	"github.com/loomstack-labs/specloom/pkg/spec"
)

// runPV01 validates the snapshot and returns only PV01 findings.
func runPV01(t *testing.T, nodes []spec.Node, edges []spec.Edge) []check.Issue {
	t.Helper()
	report := check.Validate(nodes, edges, nil)

	var filtered []check.Issue
	for _, issue := range report.Issues {
		if issue.RuleID == "PV01" {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func dp(id, label string, source spec.SourceKind) spec.Node {
	return spec.Node{
		ID:   id,
		Type: spec.NodeDataPoint,
		DataPoint: &spec.DataPointData{
			Label:  label,
			Type:   spec.DataString,
			Source: source,
		},
	}
}

func TestPV01_MissingSource(t *testing.T) {
	tests := []struct {
		name   string
		source spec.SourceKind
		want   []spec.NodeType
	}{
		{"captured", spec.SourceCaptured, []spec.NodeType{spec.NodeScreen, spec.NodeComponent}},
		{"retrieved", spec.SourceRetrieved, []spec.NodeType{spec.NodeTable, spec.NodeTransform, spec.NodeComponent}},
		{"inferred", spec.SourceInferred, []spec.NodeType{spec.NodeTransform}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := runPV01(t, []spec.Node{dp("dp1", "x", tt.source)}, nil)

			require.Len(t, issues, 1)
			assert.Equal(t, check.ViolationMissingSource, issues[0].Violation)
			assert.Equal(t, tt.want, issues[0].ExpectedSourceTypes)
		})
	}
}

func TestPV01_EmptySourceDefaultsToCaptured(t *testing.T) {
	issues := runPV01(t, []spec.Node{dp("dp1", "x", "")}, nil)

	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationMissingSource, issues[0].Violation)
	assert.Contains(t, issues[0].Message, "source 'captured'")
}

func TestPV01_ValidSingleSource(t *testing.T) {
	nodes := []spec.Node{
		dp("dp1", "Email", spec.SourceCaptured),
		{ID: "s1", Type: spec.NodeScreen},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "s1", Target: "dp1", Type: spec.EdgeFlowsTo},
	}

	assert.Empty(t, runPV01(t, nodes, edges))
}

func TestPV01_WrongSourceType(t *testing.T) {
	nodes := []spec.Node{
		dp("dp1", "Email", spec.SourceInferred),
		{ID: "s1", Type: spec.NodeScreen},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "s1", Target: "dp1", Type: spec.EdgeFlowsTo},
	}

	issues := runPV01(t, nodes, edges)
	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationWrongSourceType, issues[0].Violation)
	assert.Equal(t, []spec.NodeType{spec.NodeScreen}, issues[0].ActualSourceTypes)
}

func TestPV01_MultipleSources(t *testing.T) {
	nodes := []spec.Node{
		dp("dp1", "Email", spec.SourceCaptured),
		{ID: "s1", Type: spec.NodeScreen},
		{ID: "c1", Type: spec.NodeComponent, Component: &spec.ComponentData{Label: "form"}},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "s1", Target: "dp1", Type: spec.EdgeFlowsTo},
		{ID: "e2", Source: "c1", Target: "dp1", Type: spec.EdgeFlowsTo},
	}

	issues := runPV01(t, nodes, edges)
	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationMultipleSources, issues[0].Violation)
	assert.Equal(t, []spec.NodeType{spec.NodeScreen, spec.NodeComponent}, issues[0].ActualSourceTypes)
}

func TestPV01_TableContainsIsNotProvenance(t *testing.T) {
	// A table containing a datapoint is structural decomposition; the
	// datapoint still needs a real source.
	nodes := []spec.Node{
		dp("dp1", "Email", spec.SourceCaptured),
		{ID: "tbl", Type: spec.NodeTable, Table: &spec.TableData{Label: "users"}},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "tbl", Target: "dp1", Type: spec.EdgeContains},
	}

	issues := runPV01(t, nodes, edges)
	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationMissingSource, issues[0].Violation)
}

func TestPV01_ScreenContainsIsProvenance(t *testing.T) {
	// A screen containing a datapoint is a capture path.
	nodes := []spec.Node{
		dp("dp1", "Email", spec.SourceCaptured),
		{ID: "s1", Type: spec.NodeScreen},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "s1", Target: "dp1", Type: spec.EdgeContains},
	}

	assert.Empty(t, runPV01(t, nodes, edges))
}

func TestPV01_DanglingSourceCountsAsUnknown(t *testing.T) {
	// The edge qualifies even though its source does not resolve; the
	// unknown type then fails the expectation.
	nodes := []spec.Node{dp("dp1", "Email", spec.SourceCaptured)}
	edges := []spec.Edge{
		{ID: "e1", Source: "ghost", Target: "dp1", Type: spec.EdgeFlowsTo},
	}

	issues := runPV01(t, nodes, edges)
	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationWrongSourceType, issues[0].Violation)
	assert.Equal(t, []spec.NodeType{spec.NodeTypeUnknown}, issues[0].ActualSourceTypes)
}
