package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack-labs/specloom/pkg/check"
	_ "github.com/loomstack-labs/specloom/pkg/check/rules/structure" // register CY01, OR01, DL01, SC01
	"github.com/loomstack-labs/specloom/pkg/spec"
)

func runRule(t *testing.T, ruleID string, nodes []spec.Node, edges []spec.Edge, screens []spec.Screen) []check.Issue {
	t.Helper()
	report := check.Validate(nodes, edges, screens)

	var filtered []check.Issue
	for _, issue := range report.Issues {
		if issue.RuleID == ruleID {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func dp(id, label string) spec.Node {
	return spec.Node{
		ID:   id,
		Type: spec.NodeDataPoint,
		DataPoint: &spec.DataPointData{
			Label: label,
			Type:  spec.DataString,
		},
	}
}

func derives(id, source, target string) spec.Edge {
	return spec.Edge{ID: id, Source: source, Target: target, Type: spec.EdgeDerivesFrom}
}

func TestCY01_SelfLoop(t *testing.T) {
	nodes := []spec.Node{dp("a", "A")}
	edges := []spec.Edge{derives("e1", "a", "a")}

	issues := runRule(t, "CY01", nodes, edges, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, []string{"a"}, issues[0].NodeIDs)
	assert.Equal(t, []string{"a", "a"}, issues[0].Cycle)
	assert.Equal(t, "Circular dependency: A -> A", issues[0].Message)
}

func TestCY01_ThreeNodeCycle(t *testing.T) {
	nodes := []spec.Node{dp("a", "A"), dp("b", "B"), dp("c", "C")}
	edges := []spec.Edge{
		derives("e1", "a", "b"),
		derives("e2", "b", "c"),
		derives("e3", "c", "a"),
	}

	issues := runRule(t, "CY01", nodes, edges, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, []string{"a", "b", "c"}, issues[0].NodeIDs)
	assert.Equal(t, "Circular dependency: A -> B -> C -> A", issues[0].Message)
}

func TestCY01_RotationsDeduplicate(t *testing.T) {
	// The same cycle must not be rediscovered from another DFS start.
	nodes := []spec.Node{
		dp("x", "X"), // sits before the cycle in input order
		dp("a", "A"), dp("b", "B"),
	}
	edges := []spec.Edge{
		derives("e1", "x", "b"),
		derives("e2", "a", "b"),
		derives("e3", "b", "a"),
	}

	issues := runRule(t, "CY01", nodes, edges, nil)
	assert.Len(t, issues, 1)
}

func TestCY01_NonComputationEdgesIgnored(t *testing.T) {
	nodes := []spec.Node{dp("a", "A"), dp("b", "B")}
	edges := []spec.Edge{
		{ID: "e1", Source: "a", Target: "b", Type: spec.EdgeFlowsTo},
		{ID: "e2", Source: "b", Target: "a", Type: spec.EdgeFlowsTo},
	}

	assert.Empty(t, runRule(t, "CY01", nodes, edges, nil))
}

func TestCY01_TwoIndependentCycles(t *testing.T) {
	nodes := []spec.Node{dp("a", "A"), dp("b", "B"), dp("c", "C"), dp("d", "D")}
	edges := []spec.Edge{
		derives("e1", "a", "b"), derives("e2", "b", "a"),
		derives("e3", "c", "d"), derives("e4", "d", "c"),
	}

	issues := runRule(t, "CY01", nodes, edges, nil)
	assert.Len(t, issues, 2)
}

func TestOR01_Orphans(t *testing.T) {
	nodes := []spec.Node{
		dp("dp1", "Email"),
		dp("dp2", "Phone"),
		{ID: "s1", Type: spec.NodeScreen},
		{ID: "img", Type: spec.NodeImage},
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "s1", Target: "dp1", Type: spec.EdgeFlowsTo},
	}

	issues := runRule(t, "OR01", nodes, edges, nil)
	require.Len(t, issues, 1, "visual nodes are exempt; dp1 is connected")
	assert.Equal(t, "dp2", issues[0].NodeID)
	assert.Equal(t, check.SeverityError, issues[0].Severity)
}

func TestOR01_WorkflowMembersExempt(t *testing.T) {
	nodes := []spec.Node{
		{
			ID:   "wf",
			Type: spec.NodeTransform,
			Transform: &spec.TransformData{
				Label: "flow",
				Type:  spec.TransformWorkflow,
				Members: []spec.WorkflowMember{
					{Name: "a", TransformID: "t1"},
					{Name: "b", TransformID: "t2"},
				},
			},
		},
		{ID: "t1", Type: spec.NodeTransform, Transform: &spec.TransformData{Label: "s1", Type: spec.TransformFormula}},
		{ID: "t2", Type: spec.NodeTransform, Transform: &spec.TransformData{Label: "s2", Type: spec.TransformFormula}},
		dp("dp1", "Out"),
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "wf", Target: "dp1", Type: spec.EdgeTransforms},
	}

	assert.Empty(t, runRule(t, "OR01", nodes, edges, nil))
}

func TestDL01_Duplicates(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []spec.Node
		wantIDs []string
	}{
		{
			name: "case and whitespace insensitive",
			nodes: []spec.Node{
				dp("dp1", "Email"),
				dp("dp2", " email "),
			},
			wantIDs: []string{"dp1", "dp2"},
		},
		{
			name: "different node types never group",
			nodes: []spec.Node{
				dp("dp1", "email"),
				{ID: "c1", Type: spec.NodeComponent, Component: &spec.ComponentData{Label: "email"}},
			},
		},
		{
			name: "empty labels never group",
			nodes: []spec.Node{
				dp("dp1", ""),
				dp("dp2", "  "),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Wire every node to a hub so orphan findings stay out of
			// the way.
			hub := dp("hub", "hub")
			nodes := append([]spec.Node{hub}, tt.nodes...)
			var edges []spec.Edge
			for _, n := range tt.nodes {
				edges = append(edges, spec.Edge{
					ID: "e-" + n.ID, Source: "hub", Target: n.ID, Type: spec.EdgeFlowsTo,
				})
			}

			issues := runRule(t, "DL01", nodes, edges, nil)
			if len(tt.wantIDs) == 0 {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantIDs, issues[0].NodeIDs)
		})
	}
}

func TestDL01_GroupReportsAllMembers(t *testing.T) {
	nodes := []spec.Node{
		dp("dp1", "Email"),
		dp("dp2", "EMAIL"),
		dp("dp3", "email"),
	}
	edges := []spec.Edge{
		{ID: "e1", Source: "dp1", Target: "dp2", Type: spec.EdgeFlowsTo},
		{ID: "e2", Source: "dp2", Target: "dp3", Type: spec.EdgeFlowsTo},
	}

	issues := runRule(t, "DL01", nodes, edges, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, []string{"dp1", "dp2", "dp3"}, issues[0].NodeIDs)
	assert.Equal(t, []string{"Email", "EMAIL", "email"}, issues[0].Labels)
}

func TestSC01_EmptyScreens(t *testing.T) {
	screens := []spec.Screen{
		{ID: "s1", Name: "Login"},
		{ID: "s2", Name: "Profile", Regions: []spec.Region{
			{ID: "r1", Rect: spec.Rect{Width: 100, Height: 50}},
		}},
	}

	issues := runRule(t, "SC01", nil, nil, screens)
	require.Len(t, issues, 1)
	assert.Equal(t, check.ViolationEmptyScreen, issues[0].Violation)
	assert.Equal(t, "s1", issues[0].NodeID)
	assert.Equal(t, check.SeverityInfo, issues[0].Severity)
}
