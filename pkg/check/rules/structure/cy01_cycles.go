package structure

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/check"
)

func init() {
	check.Register(check.RuleDef{
		ID:          "CY01",
		Name:        "circular-dependencies",
		Group:       "structure",
		Description: "Computation edges (derives-from, transforms) must not form cycles",
		Order:       60,
		Check:       checkCycles,
	})
}

// checkCycles enumerates cycles in the computation subgraph. Only
// derives-from and transforms edges participate; cycles over flows-to,
// validates, or contains edges are not meaningful defects.
//
// Depth-first search runs from every unvisited node with a recursion
// stack and the current path; re-encountering an on-stack node closes the
// path suffix from its first occurrence into a cycle. Different DFS
// starts can rediscover the same cycle under another rotation, so cycles
// deduplicate by their sorted node-id set. The set key also merges
// genuinely distinct cycles traversing the same nodes in a different edge
// order; one report per node set is the intended granularity.
func checkCycles(ctx *check.Context) []check.Issue {
	g := ctx.Graph()

	adjacency := make(map[string][]string)
	for _, e := range g.Edges() {
		if !e.Type.Computation() {
			continue
		}
		if ctx.IsExcluded(e.Source) || ctx.IsExcluded(e.Target) {
			continue
		}
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	var (
		issues  []check.Issue
		visited = make(map[string]bool)
		onStack = make(map[string]bool)
		path    []string
		seen    = make(map[string]bool) // dedup keys of reported cycles
	)

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, next := range adjacency[id] {
			if !visited[next] {
				dfs(next)
				continue
			}
			if !onStack[next] {
				continue
			}
			// Close the path suffix from next's first occurrence.
			start := 0
			for i, p := range path {
				if p == next {
					start = i
					break
				}
			}
			cycle := make([]string, 0, len(path)-start+1)
			cycle = append(cycle, path[start:]...)
			cycle = append(cycle, next)

			key := cycleKey(cycle[:len(cycle)-1])
			if seen[key] {
				continue
			}
			seen[key] = true

			labels := make([]string, 0, len(cycle)-1)
			for _, nodeID := range cycle[:len(cycle)-1] {
				labels = append(labels, g.LabelOf(nodeID))
			}
			issues = append(issues, check.Issue{
				Violation: check.ViolationCircularDependency,
				Severity:  check.SeverityOf(check.ViolationCircularDependency),
				RuleID:    "CY01",
				NodeIDs:   append([]string(nil), cycle[:len(cycle)-1]...),
				Labels:    labels,
				Cycle:     cycle,
				Message:   fmt.Sprintf("Circular dependency: %s", strings.Join(append(append([]string(nil), labels...), labels[0]), " -> ")),
			})
		}

		onStack[id] = false
		path = path[:len(path)-1]
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			dfs(n.ID)
		}
	}

	return issues
}

// cycleKey is the rotation-insensitive dedup key: the cycle's distinct
// node ids, sorted and joined.
func cycleKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
