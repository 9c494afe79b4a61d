// Package structure registers the graph-structure rules: cycle detection
// over computation edges, orphan nodes, duplicate labels, and empty
// screens.
package structure
