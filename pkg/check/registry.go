package check

import (
	"sort"
	"sync"
)

// RuleDef is a rule check definition. Rules are stateless; all context
// comes via the Check function's Context parameter. Order fixes the
// canonical position of the rule's output in the aggregated report.
type RuleDef struct {
	ID          string // Unique identifier, e.g., "PV01"
	Name        string // Human-readable name, e.g., "datapoint-provenance"
	Group       string // Category, e.g., "provenance", "transforms"
	Description string // Human-readable description
	Order       int    // Canonical aggregation position, ascending
	Check       CheckFunc
}

// CheckFunc analyzes the graph and returns issues. It must be a total
// function: a malformed graph is an analysis result, never an error.
type CheckFunc func(ctx *Context) []Issue

// globalRegistry is the single global registry for all rule checks.
var globalRegistry = &registry{
	rules: make(map[string]RuleDef),
}

type registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages.
func Register(rule RuleDef) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID] = rule
}

// All returns every registered rule in canonical order (ascending Order,
// then ID for stability).
func All() []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]RuleDef, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Order != rules[j].Order {
			return rules[i].Order < rules[j].Order
		}
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}
