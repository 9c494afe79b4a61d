// Package check implements the specification consistency validator: a rule
// engine that inspects the full node/edge graph of a specification snapshot
// and reports structural defects, each classified with a severity.
//
// Rules live in sub-packages of pkg/check/rules and register themselves
// with the global registry from init(). The Analyzer runs every enabled
// rule against a shared immutable Context (graph plus workflow-member
// exclusion set) and merges the results in a fixed canonical order, so a
// given snapshot always produces the same report.
//
// The validator is a pure function of its input: it performs no I/O, holds
// no state between runs, and never fails on a malformed graph. Defects are
// Issues, not errors.
package check
