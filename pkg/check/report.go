package check

import (
	"fmt"
	"strings"
)

// reportCategory is one heading of the textual report. Categories render
// in the fixed canonical order below regardless of issue insertion order.
type reportCategory struct {
	Heading    string
	Violations []Violation
}

var reportCategories = []reportCategory{
	{"Provenance", []Violation{ViolationMissingSource, ViolationMultipleSources, ViolationWrongSourceType}},
	{"Transform I/O", []Violation{ViolationNoInputs, ViolationNoOutputs}},
	{"Workflows", []Violation{ViolationEmptyWorkflow, ViolationInsufficientWorkflowMembers, ViolationWorkflowNoOutputs, ViolationDanglingMemberReference, ViolationNestedWorkflow}},
	{"Component References", []Violation{ViolationInvalidCaptureReference, ViolationInvalidDisplayReference, ViolationComponentNoDataPoints}},
	{"Type Mismatches", []Violation{ViolationTypeMismatch}},
	{"Circular Dependencies", []Violation{ViolationCircularDependency}},
	{"Orphans", []Violation{ViolationOrphanNode}},
	{"Placeholders", []Violation{ViolationDataPointTBDType, ViolationTableColumnTBD}},
	{"Duplicate Labels", []Violation{ViolationDuplicateLabel}},
	{"Screens", []Violation{ViolationEmptyScreen}},
}

// noIssuesMessage is the zero-issue short-circuit text.
const noIssuesMessage = "No issues found. The specification is consistent."

// Render produces the human-readable report: markdown-style headings per
// category in canonical order, one line per issue, and a summary line.
func (r *Report) Render() string {
	if r.Counts.Total == 0 {
		return noIssuesMessage + "\n"
	}

	byViolation := make(map[Violation][]Issue)
	for _, issue := range r.Issues {
		byViolation[issue.Violation] = append(byViolation[issue.Violation], issue)
	}

	var b strings.Builder
	for _, cat := range reportCategories {
		var issues []Issue
		for _, v := range cat.Violations {
			issues = append(issues, byViolation[v]...)
		}
		if len(issues) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", cat.Heading)
		for _, issue := range issues {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", issue.Severity, issue.Violation, issue.Message)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %s\n", r.summaryLine())
	return b.String()
}

func (r *Report) summaryLine() string {
	parts := []string{fmt.Sprintf("%d issues", r.Counts.Total)}
	if r.Counts.Error > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", r.Counts.Error))
	}
	if r.Counts.Warning > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", r.Counts.Warning))
	}
	if r.Counts.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", r.Counts.Info))
	}
	return strings.Join(parts, ", ")
}
