package check

import (
	"encoding/json"
	"strings"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// Severity indicates the importance of an issue.
type Severity int

// Severity levels for issues.
const (
	// SeverityError indicates a structural defect that must be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a likely defect that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the string form of a severity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, _ := ParseSeverity(str)
	*s = parsed
	return nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	default:
		return SeverityWarning, false
	}
}

// Violation identifies the kind of defect an issue reports.
type Violation string

// Violation kinds.
const (
	ViolationMissingSource               Violation = "missing-source"
	ViolationMultipleSources             Violation = "multiple-sources"
	ViolationWrongSourceType             Violation = "wrong-source-type"
	ViolationNoInputs                    Violation = "no-inputs"
	ViolationNoOutputs                   Violation = "no-outputs"
	ViolationEmptyWorkflow               Violation = "empty-workflow"
	ViolationInsufficientWorkflowMembers Violation = "insufficient-workflow-members"
	ViolationWorkflowNoOutputs           Violation = "workflow-no-outputs"
	ViolationDanglingMemberReference     Violation = "dangling-member-reference"
	ViolationNestedWorkflow              Violation = "nested-workflow"
	ViolationInvalidCaptureReference     Violation = "invalid-capture-reference"
	ViolationInvalidDisplayReference     Violation = "invalid-display-reference"
	ViolationComponentNoDataPoints       Violation = "component-no-datapoints"
	ViolationTypeMismatch                Violation = "type-mismatch"
	ViolationCircularDependency          Violation = "circular-dependency"
	ViolationOrphanNode                  Violation = "orphan-node"
	ViolationDataPointTBDType            Violation = "datapoint-tbd-type"
	ViolationTableColumnTBD              Violation = "table-column-tbd"
	ViolationDuplicateLabel              Violation = "duplicate-label"
	ViolationEmptyScreen                 Violation = "empty-screen"
)

// defaultSeverities is the fixed severity classification per violation kind.
var defaultSeverities = map[Violation]Severity{
	ViolationMissingSource:               SeverityError,
	ViolationNoInputs:                    SeverityError,
	ViolationNoOutputs:                   SeverityError,
	ViolationInsufficientWorkflowMembers: SeverityError,
	ViolationWorkflowNoOutputs:           SeverityError,
	ViolationComponentNoDataPoints:       SeverityError,
	ViolationCircularDependency:          SeverityError,
	ViolationOrphanNode:                  SeverityError,
	ViolationWrongSourceType:             SeverityWarning,
	ViolationMultipleSources:             SeverityWarning,
	ViolationTypeMismatch:                SeverityWarning,
	ViolationInvalidCaptureReference:     SeverityWarning,
	ViolationInvalidDisplayReference:     SeverityWarning,
	ViolationDuplicateLabel:              SeverityWarning,
	ViolationDataPointTBDType:            SeverityWarning,
	ViolationTableColumnTBD:              SeverityWarning,
	ViolationDanglingMemberReference:     SeverityWarning,
	ViolationNestedWorkflow:              SeverityWarning,
	ViolationEmptyWorkflow:               SeverityWarning,
	ViolationEmptyScreen:                 SeverityInfo,
}

// SeverityOf returns the default severity for a violation kind.
func SeverityOf(v Violation) Severity {
	if s, ok := defaultSeverities[v]; ok {
		return s
	}
	return SeverityWarning
}

// Issue is a single validator finding. NodeID/Label identify the subject
// for single-node issues; NodeIDs/Labels carry the group for multi-node
// issues (duplicates, cycles). The remaining fields are kind-specific.
type Issue struct {
	Violation Violation `json:"violation"`
	Severity  Severity  `json:"severity"`
	RuleID    string    `json:"ruleId"`
	Message   string    `json:"message"`

	NodeID  string   `json:"nodeId,omitempty"`
	NodeIDs []string `json:"nodeIds,omitempty"`
	Label   string   `json:"label,omitempty"`
	Labels  []string `json:"labels,omitempty"`

	// Provenance issues.
	ExpectedSourceTypes []spec.NodeType `json:"expectedSourceTypes,omitempty"`
	ActualSourceTypes   []spec.NodeType `json:"actualSourceTypes,omitempty"`

	// Cycle issues: the raw path in discovery order, closed by the
	// repeated node.
	Cycle []string `json:"cycle,omitempty"`

	// Workflow member issues.
	Member string `json:"member,omitempty"`

	// Component reference issues: the unresolvable entries.
	Entries []string `json:"entries,omitempty"`

	// Type reconciliation issues.
	Column        string        `json:"column,omitempty"`
	DataPointType spec.DataType `json:"datapointType,omitempty"`
	ColumnType    spec.DataType `json:"columnType,omitempty"`
}

// Counts aggregates issue totals by severity.
type Counts struct {
	Total   int `json:"total"`
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
}

// Report is the full result of one validation run.
type Report struct {
	Issues []Issue `json:"issues"`
	Counts Counts  `json:"counts"`
}

// HasErrors reports whether any error-severity issue is present.
func (r *Report) HasErrors() bool {
	return r.Counts.Error > 0
}
