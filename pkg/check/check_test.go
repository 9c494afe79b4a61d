package check

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "unknown", Severity(99).String())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input  string
		want   Severity
		wantOK bool
	}{
		{"error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{"Info", SeverityInfo, true},
		{"hint", SeverityWarning, false},
		{"", SeverityWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SeverityError)
	require.NoError(t, err)
	assert.Equal(t, `"error"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"info"`), &s))
	assert.Equal(t, SeverityInfo, s)
}

func TestSeverityOfClassification(t *testing.T) {
	errors := []Violation{
		ViolationMissingSource,
		ViolationNoInputs,
		ViolationNoOutputs,
		ViolationInsufficientWorkflowMembers,
		ViolationWorkflowNoOutputs,
		ViolationComponentNoDataPoints,
		ViolationCircularDependency,
		ViolationOrphanNode,
	}
	for _, v := range errors {
		assert.Equal(t, SeverityError, SeverityOf(v), "violation %s", v)
	}

	warnings := []Violation{
		ViolationWrongSourceType,
		ViolationMultipleSources,
		ViolationTypeMismatch,
		ViolationInvalidCaptureReference,
		ViolationInvalidDisplayReference,
		ViolationDuplicateLabel,
		ViolationDataPointTBDType,
		ViolationTableColumnTBD,
		ViolationDanglingMemberReference,
		ViolationNestedWorkflow,
		ViolationEmptyWorkflow,
	}
	for _, v := range warnings {
		assert.Equal(t, SeverityWarning, SeverityOf(v), "violation %s", v)
	}

	assert.Equal(t, SeverityInfo, SeverityOf(ViolationEmptyScreen))
	assert.Equal(t, SeverityWarning, SeverityOf(Violation("never-heard-of-it")))
}

func TestConfigDisableAndOverride(t *testing.T) {
	cfg := NewConfig().
		Disable("OR01").
		SetSeverity(ViolationOrphanNode, SeverityInfo)

	assert.True(t, cfg.IsDisabled("OR01"))
	assert.False(t, cfg.IsDisabled("PV01"))
	assert.Equal(t, SeverityInfo, cfg.GetSeverity(ViolationOrphanNode, SeverityError))
	assert.Equal(t, SeverityError, cfg.GetSeverity(ViolationMissingSource, SeverityError))

	var nilCfg *Config
	assert.False(t, nilCfg.IsDisabled("OR01"))
	assert.Equal(t, SeverityError, nilCfg.GetSeverity(ViolationOrphanNode, SeverityError))
}
