package ads

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestFailureReport(t *testing.T) {
	f := &Failure{
		RequestID: "R1",
		Code:      "INVALID_CUSTOMER_ID",
		Errors: []ErrorDetail{
			{Message: "bad id", FieldPath: []FieldPathElement{{FieldName: "customer_id"}}},
			{Message: "second", FieldPath: []FieldPathElement{
				{FieldName: "operations", Index: intPtr(0)},
				{FieldName: "create"},
			}},
			{Message: "no location"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Report(&buf))

	want := strings.Join([]string{
		`Request with ID "R1" failed with status "INVALID_CUSTOMER_ID" and includes the following errors:`,
		"\tError with message \"bad id\".",
		"\t\tOn field: customer_id",
		"\tError with message \"second\".",
		"\t\tOn field: operations",
		"\t\tOn field: create",
		"\tError with message \"no location\".",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestFailureReport_PrintsValuesVerbatim(t *testing.T) {
	f := &Failure{
		RequestID: `req"7`,
		Code:      "INVALID_ARGUMENT",
		Errors:    []ErrorDetail{{Message: `The field "x" is C:\path`}},
	}

	var buf bytes.Buffer
	require.NoError(t, f.Report(&buf))

	assert.Equal(t,
		"Request with ID \"req\"7\" failed with status \"INVALID_ARGUMENT\" and includes the following errors:\n"+
			"\tError with message \"The field \"x\" is C:\\path\".\n",
		buf.String())
}

func TestFailureError(t *testing.T) {
	f := &Failure{RequestID: "R1", Code: "INTERNAL", Errors: []ErrorDetail{{Message: "a"}, {Message: "b"}}}
	assert.Equal(t, `google ads request "R1" failed with status INTERNAL: a; b`, f.Error())

	wrapped := fmt.Errorf("export failed: %w", f)
	got, ok := AsFailure(wrapped)
	require.True(t, ok)
	assert.Same(t, f, got)

	_, ok = AsFailure(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"object", `{"error":{"status":"NOT_FOUND"}}`, true},
		{"array", `[{"error":{"status":"NOT_FOUND"}}]`, true},
		{"array without error", `[{"results":[]}]`, false},
		{"object without error", `{"foo":1}`, false},
		{"empty", "  ", false},
		{"html", "<html>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ok := parseStatus([]byte(tt.body))
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, "NOT_FOUND", body.Status)
			}
		})
	}
}

func TestNewFailure_DefaultsCodeFromHTTPStatus(t *testing.T) {
	f := newFailure(&statusBody{Code: 403, Message: "denied"}, 0, nil)
	assert.Equal(t, "PERMISSION_DENIED", f.Code)
	assert.Equal(t, 403, f.HTTPStatus)
	assert.Equal(t, []ErrorDetail{{Message: "denied"}}, f.Errors)
}

func TestFormatErrorCode(t *testing.T) {
	assert.Equal(t, "", formatErrorCode(nil))
	assert.Equal(t, "queryError: BAD_FIELD_NAME", formatErrorCode(map[string]any{"queryError": "BAD_FIELD_NAME"}))
}
