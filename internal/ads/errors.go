package ads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/api/googleapi"
)

// RequestIDHeader is the response header carrying the server-side request id
const RequestIDHeader = "request-id"

// Failure is returned when the API rejects a request or fails server-side
type Failure struct {
	RequestID  string
	Code       string
	HTTPStatus int
	Message    string
	Errors     []ErrorDetail
}

// ErrorDetail is one GoogleAdsError within a failure
type ErrorDetail struct {
	// ErrorCode is the "<category>: <enum>" pair, e.g. "requestError: INVALID_CUSTOMER_ID"
	ErrorCode string
	Message   string
	FieldPath []FieldPathElement
}

// FieldPathElement locates an error within the request
type FieldPathElement struct {
	FieldName string
	Index     *int
}

// Error implements the error interface
func (f *Failure) Error() string {
	msgs := make([]string, 0, len(f.Errors))
	for _, e := range f.Errors {
		msgs = append(msgs, e.Message)
	}
	return fmt.Sprintf("google ads request %q failed with status %s: %s",
		f.RequestID, f.Code, strings.Join(msgs, "; "))
}

// Report writes the human-readable diagnostic for the failure.
// Values are printed verbatim between double quotes, without escaping.
func (f *Failure) Report(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Request with ID \"%s\" failed with status \"%s\" and includes the following errors:\n",
		f.RequestID, f.Code)
	for _, e := range f.Errors {
		fmt.Fprintf(&b, "\tError with message \"%s\".\n", e.Message)
		for _, el := range e.FieldPath {
			fmt.Fprintf(&b, "\t\tOn field: %s\n", el.FieldName)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// AsFailure reports whether err wraps a *Failure and returns it
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// googleAdsFailureType suffixes the @type of the GoogleAdsFailure status detail
const googleAdsFailureType = ".errors.GoogleAdsFailure"

// statusEnvelope wraps a google.rpc.Status in its JSON error form
type statusEnvelope struct {
	Error *statusBody `json:"error"`
}

type statusBody struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Details []failureDetail `json:"details"`
}

type failureDetail struct {
	Type      string         `json:"@type"`
	Errors    []adsErrorJSON `json:"errors"`
	RequestID string         `json:"requestId"`
}

type adsErrorJSON struct {
	ErrorCode map[string]any `json:"errorCode"`
	Message   string         `json:"message"`
	Location  *struct {
		FieldPathElements []struct {
			FieldName string `json:"fieldName"`
			Index     *int   `json:"index"`
		} `json:"fieldPathElements"`
	} `json:"location"`
}

// failureFromResponse converts a non-2xx response into a *Failure. The body
// was already consumed by googleapi.CheckResponse and is taken from apiErr.
func failureFromResponse(resp *http.Response, apiErr error) error {
	var gerr *googleapi.Error
	if !errors.As(apiErr, &gerr) {
		return fmt.Errorf("search stream failed: %w", apiErr)
	}

	if body, ok := parseStatus([]byte(gerr.Body)); ok {
		return newFailure(body, resp.StatusCode, resp.Header)
	}

	msg := gerr.Message
	if msg == "" {
		msg = strings.TrimSpace(gerr.Body)
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &Failure{
		RequestID:  resp.Header.Get(RequestIDHeader),
		Code:       statusName(resp.StatusCode),
		HTTPStatus: resp.StatusCode,
		Message:    msg,
		Errors:     []ErrorDetail{{Message: msg}},
	}
}

// parseStatus decodes an error body in either the object or the single-element array form
func parseStatus(data []byte) (*statusBody, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false
	}

	if data[0] == '[' {
		var envs []statusEnvelope
		if err := json.Unmarshal(data, &envs); err != nil {
			return nil, false
		}
		for _, env := range envs {
			if env.Error != nil {
				return env.Error, true
			}
		}
		return nil, false
	}

	var env statusEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Error == nil {
		return nil, false
	}
	return env.Error, true
}

// newFailure builds a *Failure from a decoded status
func newFailure(body *statusBody, httpStatus int, header http.Header) *Failure {
	f := &Failure{
		Code:       body.Status,
		HTTPStatus: httpStatus,
		Message:    body.Message,
	}
	if httpStatus == 0 {
		f.HTTPStatus = body.Code
	}

	for _, d := range body.Details {
		if !strings.HasSuffix(d.Type, googleAdsFailureType) {
			continue
		}
		if d.RequestID != "" {
			f.RequestID = d.RequestID
		}
		for _, e := range d.Errors {
			f.Errors = append(f.Errors, convertError(e))
		}
	}

	if f.RequestID == "" && header != nil {
		f.RequestID = header.Get(RequestIDHeader)
	}
	if f.Code == "" {
		f.Code = statusName(f.HTTPStatus)
	}
	if len(f.Errors) == 0 {
		f.Errors = []ErrorDetail{{Message: body.Message}}
	}
	return f
}

func convertError(e adsErrorJSON) ErrorDetail {
	detail := ErrorDetail{
		ErrorCode: formatErrorCode(e.ErrorCode),
		Message:   e.Message,
	}
	if e.Location != nil {
		for _, el := range e.Location.FieldPathElements {
			detail.FieldPath = append(detail.FieldPath, FieldPathElement{
				FieldName: el.FieldName,
				Index:     el.Index,
			})
		}
	}
	return detail
}

// formatErrorCode renders the one-of error code as "category: VALUE"
func formatErrorCode(code map[string]any) string {
	if len(code) == 0 {
		return ""
	}
	keys := make([]string, 0, len(code))
	for k := range code {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, code[k]))
	}
	return strings.Join(parts, ", ")
}

// statusName maps an HTTP status onto the canonical google.rpc.Code name
func statusName(httpStatus int) string {
	switch httpStatus {
	case http.StatusBadRequest:
		return "INVALID_ARGUMENT"
	case http.StatusUnauthorized:
		return "UNAUTHENTICATED"
	case http.StatusForbidden:
		return "PERMISSION_DENIED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "ABORTED"
	case http.StatusTooManyRequests:
		return "RESOURCE_EXHAUSTED"
	case 499:
		return "CANCELLED"
	case http.StatusNotImplemented:
		return "UNIMPLEMENTED"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	case http.StatusGatewayTimeout:
		return "DEADLINE_EXCEEDED"
	default:
		if httpStatus >= 500 {
			return "INTERNAL"
		}
		return "UNKNOWN"
	}
}
