package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmer-level failures and discarded async results.
var (
	// ErrUnknownCondition is returned when a condition tag has no registered
	// schema. Correct callers never trigger it.
	ErrUnknownCondition = errors.New("unknown condition type")

	// ErrStaleSession marks an async result that arrived after the form
	// session it belonged to was abandoned. The result is discarded, never
	// applied to the now-active session.
	ErrStaleSession = errors.New("form session no longer active")

	// ErrExtractionFailed is returned when the extraction endpoint answered
	// with a status other than "success".
	ErrExtractionFailed = errors.New("document extraction failed")
)

// Validation error codes.
const (
	CodeMissingField = "MISSING_FIELD"
	CodeNotNumeric   = "NOT_NUMERIC"
	CodeInvalidEnum  = "INVALID_ENUM"
)

// ValidationError describes a single field violation found by the validator.
type ValidationError struct {
	Code    string   `json:"code"`
	Field   string   `json:"field"`
	Allowed []string `json:"allowed,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeMissingField:
		return fmt.Sprintf("field '%s' is required", e.Field)
	case CodeNotNumeric:
		return fmt.Sprintf("field '%s' must be a finite number", e.Field)
	case CodeInvalidEnum:
		return fmt.Sprintf("field '%s' must be one of [%s]", e.Field, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("field '%s' is invalid", e.Field)
}

// NewMissingFieldError reports a required field that is absent or empty.
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Code: CodeMissingField, Field: field}
}

// NewNotNumericError reports a numeric field that does not parse to a finite number.
func NewNotNumericError(field string) *ValidationError {
	return &ValidationError{Code: CodeNotNumeric, Field: field}
}

// NewInvalidEnumError reports an enum field whose value is outside the declared set.
func NewInvalidEnumError(field string, allowed []string) *ValidationError {
	return &ValidationError{Code: CodeInvalidEnum, Field: field, Allowed: allowed}
}

// ValidationErrors is the full list of violations for one submission. A
// submission either passes completely or is rejected with every violation, so
// the caller can surface all problems at once.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// ServerError is a non-2xx answer from a remote endpoint. Body carries the
// server's error text verbatim for diagnosis.
type ServerError struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// NewServerError creates a ServerError from a response status and body text.
func NewServerError(statusCode int, body string) *ServerError {
	return &ServerError{StatusCode: statusCode, Body: body}
}

// TransportError is a network or timeout failure before any HTTP status was
// received. Callers may retry; the pipeline itself never does.
type TransportError struct {
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NewTransportError wraps a network-level failure.
func NewTransportError(cause error) *TransportError {
	return &TransportError{Cause: cause}
}

// MalformedResponseError marks a response that violates the remote contract:
// a missing prediction block, an unknown class or risk level, or a
// probability outside [0,1]. Interpretation fails as a whole rather than
// defaulting silently.
type MalformedResponseError struct {
	Reason string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed prediction response: %s", e.Reason)
}

// NewMalformedResponseError creates a MalformedResponseError with a reason.
func NewMalformedResponseError(reason string) *MalformedResponseError {
	return &MalformedResponseError{Reason: reason}
}

// ThresholdError reports a caller-supplied threshold outside [0,1]. Out of
// range values are a build-time error, never silently clamped.
type ThresholdError struct {
	Value float64
}

// Error implements the error interface.
func (e *ThresholdError) Error() string {
	return fmt.Sprintf("threshold %g is outside [0,1]", e.Value)
}
