package errs

import (
	"fmt"
	"strings"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "email", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type returned by handlers and middleware.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), also logged.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the client show Message directly.
//   - Errors: per-field validation errors.
//
// Body, when set, replaces the standard JSON shape on the wire. Routes use
// it to keep the response envelopes their clients already parse.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`

	Body  any   `json:"-"`
	cause error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Is makes errors.Is match any *HTTPError regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Unwrap exposes the underlying failure so errors.As can reach driver and
// transport errors through the HTTP error.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Cause returns the error this HTTPError was built from, if any.
func (e *HTTPError) Cause() error {
	return e.cause
}

func (e *HTTPError) clone() *HTTPError {
	c := *e
	return &c
}

// WithMessage returns a copy with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	c := e.clone()
	c.Message = message
	return c
}

// WithCode returns a copy with Code replaced.
func (e *HTTPError) WithCode(code string) *HTTPError {
	c := e.clone()
	c.Code = code
	return c
}

// WithBody returns a copy that writes body instead of the standard shape.
func (e *HTTPError) WithBody(body any) *HTTPError {
	c := e.clone()
	c.Body = body
	return c
}

// WithCause returns a copy wrapping err.
func (e *HTTPError) WithCause(err error) *HTTPError {
	c := e.clone()
	c.cause = err
	return c
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
