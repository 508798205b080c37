package errs

import "strings"

// FieldError is a single field-level validation failure.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the lowercased input key the error relates to.
	Field string `json:"field"`

	// Error is the human-readable message.
	Error string `json:"error"`
}

// HTTPError is the error type returned by repositories.
//
// Fields:
//   - Code: machine-friendly code (e.g. "NOT_FOUND", "USER_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code a transport should answer with.
//   - Override: whether the message is safe to show to end users as is.
//   - Errors: per-field validation errors, if any.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors,omitempty"`
}

// Error returns the message so logging an HTTPError prints what the client sees.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError of the same status.
//
// A target with Status 0 matches any *HTTPError, which allows
//
//	errors.Is(err, &errs.HTTPError{})
//
// as a plain "is this one of ours" check.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}

	return t.Status == 0 || t.Status == e.Status
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
