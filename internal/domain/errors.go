package domain

import "errors"

// Domain errors.
var (
	// ErrMethodNotAllowed is returned when a request uses an unsupported HTTP method.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrMissingURL is returned when a request carries no video URL.
	ErrMissingURL = errors.New("no video URL provided")

	// ErrExtractionFailed is returned when the extractor could not produce media info.
	// It covers unsupported URLs, network failures, timeouts and unparseable output.
	ErrExtractionFailed = errors.New("failed to fetch video info")

	// ErrInternal is returned for failures nothing else accounts for.
	ErrInternal = errors.New("internal server error")
)

// ExtractionError wraps an extractor failure with request context.
// Detail holds raw diagnostic output from the tool; it is untrusted text.
type ExtractionError struct {
	ID     string
	Op     string
	URL    string
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := e.Op
	if e.ID != "" {
		msg += " [" + e.ID + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match both ErrExtractionFailed and the underlying cause.
func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExtractionFailed}
	}
	return []error{ErrExtractionFailed, e.Err}
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(op, url, detail string, err error) *ExtractionError {
	return &ExtractionError{
		Op:     op,
		URL:    url,
		Detail: detail,
		Err:    err,
	}
}
