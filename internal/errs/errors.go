// Package errs defines the structured error type shared across the search
// pipeline, so callers can branch on failure category instead of matching
// error strings.
package errs

import "fmt"

const (
	CodeInvalidConfig = 1
	CodeInvalidRange  = 2
	CodeKernelFailure = 3
	CodeOverflow      = 4
	CodeCanceled      = 5
)

// SearchError is a structured error carrying a stable numeric code.
type SearchError struct {
	Code    int
	Message string
	Details string
}

func (e *SearchError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("seedhunter: [%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("seedhunter: [%d] %s", e.Code, e.Message)
}

// New builds a SearchError, optionally attaching one details string.
func New(code int, message string, details ...string) error {
	e := &SearchError{Code: code, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

// ErrResultOverflow reports a batch producing more survivors than its
// output buffer was sized for. Per the search's determinism requirement,
// this is always a hard error, never a silent truncation.
var ErrResultOverflow = New(CodeOverflow, "result buffer overflow: rectangle too loose for batch size")
