package pipeline

import "errors"

// ErrNoArguments is the business outcome of zero candidates surviving the
// filter. It is not a system failure: the caller should surface guidance,
// not an error page.
var ErrNoArguments = errors.New("no valid arguments found")

// NoArgumentsGuidance is the user-facing message for ErrNoArguments
const NoArgumentsGuidance = "No valid arguments found. Your arguments may be too weak or inappropriate. Please provide clear, relevant debate arguments."

// FieldError is an input validation failure scoped to a single form field so
// the presentation layer can highlight the offending input
type FieldError struct {
	Field   string // "text", "format", or "resolution"
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}
