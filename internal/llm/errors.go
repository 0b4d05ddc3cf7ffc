package llm

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates required provider settings are absent. It is a
// construction-time failure: no network call is attempted without them.
var ErrConfiguration = errors.New("missing required LLM configuration")

// ErrEmptyCompletion indicates the remote call succeeded but returned no
// completion text
var ErrEmptyCompletion = errors.New("no completion in AI response")

// TransportError indicates the network call failed or the remote returned a
// non-success status
type TransportError struct {
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("AI API error (%d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("AI API request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
