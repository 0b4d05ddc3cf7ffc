// Package validate parses the extracted completion span and normalizes it
// into typed argument candidates.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/debatelab/argclinic/internal/model"
)

// snippetLimit caps how much of the offending substring an error carries
const snippetLimit = 200

// Candidate is one loosely-typed argument object as returned by the remote
// service, before filtering and enrichment
type Candidate struct {
	Assertion    string            `json:"assertion"`
	Reasoning    string            `json:"reasoning"`
	Evidence     []model.Evidence  `json:"evidence"`
	Significance string            `json:"significance"`
	Result       string            `json:"result"`
	Certainty    float64           `json:"certainty"`
	Assessment   *model.Assessment `json:"assessment"`
	Tagline      string            `json:"tagline"`
	Title        string            `json:"title"`
	Tags         []string          `json:"tags"`
	Topic        string            `json:"topic"`
	Relevance    float64           `json:"relevance"`
}

// Arguments stays raw so a present-but-misshapen value is a schema failure,
// not a parse failure
type response struct {
	Arguments json.RawMessage `json:"arguments"`
}

// MalformedError indicates the extracted span is not valid JSON. It carries
// the offending substring for diagnostics.
type MalformedError struct {
	Snippet string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("parse AI response as JSON: %v (snippet: %q)", e.Err, e.Snippet)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// SchemaError indicates the parsed value lacks the expected top-level shape
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid AI response format: %s", e.Reason)
}

// Response parses the extracted JSON span and returns the normalized argument
// candidates. Certainty and every assessment score are clamped into [0,1];
// missing optional nested fields decode to zero values.
func Response(jsonStr string) ([]Candidate, error) {
	var parsed response
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, &MalformedError{Snippet: truncate(jsonStr, snippetLimit), Err: err}
	}

	if len(parsed.Arguments) == 0 || string(parsed.Arguments) == "null" {
		return nil, &SchemaError{Reason: `response JSON does not contain "arguments"`}
	}

	var candidates []Candidate
	if err := json.Unmarshal(parsed.Arguments, &candidates); err != nil {
		return nil, &SchemaError{Reason: `"arguments" is not an array of argument objects`}
	}
	if len(candidates) == 0 {
		return nil, &SchemaError{Reason: `"arguments" is empty`}
	}

	for i := range candidates {
		normalize(&candidates[i])
	}

	return candidates, nil
}

// normalize clamps score ranges and fills defaulted fields in place
func normalize(c *Candidate) {
	c.Certainty = clamp01(c.Certainty)
	c.Relevance = clamp01(c.Relevance)
	if c.Evidence == nil {
		c.Evidence = []model.Evidence{}
	}
	if c.Assessment != nil {
		a := c.Assessment
		a.AScore.Value = clamp01(a.AScore.Value)
		a.RScore.Value = clamp01(a.RScore.Value)
		a.EScore.Value = clamp01(a.EScore.Value)
		a.SScore.Value = clamp01(a.SScore.Value)
		a.OverallScore.Value = clamp01(a.OverallScore.Value)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
