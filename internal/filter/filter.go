// Package filter applies the keep-predicate to validated argument candidates
// and enriches survivors into full records.
package filter

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/validate"
)

// Policy reports whether an assertion is allowed through moderation
type Policy func(assertion string) bool

// Clock supplies creation timestamps
type Clock func() time.Time

// IDFunc supplies fresh record identifiers
type IDFunc func() string

// DenylistPolicy rejects assertions containing any of the given substrings.
// The match is case-sensitive.
func DenylistPolicy(tokens []string) Policy {
	return func(assertion string) bool {
		for _, tok := range tokens {
			if tok != "" && strings.Contains(assertion, tok) {
				return false
			}
		}
		return true
	}
}

// NewID returns a collision-resistant record identifier
func NewID() string {
	return "arg_" + uuid.NewString()
}

// Filter discards low-confidence or disallowed candidates and stamps the rest
type Filter struct {
	minCertainty float64
	policy       Policy
	now          Clock
	newID        IDFunc
}

// New creates a filter. The clock and identifier source are explicit so the
// stage stays deterministic under test; nil selects the real ones.
func New(minCertainty float64, policy Policy, now Clock, newID IDFunc) *Filter {
	if policy == nil {
		policy = func(string) bool { return true }
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if newID == nil {
		newID = NewID
	}
	return &Filter{
		minCertainty: minCertainty,
		policy:       policy,
		now:          now,
		newID:        newID,
	}
}

// Keep reports whether a candidate survives the predicate: certainty above
// the threshold, non-empty reasoning and assertion, and an allowed assertion.
func (f *Filter) Keep(c validate.Candidate) bool {
	return c.Certainty > f.minCertainty &&
		len(c.Reasoning) > 0 &&
		len(c.Assertion) > 0 &&
		f.policy(c.Assertion)
}

// Apply filters candidates in input order and enriches each survivor with a
// fresh id, the caller's format, and creation timestamps. An empty result is
// a business outcome, not an error; the caller decides how to report it.
func (f *Filter) Apply(candidates []validate.Candidate, format model.Format) []model.Argument {
	var out []model.Argument
	for _, c := range candidates {
		if !f.Keep(c) {
			continue
		}

		now := f.now()
		title := c.Title
		if title == "" {
			title = c.Tagline
		}
		evidence := c.Evidence
		if evidence == nil {
			evidence = []model.Evidence{}
		}

		out = append(out, model.Argument{
			ID:           f.newID(),
			Assertion:    c.Assertion,
			Reasoning:    c.Reasoning,
			Evidence:     evidence,
			Significance: c.Significance,
			Result:       c.Result,
			Certainty:    c.Certainty,
			Format:       format,
			Title:        title,
			Tags:         c.Tags,
			CreatedAt:    now,
			UpdatedAt:    now,
			Assessment:   c.Assessment,
			Topic:        c.Topic,
			Relevance:    c.Relevance,
		})
	}
	return out
}
