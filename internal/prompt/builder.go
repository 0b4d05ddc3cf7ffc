// Package prompt composes the analysis instruction sent to the LLM provider.
// Building is pure and deterministic; input validation happens in the caller.
package prompt

import (
	"fmt"
	"strings"

	"github.com/debatelab/argclinic/internal/model"
)

// Request carries the submission fields embedded into the prompt
type Request struct {
	Text       string
	Resolution string
	Format     model.Format

	// DateRange optionally constrains acceptable evidence dates
	DateRange string
}

// responseSchema is the literal JSON shape the model is instructed to return
const responseSchema = `{
  "arguments": [{
    "assertion": "claim",
    "reasoning": "logic",
    "evidence": [{"content": "evidence", "source": "source", "date": "date"}],
    "significance": "impact",
    "result": "conclusion",
    "certainty": 0.0-1.0,
    "topic": "short topic label",
    "relevance": 0.0-1.0,
    "assessment": {
      "aScore": {"value": 0.0-1.0, "reason": "why"},
      "rScore": {"value": 0.0-1.0, "reason": "why"},
      "eScore": {"value": 0.0-1.0, "reason": "why"},
      "sScore": {"value": 0.0-1.0, "reason": "why"},
      "overallScore": {"value": 0.0-1.0, "reason": "why"},
      "aStrength": "strength description",
      "rStrength": "strength description",
      "eStrength": "strength description",
      "sStrength": "strength description",
      "rWeakness": "weakness description"
    },
    "tagline": "summary of the argument"
  }]
}`

// Build composes the full analysis prompt, embedding the submission verbatim
func Build(req Request) string {
	var b strings.Builder

	b.WriteString("Analyze this debate argument in relation to the resolution, using standard debate terminology and logical analysis. Provide specific reasons for each score.\n\n")
	fmt.Fprintf(&b, "Resolution: %s\n", req.Resolution)
	fmt.Fprintf(&b, "Format: %s\n", req.Format)
	if req.DateRange != "" {
		fmt.Fprintf(&b, "Evidence Date Range: %s\n", req.DateRange)
	}
	fmt.Fprintf(&b, "Argument Text: %s\n\n", req.Text)

	b.WriteString("Return a JSON object with this exact structure:\n")
	b.WriteString(responseSchema)

	return b.String()
}
