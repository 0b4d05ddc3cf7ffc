package model

import "time"

// Format identifies the debate competition style a submission is tagged with
type Format string

const (
	FormatPolicy      Format = "Policy"
	FormatLD          Format = "LD"
	FormatPublicForum Format = "Public Forum"
	FormatMSPDP       Format = "MSPDP"
)

// Formats lists every supported debate format
func Formats() []Format {
	return []Format{FormatPolicy, FormatLD, FormatPublicForum, FormatMSPDP}
}

// Valid reports whether the format is one of the supported styles
func (f Format) Valid() bool {
	switch f {
	case FormatPolicy, FormatLD, FormatPublicForum, FormatMSPDP:
		return true
	}
	return false
}

// ParseFormat resolves a user-supplied format label
func ParseFormat(s string) (Format, bool) {
	f := Format(s)
	if f.Valid() {
		return f, true
	}
	return "", false
}

// Argument is one structured ARESR breakdown produced per detected argument.
// Records are created only by the filter stage and never mutated afterwards.
type Argument struct {
	ID           string      `json:"id"`
	Assertion    string      `json:"assertion"`
	Reasoning    string      `json:"reasoning"`
	Evidence     []Evidence  `json:"evidence"`
	Significance string      `json:"significance"`
	Result       string      `json:"result"`
	Certainty    float64     `json:"certainty"` // Extraction confidence in [0,1]
	Format       Format      `json:"format"`
	Title        string      `json:"title,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	Assessment   *Assessment `json:"assessment,omitempty"`
	Context      *Context    `json:"context,omitempty"` // Location in the original input
	Topic        string      `json:"topic,omitempty"`
	Relevance    float64     `json:"relevance,omitempty"` // Topic relevance in [0,1]
}

// Evidence is one cited piece of supporting material
type Evidence struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

// Score is a single quality rating with the grader's stated reason
type Score struct {
	Value  float64 `json:"value"`
	Reason string  `json:"reason"`
}

// Assessment holds per-component quality scores and free-text strength notes
type Assessment struct {
	AScore       Score  `json:"aScore"`
	RScore       Score  `json:"rScore"`
	EScore       Score  `json:"eScore"`
	SScore       Score  `json:"sScore"`
	OverallScore Score  `json:"overallScore"`
	AStrength    string `json:"aStrength,omitempty"`
	RStrength    string `json:"rStrength,omitempty"`
	EStrength    string `json:"eStrength,omitempty"`
	SStrength    string `json:"sStrength,omitempty"`
	RWeakness    string `json:"rWeakness,omitempty"`
}

// Context annotates where in the submitted text an argument was found
type Context struct {
	Text       string `json:"text"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}
