// Package export renders one argument record, plus an optional
// counter-argument thread, as a markdown document.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/debatelab/argclinic/internal/model"
)

// Markdown produces the export document for one argument. The category labels
// the heading; thread entries each get their own "Counter-Argument N" section.
func Markdown(arg model.Argument, category string, thread []model.Argument) string {
	if category == "" {
		category = "Uncategorized"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Argument %s - %s\n", arg.ID, category)
	if len(thread) > 0 {
		b.WriteString("🗣️ Active Debate Thread\n\n")
	} else {
		b.WriteString("💭 Single Argument\n\n")
	}

	b.WriteString("**Original Argument:**\n")
	writeBody(&b, arg)

	for i, counter := range thread {
		fmt.Fprintf(&b, "\n## Counter-Argument %d\n", i+1)
		writeBody(&b, counter)
	}

	return b.String()
}

// writeBody emits the labeled ARESR lines shared by originals and counters
func writeBody(b *strings.Builder, arg model.Argument) {
	fmt.Fprintf(b, "**Assertion:** %s\n", arg.Assertion)
	fmt.Fprintf(b, "**Reasoning:** %s\n", arg.Reasoning)
	b.WriteString("**Evidence:**\n")
	for _, ev := range arg.Evidence {
		fmt.Fprintf(b, "- %s (%s, %s)\n", ev.Content, ev.Source, ev.Date)
	}
	fmt.Fprintf(b, "**Significance:** %s\n", arg.Significance)
	fmt.Fprintf(b, "**Result:** %s\n", arg.Result)
	fmt.Fprintf(b, "**Certainty:** %.0f%%\n", arg.Certainty*100)
	b.WriteString("**Assessment:**\n")
	var a model.Assessment
	if arg.Assessment != nil {
		a = *arg.Assessment
	}
	fmt.Fprintf(b, "- **A Strength:** %s\n", a.AStrength)
	fmt.Fprintf(b, "- **R Strength:** %s\n", a.RStrength)
	fmt.Fprintf(b, "- **E Strength:** %s\n", a.EStrength)
	fmt.Fprintf(b, "- **S Strength:** %s\n", a.SStrength)
	fmt.Fprintf(b, "- **R Weakness:** %s\n", a.RWeakness)
}

// Save writes the document to disk; formatting and saving stay separate so
// callers can hand the document to other sinks
func Save(path string, doc string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
