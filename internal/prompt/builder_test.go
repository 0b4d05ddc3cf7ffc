package prompt

import (
	"strings"
	"testing"

	"github.com/debatelab/argclinic/internal/model"
)

func TestBuild_EmbedsInputsVerbatim(t *testing.T) {
	req := Request{
		Text:       "Nuclear energy reduces carbon emissions significantly.",
		Resolution: "Resolved: The United States should expand nuclear power.",
		Format:     model.FormatPolicy,
	}

	got := Build(req)

	for _, want := range []string{
		"Resolution: Resolved: The United States should expand nuclear power.",
		"Format: Policy",
		"Argument Text: Nuclear energy reduces carbon emissions significantly.",
		`"arguments"`,
		`"assertion"`,
		`"certainty"`,
		`"overallScore"`,
		`"tagline"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestBuild_DateRange(t *testing.T) {
	req := Request{
		Text:       "text",
		Resolution: "res",
		Format:     model.FormatLD,
	}

	if strings.Contains(Build(req), "Evidence Date Range") {
		t.Error("Date range line should be omitted when empty")
	}

	req.DateRange = "2020-2024"
	if !strings.Contains(Build(req), "Evidence Date Range: 2020-2024") {
		t.Error("Date range line missing")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	req := Request{Text: "a", Resolution: "b", Format: model.FormatMSPDP}
	if Build(req) != Build(req) {
		t.Error("Build should be deterministic for identical inputs")
	}
}
