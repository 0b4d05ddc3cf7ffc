package extract

import (
	"strings"
	"testing"
)

func TestSanitize_PlainTextUnchanged(t *testing.T) {
	input := "Nuclear energy reduces emissions. 2 < 3 proves nothing here."
	if got := Sanitize(input); got != input {
		t.Errorf("Plain text should pass through unchanged, got %q", got)
	}
}

func TestSanitize_StripsMarkup(t *testing.T) {
	input := `<div><p>Nuclear energy <b>reduces</b> emissions.</p><script>alert(1)</script></div>`

	got := Sanitize(input)
	if strings.Contains(got, "<") {
		t.Errorf("Expected tags stripped, got %q", got)
	}
	if !strings.Contains(got, "Nuclear energy") || !strings.Contains(got, "reduces") {
		t.Errorf("Expected visible text kept, got %q", got)
	}
	if strings.Contains(got, "alert") {
		t.Errorf("Script content should be dropped, got %q", got)
	}
}

func TestSanitize_TrimsWhitespace(t *testing.T) {
	if got := Sanitize("  some argument  \n"); got != "some argument" {
		t.Errorf("Expected trimmed text, got %q", got)
	}
}
