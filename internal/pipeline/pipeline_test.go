package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/debatelab/argclinic/internal/extract"
	"github.com/debatelab/argclinic/internal/llm"
	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/validate"
)

// stubProvider returns a canned completion and counts calls
type stubProvider struct {
	completion string
	err        error
	calls      int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Completion: s.completion}, nil
}

func testParser(provider llm.Provider) *Parser {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return NewParserWithProvider(cfg, provider)
}

const goodCompletion = `Sure! {"arguments":[{"assertion":"A","reasoning":"B","evidence":[],"significance":"C","result":"D","certainty":0.9}]}`

func validRequest() Request {
	return Request{
		Text:       "Nuclear energy reduces emissions.",
		Format:     model.FormatPolicy,
		Resolution: "Resolved: expand nuclear power",
	}
}

func TestParse_HappyPath(t *testing.T) {
	parser := testParser(&stubProvider{completion: goodCompletion})

	result, err := parser.Parse(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Arguments) != 1 {
		t.Fatalf("Expected 1 argument, got %d", len(result.Arguments))
	}

	arg := result.Arguments[0]
	if arg.Assertion != "A" || arg.Reasoning != "B" || arg.Certainty != 0.9 {
		t.Errorf("Unexpected record: %+v", arg)
	}
	if arg.ID == "" {
		t.Error("Expected a fresh id")
	}
	if arg.Format != model.FormatPolicy {
		t.Errorf("Expected caller-supplied format, got %s", arg.Format)
	}
	if !arg.CreatedAt.Equal(arg.UpdatedAt) {
		t.Error("createdAt and updatedAt should match at creation")
	}
}

func TestParse_FieldValidation(t *testing.T) {
	parser := testParser(&stubProvider{completion: goodCompletion})

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"empty text", Request{Format: model.FormatLD, Resolution: "r"}, "text"},
		{"whitespace text", Request{Text: "  \n", Format: model.FormatLD, Resolution: "r"}, "text"},
		{"missing format", Request{Text: "t", Resolution: "r"}, "format"},
		{"bad format", Request{Text: "t", Format: "Parliamentary", Resolution: "r"}, "format"},
		{"missing resolution", Request{Text: "t", Format: model.FormatLD}, "resolution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(context.Background(), tt.req)
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Expected FieldError, got %v", err)
			}
			if fieldErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, fieldErr.Field)
			}
		})
	}
}

func TestParse_NoNetworkCallOnBadInput(t *testing.T) {
	provider := &stubProvider{completion: goodCompletion}
	parser := testParser(provider)

	_, _ = parser.Parse(context.Background(), Request{Format: model.FormatLD, Resolution: "r"})
	if provider.calls != 0 {
		t.Errorf("Input validation must precede the network call, got %d calls", provider.calls)
	}
}

func TestParse_NoJSONInCompletion(t *testing.T) {
	parser := testParser(&stubProvider{completion: "I found no arguments worth extracting."})

	_, err := parser.Parse(context.Background(), validRequest())
	if !errors.Is(err, extract.ErrNoJSON) {
		t.Fatalf("Expected ErrNoJSON, got %v", err)
	}
}

func TestParse_SchemaError(t *testing.T) {
	parser := testParser(&stubProvider{completion: `{"results": []}`})

	_, err := parser.Parse(context.Background(), validRequest())
	var schemaErr *validate.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected SchemaError, got %v", err)
	}
}

func TestParse_AllFilteredOut(t *testing.T) {
	completion := `{"arguments":[{"assertion":"A","reasoning":"B","certainty":0.1},{"assertion":"C","reasoning":"D","certainty":0.2}]}`
	parser := testParser(&stubProvider{completion: completion})

	_, err := parser.Parse(context.Background(), validRequest())
	if !errors.Is(err, ErrNoArguments) {
		t.Fatalf("Expected ErrNoArguments outcome, got %v", err)
	}
}

func TestParse_DenylistedAssertion(t *testing.T) {
	completion := `{"arguments":[{"assertion":"your plans suck","reasoning":"B","certainty":0.9}]}`
	parser := testParser(&stubProvider{completion: completion})

	_, err := parser.Parse(context.Background(), validRequest())
	if !errors.Is(err, ErrNoArguments) {
		t.Fatalf("Expected denylisted argument to be dropped, got %v", err)
	}
}

func TestParse_ProviderErrorPropagates(t *testing.T) {
	parser := testParser(&stubProvider{err: llm.ErrEmptyCompletion})

	_, err := parser.Parse(context.Background(), validRequest())
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("Expected provider error to surface, got %v", err)
	}
}

func TestParse_CachesCompletions(t *testing.T) {
	provider := &stubProvider{completion: goodCompletion}
	cfg := model.DefaultConfig()
	parser := NewParserWithProvider(cfg, provider)

	req := validRequest()
	if _, err := parser.Parse(context.Background(), req); err != nil {
		t.Fatalf("First parse failed: %v", err)
	}
	if _, err := parser.Parse(context.Background(), req); err != nil {
		t.Fatalf("Second parse failed: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call with cache enabled, got %d", provider.calls)
	}

	// A different resolution is a different submission
	req.Resolution = "Resolved: something else"
	if _, err := parser.Parse(context.Background(), req); err != nil {
		t.Fatalf("Third parse failed: %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("Expected cache miss on changed resolution, got %d calls", provider.calls)
	}
}

func TestParse_SanitizesMarkupInput(t *testing.T) {
	provider := &stubProvider{completion: goodCompletion}
	parser := testParser(provider)

	req := validRequest()
	req.Text = "<p>Nuclear energy reduces emissions.</p>"

	result, err := parser.Parse(context.Background(), req)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Arguments) != 1 {
		t.Fatalf("Expected 1 argument, got %d", len(result.Arguments))
	}
}

func TestParse_UniqueIDsAcrossBatch(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`{"arguments":[`)
	for i := 0; i < 10; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"assertion":"A","reasoning":"B","certainty":0.9}`)
	}
	sb.WriteString(`]}`)

	parser := testParser(&stubProvider{completion: sb.String()})

	result, err := parser.Parse(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, arg := range result.Arguments {
		if seen[arg.ID] {
			t.Fatalf("Duplicate id in batch: %s", arg.ID)
		}
		seen[arg.ID] = true
	}
}
