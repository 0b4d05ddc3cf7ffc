package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/debatelab/argclinic/internal/llm"
	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/pipeline"
)

type stubProvider struct {
	completion string
	err        error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Completion: s.completion}, nil
}

func testServer(provider llm.Provider) *Server {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return New(pipeline.NewParserWithProvider(cfg, provider))
}

func postParse(t *testing.T, srv *Server, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleParse_Success(t *testing.T) {
	completion := `{"arguments":[{"assertion":"A","reasoning":"B","certainty":0.9}]}`
	srv := testServer(&stubProvider{completion: completion})

	rec := postParse(t, srv, map[string]string{
		"text":       "some argument",
		"format":     "Policy",
		"resolution": "Resolved: something",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Arguments []model.Argument `json:"arguments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Arguments) != 1 || resp.Arguments[0].Assertion != "A" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Arguments[0].Format != model.FormatPolicy {
		t.Errorf("Expected format echoed onto record, got %s", resp.Arguments[0].Format)
	}
}

func TestHandleParse_FieldErrors(t *testing.T) {
	srv := testServer(&stubProvider{completion: `{"arguments":[]}`})

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"missing text", map[string]string{"format": "LD", "resolution": "r"}, "text"},
		{"missing format", map[string]string{"text": "t", "resolution": "r"}, "format"},
		{"missing resolution", map[string]string{"text": "t", "format": "LD"}, "resolution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postParse(t, srv, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rec.Code)
			}

			var resp struct {
				Error string `json:"error"`
				Field string `json:"field"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, resp.Field)
			}
			if resp.Error == "" {
				t.Error("Expected a user-facing message")
			}
		})
	}
}

func TestHandleParse_NoArgumentsOutcome(t *testing.T) {
	completion := `{"arguments":[{"assertion":"A","reasoning":"B","certainty":0.1}]}`
	srv := testServer(&stubProvider{completion: completion})

	rec := postParse(t, srv, map[string]string{
		"text":       "weak argument",
		"format":     "Policy",
		"resolution": "Resolved: something",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No valid arguments found") {
		t.Errorf("Expected guidance message, got %s", rec.Body.String())
	}
}

func TestHandleParse_RemoteFailureIsGeneric(t *testing.T) {
	srv := testServer(&stubProvider{err: &llm.TransportError{StatusCode: 503}})

	rec := postParse(t, srv, map[string]string{
		"text":       "some argument",
		"format":     "Policy",
		"resolution": "Resolved: something",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Please try again") {
		t.Errorf("Expected retry-suggesting message, got %s", body)
	}
	if strings.Contains(body, "503") {
		t.Errorf("Internal detail should not leak to the client: %s", body)
	}
}

func TestHandleParse_BadBody(t *testing.T) {
	srv := testServer(&stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}
