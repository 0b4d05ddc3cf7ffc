package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	base := Config{APIKey: "k", MaxTokens: 100}

	tests := []struct {
		provider string
		wantName string
	}{
		{"anthropic", "anthropic"},
		{"claude", "anthropic"},
		{"", "anthropic"},
		{"openai", "openai"},
		{"OpenAI", "openai"},
	}

	for _, tt := range tests {
		t.Run("provider="+tt.provider, func(t *testing.T) {
			cfg := base
			cfg.Provider = tt.provider
			p, err := NewProvider(cfg)
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected provider %s, got %s", tt.wantName, p.Name())
			}
		})
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "ollama", APIKey: "k", MaxTokens: 100})
	if err == nil || !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Fatalf("Expected unknown provider error, got %v", err)
	}
}

func TestNewProvider_MissingCredentials(t *testing.T) {
	_, err := NewProvider(Config{Provider: "anthropic"})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Expected ErrConfiguration, got %v", err)
	}
}
