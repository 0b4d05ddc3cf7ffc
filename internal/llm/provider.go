package llm

import (
	"context"

	"github.com/debatelab/argclinic/internal/model"
)

// Provider defines the interface for LLM completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt to the remote service and returns the raw
	// completion text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// Prompt is the full instruction text, built by the prompt package
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens overrides the configured sampling bound when > 0
	MaxTokens int
}

// CompletionResponse contains the raw completion output
type CompletionResponse struct {
	// Completion is the raw text returned by the remote service
	Completion string

	// Model is the model that generated the response
	Model string

	// StopReason reports why sampling ended (provider-specific)
	StopReason string
}

// Config holds provider configuration
type Config struct {
	// Provider name: "anthropic", "openai"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider; required
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// MaxTokens bounds sampled completion length; required
	MaxTokens int

	// Temperature for sampling
	Temperature float64

	// Timeout for API requests
	Timeout int // seconds

	// MaxRetries bounds retries on transient failures
	MaxRetries int

	// RequestsPerSecond and Burst throttle outbound calls
	RequestsPerSecond float64
	Burst             int
}

// ConfigFromModel converts model.Config sections to llm.Config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:          cfg.LLM.Provider,
		Model:             cfg.LLM.Model,
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		MaxTokens:         cfg.LLM.MaxTokens,
		Temperature:       cfg.LLM.Temperature,
		Timeout:           cfg.LLM.Timeout,
		MaxRetries:        cfg.LLM.MaxRetries,
		RequestsPerSecond: cfg.Limiter.RequestsPerSecond,
		Burst:             cfg.Limiter.Burst,
	}
}
