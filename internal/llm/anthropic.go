package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// defaultStopSequences end sampling at the next conversational turn
var defaultStopSequences = []string{"\n\nHuman:", "\n\nAssistant:"}

// sleepFunc is the sleep function used between retries (injectable for tests)
var sleepFunc = time.Sleep

// AnthropicProvider implements the Provider interface against Anthropic's
// text completion API
type AnthropicProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	config     Config
}

// Anthropic API structures
type completeRequest struct {
	Prompt            string   `json:"prompt"`
	Model             string   `json:"model"`
	MaxTokensToSample int      `json:"max_tokens_to_sample"`
	Temperature       float64  `json:"temperature"`
	StopSequences     []string `json:"stop_sequences,omitempty"`
}

type completeResponse struct {
	Completion string `json:"completion"`
	StopReason string `json:"stop_reason"`
	Model      string `json:"model"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewAnthropicProvider creates a new Anthropic provider. The API key and the
// max-token sampling bound are required up front.
func NewAnthropicProvider(config Config) (*AnthropicProvider, error) {
	var missing []string
	if config.APIKey == "" {
		missing = append(missing, "api key")
	}
	if config.MaxTokens <= 0 {
		missing = append(missing, "max tokens")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(missing, ", "))
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 3
	}

	return &AnthropicProvider{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		config:  config,
	}, nil
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete issues one completion call with deterministic sampling parameters
func (p *AnthropicProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = "claude-v1"
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	// The completion API expects the Human/Assistant conversation framing
	apiReq := completeRequest{
		Prompt:            fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", req.Prompt),
		Model:             model,
		MaxTokensToSample: maxTokens,
		Temperature:       p.config.Temperature,
		StopSequences:     defaultStopSequences,
	}

	resp, err := p.completeWithRetry(ctx, apiReq)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(resp.Completion) == "" {
		return nil, ErrEmptyCompletion
	}

	return &CompletionResponse{
		Completion: resp.Completion,
		Model:      resp.Model,
		StopReason: resp.StopReason,
	}, nil
}

// completeWithRetry retries transient failures with exponential backoff
func (p *AnthropicProvider) completeWithRetry(ctx context.Context, apiReq completeRequest) (*completeResponse, error) {
	maxRetries := p.config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Err: err}
		}

		resp, err := p.makeRequest(ctx, apiReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return nil, lastErr
}

// isRetryable reports whether the failure is worth another attempt
func isRetryable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	if te.StatusCode >= 500 && te.StatusCode < 600 {
		return true
	}
	if te.StatusCode == 429 {
		return true
	}
	if te.StatusCode == 0 {
		s := strings.ToLower(te.Err.Error())
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}

// makeRequest makes one HTTP request to the completion endpoint
func (p *AnthropicProvider) makeRequest(ctx context.Context, apiReq completeRequest) (*completeResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/complete", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr anthropicError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, &TransportError{
				StatusCode: httpResp.StatusCode,
				Err:        fmt.Errorf("%s - %s", apiErr.Error.Type, apiErr.Error.Message),
			}
		}
		return nil, &TransportError{
			StatusCode: httpResp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(respBody))),
		}
	}

	var resp completeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
