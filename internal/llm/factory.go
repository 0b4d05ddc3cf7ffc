package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates an LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "anthropic", "claude", "":
		return NewAnthropicProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: anthropic, openai)", config.Provider)
	}
}
