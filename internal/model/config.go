package model

import "time"

// Config is the complete ArgClinic configuration
type Config struct {
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Limiter LimiterConfig `yaml:"limiter" mapstructure:"limiter"`
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`
}

// LLMConfig configures the remote completion provider
type LLMConfig struct {
	// Provider name: "anthropic" or "openai"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for the provider (usually set via environment)
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// MaxTokens caps the sampled completion length; required before any call
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature for sampling
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// Timeout for API requests (seconds)
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries bounds retry attempts on transient failures
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// CacheConfig configures the in-memory completion cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LimiterConfig bounds outbound request rate to the provider
type LimiterConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// FilterConfig configures the argument keep-predicate
type FilterConfig struct {
	// MinCertainty is the exclusive lower bound for extraction confidence
	MinCertainty float64 `yaml:"min_certainty" mapstructure:"min_certainty"`

	// Denylist holds substrings that disqualify an assertion (case-sensitive)
	Denylist []string `yaml:"denylist" mapstructure:"denylist"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "anthropic",
			Model:       "claude-v1",
			MaxTokens:   2000,
			Temperature: 0.7,
			Timeout:     60,
			MaxRetries:  3,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 2 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Limiter: LimiterConfig{
			RequestsPerSecond: 1,
			Burst:             3,
		},
		Filter: FilterConfig{
			MinCertainty: 0.2,
			Denylist:     []string{"suck"},
		},
	}
}
