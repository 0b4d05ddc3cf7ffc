// Package pipeline orchestrates the parse flow: prompt → completion →
// extraction → validation → filtering. It is request-scoped and stateless
// between invocations apart from the optional completion cache.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/debatelab/argclinic/internal/cache"
	"github.com/debatelab/argclinic/internal/extract"
	"github.com/debatelab/argclinic/internal/filter"
	"github.com/debatelab/argclinic/internal/llm"
	"github.com/debatelab/argclinic/internal/model"
	"github.com/debatelab/argclinic/internal/prompt"
	"github.com/debatelab/argclinic/internal/validate"
)

// Request is one user submission
type Request struct {
	Text       string
	Format     model.Format
	Resolution string

	// DateRange optionally constrains acceptable evidence dates
	DateRange string
}

// Result is the outcome of a successful parse: a non-empty sequence of
// enriched argument records. Partial results are never returned.
type Result struct {
	Arguments []model.Argument
}

// Parser runs the sequential parse pipeline
type Parser struct {
	provider llm.Provider
	filter   *filter.Filter
	cache    cache.Cache
	cacheTTL time.Duration
	config   *model.Config
}

// NewParser creates a parser from configuration. Provider credentials are
// validated here, before any request is accepted.
func NewParser(cfg *model.Config) (*Parser, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	return NewParserWithProvider(cfg, provider), nil
}

// NewParserWithProvider creates a parser around an existing provider
func NewParserWithProvider(cfg *model.Config, provider llm.Provider) *Parser {
	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	return &Parser{
		provider: provider,
		filter:   filter.New(cfg.Filter.MinCertainty, filter.DenylistPolicy(cfg.Filter.Denylist), nil, nil),
		cache:    c,
		cacheTTL: cfg.Cache.TTL,
		config:   cfg,
	}
}

// Parse runs one submission through the full pipeline. It returns either a
// non-empty sequence of records, a *FieldError for bad input, ErrNoArguments
// when nothing survives filtering, or a classified provider/parse error.
func (p *Parser) Parse(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	text := extract.Sanitize(req.Text)

	promptText := prompt.Build(prompt.Request{
		Text:       text,
		Resolution: strings.TrimSpace(req.Resolution),
		Format:     req.Format,
		DateRange:  req.DateRange,
	})

	completion, err := p.fetchCompletion(ctx, promptText, req)
	if err != nil {
		return nil, err
	}

	span, err := extract.JSON(completion)
	if err != nil {
		return nil, err
	}

	candidates, err := validate.Response(span)
	if err != nil {
		return nil, err
	}

	args := p.filter.Apply(candidates, req.Format)
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	return &Result{Arguments: args}, nil
}

// fetchCompletion consults the cache before calling the provider
func (p *Parser) fetchCompletion(ctx context.Context, promptText string, req Request) (string, error) {
	key := cache.Key(req.Text, string(req.Format), req.Resolution, req.DateRange)

	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			return string(cached), nil
		}
	}

	resp, err := p.provider.Complete(ctx, llm.CompletionRequest{Prompt: promptText})
	if err != nil {
		return "", err
	}

	if p.cache != nil {
		_ = p.cache.Set(key, []byte(resp.Completion), p.cacheTTL)
	}

	return resp.Completion, nil
}

// validateRequest enforces per-field input requirements before any network
// call is attempted
func validateRequest(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return &FieldError{Field: "text", Message: "Please enter your argument text"}
	}
	if !req.Format.Valid() {
		return &FieldError{Field: "format", Message: "Please select a debate format"}
	}
	if strings.TrimSpace(req.Resolution) == "" {
		return &FieldError{Field: "resolution", Message: "Please select or enter a resolution"}
	}
	return nil
}
