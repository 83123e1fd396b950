// Package gemini provides the Gemini completion provider. It calls the REST
// API directly and normalizes responses and errors to domain types, so the
// retry loop never inspects provider wire formats.
package gemini

import (
	"context"
	"strings"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
)

// Factory builds Gemini model handles bound to the active credential.
type Factory struct {
	client *Client
	config Config
	model  string
	pool   domain.CredentialPool
}

// NewFactory creates a Gemini model factory.
func NewFactory(config Config, model string, pool domain.CredentialPool) *Factory {
	return &Factory{
		client: NewClient(config),
		config: config,
		model:  model,
		pool:   pool,
	}
}

// NewModel binds the active credential to a model handle. A key configured
// via GEMINI_API_KEY wins over the pool.
func (f *Factory) NewModel(_ context.Context) (domain.CompletionModel, error) {
	apiKey := f.config.APIKey
	if apiKey == "" {
		key, err := f.pool.Current()
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	return &Model{
		client: f.client,
		apiKey: apiKey,
		model:  f.model,
	}, nil
}

// Name returns the provider identifier.
func (f *Factory) Name() string {
	return "gemini"
}

// Model returns the model name handles are built for.
func (f *Factory) Model() string {
	return f.model
}

// Supports reports whether the factory can serve the given model name.
func (f *Factory) Supports(model string) bool {
	return strings.HasPrefix(model, "gemini")
}

// Model is an immutable (credential, model name) handle.
type Model struct {
	client *Client
	apiKey string
	model  string
}

// Generate sends the prompt and normalizes the outcome.
func (m *Model) Generate(ctx context.Context, prompt string) (*domain.CompletionResult, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API")

	resp, err := m.client.GenerateContent(ctx, m.apiKey, m.model, prompt)
	if err != nil {
		logger.Error("Gemini API call failed", observability.Error(err))
		return nil, classifyError(err)
	}

	return toDomainResult(resp), nil
}

// Keyword sets for classifying provider errors. Matching runs on the
// lowercased error text because the REST error body is opaque.
var (
	rateLimitKeywords     = []string{"429", "quota", "rate limit"}
	badCredentialKeywords = []string{"400", "api key", "invalid", "expired"}
)

// classifyError maps a raw client error onto the domain error taxonomy.
func classifyError(err error) error {
	text := strings.ToLower(err.Error())

	for _, keyword := range rateLimitKeywords {
		if strings.Contains(text, keyword) {
			return &domain.RateLimitError{Err: err}
		}
	}

	for _, keyword := range badCredentialKeywords {
		if strings.Contains(text, keyword) {
			return &domain.BadCredentialError{Err: err}
		}
	}

	return err
}

// toDomainResult converts an API response to the provider-neutral result.
// Part texts are concatenated; the first candidate wins.
func toDomainResult(resp *Response) *domain.CompletionResult {
	result := &domain.CompletionResult{
		Candidates: len(resp.Candidates),
	}

	if len(resp.Candidates) == 0 {
		return result
	}

	candidate := resp.Candidates[0]

	var text strings.Builder
	for _, p := range candidate.Content.Parts {
		text.WriteString(p.Text)
	}

	result.Text = text.String()
	result.FinishReason = candidate.FinishReason

	return result
}
