// Package openai provides the OpenAI completion provider using the official
// SDK. Responses and errors are normalized the same way the Gemini adapter
// does it, so the two providers are interchangeable behind the model factory
// interface.
package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
)

// finishContentFilter is OpenAI's finish reason for filtered content. The
// backend applies its safety thresholds server-side; this finish reason is
// the only signal it exposes.
const finishContentFilter = "content_filter"

// Factory builds OpenAI model handles bound to the active credential.
type Factory struct {
	config Config
	model  string
	pool   domain.CredentialPool
}

// NewFactory creates an OpenAI model factory.
func NewFactory(config Config, model string, pool domain.CredentialPool) *Factory {
	return &Factory{
		config: config,
		model:  model,
		pool:   pool,
	}
}

// NewModel binds the active credential to a model handle. A key configured
// via OPENAI_API_KEY wins over the pool. The SDK's built-in retries are
// disabled; rotation and backoff belong to the completion client.
func (f *Factory) NewModel(_ context.Context) (domain.CompletionModel, error) {
	apiKey := f.config.APIKey
	if apiKey == "" {
		key, err := f.pool.Current()
		if err != nil {
			return nil, err
		}
		apiKey = key
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}

	if f.config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(f.config.BaseURL))
	}

	if f.config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(f.config.Timeout)*time.Second))
	}

	return &Model{
		client: openai.NewClient(opts...),
		config: f.config,
		model:  f.model,
	}, nil
}

// Name returns the provider identifier.
func (f *Factory) Name() string {
	return "openai"
}

// Model returns the model name handles are built for.
func (f *Factory) Model() string {
	return f.model
}

// Supports reports whether the factory can serve the given model name.
func (f *Factory) Supports(model string) bool {
	return strings.HasPrefix(model, "gpt")
}

// Model is an immutable (credential, model name) handle.
type Model struct {
	client openai.Client
	config Config
	model  string
}

// Generate sends the prompt and normalizes the outcome.
func (m *Model) Generate(ctx context.Context, prompt string) (*domain.CompletionResult, error) {
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}

	if m.config.Temperature > 0 {
		params.Temperature = openai.Float(m.config.Temperature)
	}

	if m.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(m.config.MaxTokens))
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, classifyError(err)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	return toDomainResult(resp), nil
}

// classifyError maps SDK errors onto the domain error taxonomy using the
// HTTP status code.
func classifyError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.StatusCode {
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{Err: err}
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return &domain.BadCredentialError{Err: err}
	default:
		return err
	}
}

// toDomainResult converts an SDK response to the provider-neutral result.
// OpenAI's content filter finish reason is normalized to the shared safety
// vocabulary.
func toDomainResult(resp *openai.ChatCompletion) *domain.CompletionResult {
	result := &domain.CompletionResult{
		Candidates: len(resp.Choices),
	}

	if len(resp.Choices) == 0 {
		return result
	}

	choice := resp.Choices[0]
	result.Text = choice.Message.Content
	result.FinishReason = string(choice.FinishReason)

	if result.FinishReason == finishContentFilter {
		result.FinishReason = domain.FinishSafety
	}

	return result
}
