// Package echo provides a development provider that returns the prompt it
// was given without calling any external API. Selecting COMPLETION_MODEL=echo
// runs the full pipeline offline and shows the exact rendered prompt, which
// is useful for frontend work and for inspecting style, detail and
// translation instructions end to end.
package echo

import (
	"context"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
)

const (
	providerName = "echo"
	modelName    = "echo"
)

// Factory builds echo model handles. No configuration or credentials are
// involved.
type Factory struct{}

// NewFactory creates an echo model factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewModel returns an echo model handle.
func (f *Factory) NewModel(_ context.Context) (domain.CompletionModel, error) {
	return &Model{}, nil
}

// Name returns the provider identifier.
func (f *Factory) Name() string {
	return providerName
}

// Model returns the model name handles are built for.
func (f *Factory) Model() string {
	return modelName
}

// Supports reports whether the factory can serve the given model name.
func (f *Factory) Supports(model string) bool {
	return model == modelName
}

// Model echoes prompts back as completions.
type Model struct{}

// Generate returns the prompt itself as the generated text.
func (m *Model) Generate(ctx context.Context, prompt string) (*domain.CompletionResult, error) {
	observability.FromContext(ctx).Debug("echoing prompt",
		observability.Int("length", len(prompt)))

	return &domain.CompletionResult{
		Text:         prompt,
		FinishReason: "STOP",
		Candidates:   1,
	}, nil
}
