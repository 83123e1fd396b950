package domain

import "context"

// CredentialPool hands out API keys in a fixed order, one at a time.
// Implementations must be safe for concurrent use.
type CredentialPool interface {
	// Current returns the key at the cursor without advancing.
	Current() (string, error)

	// Advance moves the cursor to the next key and returns it. Once the
	// last key is reached the cursor stays put and every further call
	// returns ErrPoolExhausted.
	Advance() (string, error)

	// Status reports the cursor position for observability.
	Status() KeyStatus
}

// CompletionModel is a single immutable (credential, model name) handle.
type CompletionModel interface {
	// Generate sends a prompt and returns the normalized result. Failures
	// are classified by the provider adapter: *RateLimitError for
	// recoverable throttling, *BadCredentialError for rejected keys, and
	// a plain error for everything else.
	Generate(ctx context.Context, prompt string) (*CompletionResult, error)
}

// ModelFactory builds completion model handles bound to the credential that
// is active at build time. Handles are never mutated; credential rotation
// builds a fresh one.
type ModelFactory interface {
	// NewModel binds the active credential to a model handle.
	NewModel(ctx context.Context) (CompletionModel, error)

	// Name returns the provider identifier.
	Name() string

	// Model returns the model name handles are built for.
	Model() string

	// Supports reports whether the factory can build handles for the
	// given model name.
	Supports(model string) bool
}

// ModelRegistry resolves the factory responsible for a model name.
type ModelRegistry interface {
	// Register adds a factory to the registry.
	Register(ctx context.Context, factory ModelFactory) error

	// GetByModel retrieves a factory that supports the given model.
	GetByModel(ctx context.Context, model string) (ModelFactory, error)

	// List returns all registered factory names.
	List(ctx context.Context) ([]string, error)
}

// TranscriptSource retrieves transcripts from the video hosting service.
type TranscriptSource interface {
	// ListLanguages returns the transcript languages available for a
	// video, in the order the service advertises them.
	ListLanguages(ctx context.Context, videoID string) ([]Language, error)

	// Fetch returns the full transcript text in the first language from
	// languageCodes that has a track, fragments joined with single
	// spaces. Every failure mode is reported as ErrNoTranscript with the
	// cause attached.
	Fetch(ctx context.Context, videoID string, languageCodes []string) (string, error)
}

// VideoCatalog looks up video metadata from the hosting service's catalog.
type VideoCatalog interface {
	// Lookup returns the title and duration for a video.
	Lookup(ctx context.Context, videoID string) (*CatalogEntry, error)
}

// PromptBuilder constructs completion prompts from transcripts.
type PromptBuilder interface {
	// Summary builds the fixed-format summary prompt.
	Summary(transcript string) (string, error)

	// AdvancedSummary builds a summary prompt honoring style, detail
	// level and translation options.
	AdvancedSummary(transcript string, opts SummaryOptions) (string, error)

	// Question builds a prompt answering a question about a prior summary.
	Question(summary, question string) (string, error)
}

// DetailsCache stores video details between lookups. A nil cache disables
// caching entirely.
type DetailsCache interface {
	// Get retrieves cached details, or ErrCacheMiss.
	Get(ctx context.Context, videoID string) (*VideoDetails, error)

	// Set stores details under the video identifier.
	Set(ctx context.Context, videoID string, details *VideoDetails) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
