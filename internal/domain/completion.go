package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vidbrief/vidbrief/internal/observability"
)

const (
	// DefaultMaxRetries bounds the counted delivery attempts per request.
	DefaultMaxRetries = 3

	// DefaultBaseDelay seeds the exponential backoff between attempts.
	DefaultBaseDelay = time.Second
)

// SleepFunc pauses for the given duration, honoring context cancellation.
type SleepFunc func(ctx context.Context, d time.Duration) error

// CompletionClient sends prompts to the completion service and survives rate
// limiting by rotating credentials and backing off between attempts.
type CompletionClient struct {
	factory    ModelFactory
	pool       CredentialPool
	events     EventPublisher
	maxRetries int
	baseDelay  time.Duration
	sleep      SleepFunc
}

// NewCompletionClient creates a completion client. Non-positive maxRetries
// or baseDelay fall back to the defaults.
func NewCompletionClient(
	factory ModelFactory,
	pool CredentialPool,
	events EventPublisher,
	maxRetries int,
	baseDelay time.Duration,
) *CompletionClient {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}

	return &CompletionClient{
		factory:    factory,
		pool:       pool,
		events:     events,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      sleepContext,
	}
}

// WithSleep replaces the backoff sleeper and returns the client.
func (c *CompletionClient) WithSleep(sleep SleepFunc) *CompletionClient {
	if sleep != nil {
		c.sleep = sleep
	}
	return c
}

// Complete sends the prompt and returns the generated text.
//
// Two counters drive the loop. The outer attempt counter is bounded by
// maxRetries and pays an exponential backoff delay between rounds. Credential
// rotation is not an attempt: switching to the next pool key rebuilds the
// model handle and retries immediately, without touching the attempt counter
// or sleeping. Backoff is paid only when the provider keeps rate limiting and
// no further rotation is possible.
func (c *CompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx = observability.WithProvider(ctx, c.factory.Name())
	ctx = observability.WithModel(ctx, c.factory.Model())
	logger := observability.FromContext(ctx)

	model, err := c.factory.NewModel(ctx)
	if err != nil {
		return "", fmt.Errorf("create model: %w", err)
	}

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		for {
			result, genErr := model.Generate(ctx, prompt)
			if genErr == nil {
				return classifyResult(result)
			}

			var rateLimit *RateLimitError
			if !errors.As(genErr, &rateLimit) {
				var badCred *BadCredentialError
				if errors.As(genErr, &badCred) {
					logger.Warn("credential rejected by provider",
						observability.Error(genErr))
					return "", genErr
				}
				logger.Error("completion failed",
					observability.Error(genErr))
				return "", genErr
			}

			// Rate limited. Rotation is free: it consumes neither an
			// attempt nor a delay.
			if _, advErr := c.pool.Advance(); advErr != nil {
				break
			}

			status := c.pool.Status()
			logger.Info("rate limited, switching to next credential",
				observability.Int("active_key", status.ActiveKey),
				observability.Int("total_keys", status.TotalKeys))
			c.publish(ctx, "credential_rotated", map[string]interface{}{
				"active_key": status.ActiveKey,
				"total_keys": status.TotalKeys,
			})

			rebuilt, buildErr := c.factory.NewModel(ctx)
			if buildErr != nil {
				logger.Warn("failed to rebuild model after rotation",
					observability.Error(buildErr))
				break
			}
			model = rebuilt
		}

		if attempt < c.maxRetries-1 {
			delay := c.baseDelay * (1 << attempt)
			logger.Info("rate limit persists, backing off",
				observability.Duration("delay", delay),
				observability.Int("attempt", attempt+2),
				observability.Int("max_attempts", c.maxRetries))
			c.publish(ctx, "completion_backoff", map[string]interface{}{
				"delay_ms": delay.Milliseconds(),
				"attempt":  attempt + 2,
			})
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return "", sleepErr
			}
			continue
		}

		status := c.pool.Status()
		c.publish(ctx, "quota_exhausted", map[string]interface{}{
			"remaining_keys": status.RemainingKeys,
			"total_keys":     status.TotalKeys,
		})
		return "", &QuotaExhaustedError{Remaining: status.RemainingKeys}
	}

	return "", ErrRetriesExceeded
}

// classifyResult maps a provider result onto text or a typed failure.
func classifyResult(result *CompletionResult) (string, error) {
	switch {
	case result == nil || result.Candidates == 0:
		return "", ErrNoCandidates
	case result.Text != "":
		return result.Text, nil
	case result.FinishReason == FinishSafety:
		return "", ErrSafetyBlocked
	default:
		reason := result.FinishReason
		if reason == "" {
			reason = "UNKNOWN"
		}
		return "", &EmptyResponseError{Reason: reason}
	}
}

func (c *CompletionClient) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if c.events != nil {
		c.events.Publish(ctx, eventType, data)
	}
}

// sleepContext waits for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
