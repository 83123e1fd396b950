package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the summary pipeline.
var (
	// ErrNoTranscript indicates the video has no retrievable transcript.
	// Transcript sources collapse every failure mode into this error and
	// log the underlying cause.
	ErrNoTranscript = errors.New("transcript unavailable")

	// ErrInvalidVideoURL indicates the URL does not contain a well-formed
	// video identifier.
	ErrInvalidVideoURL = errors.New("invalid video URL")

	// ErrEmptyTranscript indicates a prompt was requested for an empty
	// transcript.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrPoolExhausted indicates every credential in the pool has been
	// consumed.
	ErrPoolExhausted = errors.New("credential pool exhausted")

	// ErrSafetyBlocked indicates the completion was blocked by the
	// provider's safety filter.
	ErrSafetyBlocked = errors.New("content blocked by safety filter")

	// ErrNoCandidates indicates the provider returned no candidates at all.
	ErrNoCandidates = errors.New("no response generated")

	// ErrRetriesExceeded indicates the attempt budget ran out without a
	// more specific terminal classification.
	ErrRetriesExceeded = errors.New("all completion attempts failed")

	// ErrCacheMiss indicates no cached entry was found.
	ErrCacheMiss = errors.New("cache miss")
)

// RateLimitError marks a provider failure as recoverable through credential
// rotation or backoff. Provider adapters produce it; nothing else should.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// BadCredentialError marks a provider failure as a rejected, malformed or
// expired API key. It is terminal: retrying with the same key cannot succeed.
type BadCredentialError struct {
	Err error
}

func (e *BadCredentialError) Error() string {
	return fmt.Sprintf("bad credential: %v", e.Err)
}

func (e *BadCredentialError) Unwrap() error { return e.Err }

// EmptyResponseError indicates the provider produced a candidate without
// usable text. Reason carries the provider's finish reason for diagnostics.
type EmptyResponseError struct {
	Reason string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("empty response, finish reason %s", e.Reason)
}

// QuotaExhaustedError indicates rate limiting persisted through every
// rotation and retry. Remaining reports how many unused keys were left in
// the pool when the loop gave up.
type QuotaExhaustedError struct {
	Remaining int
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("quota exhausted, %d backup keys remaining", e.Remaining)
}

// UserMessage renders a pipeline error as the user-facing text embedded in a
// summary response. The strings are part of the HTTP contract; clients match
// on the "Error:" prefix.
func UserMessage(err error) string {
	var (
		emptyResp *EmptyResponseError
		badCred   *BadCredentialError
		quota     *QuotaExhaustedError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyTranscript):
		return "Error: Transcript is empty."
	case errors.Is(err, ErrSafetyBlocked):
		return "Error: Content blocked by safety filter."
	case errors.As(err, &emptyResp):
		return fmt.Sprintf("Error: Empty response. Finish Reason: %s", emptyResp.Reason)
	case errors.Is(err, ErrNoCandidates):
		return "Error: No response generated."
	case errors.As(err, &badCred):
		return "Error: Invalid or expired API key. Please check your API key configuration."
	case errors.As(err, &quota):
		if quota.Remaining > 0 {
			return fmt.Sprintf(
				"Error: API quota exceeded. %d backup keys remaining but all failed. Please try again later.",
				quota.Remaining)
		}
		return "Error: All API keys have been exhausted. Please wait for quota reset or add more API keys."
	case errors.Is(err, ErrRetriesExceeded):
		return "Error: Failed to generate summary after multiple attempts."
	default:
		return fmt.Sprintf("Error during summarization: %v", err)
	}
}
