package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidbrief/vidbrief/internal/observability"
)

// defaultVideoTitle is served when the catalog has no title for a video.
const defaultVideoTitle = "Video Summary"

// SummaryService orchestrates the summary pipeline: transcript retrieval,
// prompt construction and completion with credential rotation.
type SummaryService struct {
	transcripts TranscriptSource
	catalog     VideoCatalog
	prompts     PromptBuilder
	completions *CompletionClient
	pool        CredentialPool
	cache       DetailsCache
}

// NewSummaryService creates the service. cache may be nil, which disables
// details caching.
func NewSummaryService(
	transcripts TranscriptSource,
	catalog VideoCatalog,
	prompts PromptBuilder,
	completions *CompletionClient,
	pool CredentialPool,
	cache DetailsCache,
) *SummaryService {
	return &SummaryService{
		transcripts: transcripts,
		catalog:     catalog,
		prompts:     prompts,
		completions: completions,
		pool:        pool,
		cache:       cache,
	}
}

// Summarize retrieves the transcript behind a watch URL and generates a
// summary honoring the requested style, detail level and translation target.
// languageCode pins the transcript language; when empty, every advertised
// language is tried in order.
//
// Generation failures are folded into the returned text as an "Error:"
// marker rather than surfaced as errors. Only transcript retrieval failures
// return an error.
func (s *SummaryService) Summarize(ctx context.Context, videoURL, languageCode string, opts SummaryOptions) (string, error) {
	videoID := ExtractVideoID(videoURL)

	transcript, err := s.resolveTranscript(ctx, videoID, languageCode)
	if err != nil {
		return "", err
	}

	prompt, err := s.prompts.AdvancedSummary(transcript, opts)
	if err != nil {
		return UserMessage(err), nil
	}

	summary, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		observability.FromContext(ctx).Warn("summary generation failed",
			observability.String("video_id", videoID),
			observability.Error(err))
		return UserMessage(err), nil
	}

	return summary, nil
}

// Answer generates an answer to a question about a previously generated
// summary. Generation failures come back as "Error:" marker text, the same
// contract as Summarize.
func (s *SummaryService) Answer(ctx context.Context, question, summary string) (string, error) {
	prompt, err := s.prompts.Question(summary, question)
	if err != nil {
		return UserMessage(err), nil
	}

	answer, err := s.completions.Complete(ctx, prompt)
	if err != nil {
		observability.FromContext(ctx).Warn("answer generation failed",
			observability.Error(err))
		return UserMessage(err), nil
	}

	return answer, nil
}

// Details returns the title, available transcript languages and duration for
// a watch URL. Catalog failures degrade to the default title and a zero
// duration; missing transcripts are fatal.
func (s *SummaryService) Details(ctx context.Context, videoURL string) (*VideoDetails, error) {
	logger := observability.FromContext(ctx)

	videoID := ExtractVideoID(videoURL)
	if !ValidVideoID(videoID) {
		return nil, ErrInvalidVideoURL
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, videoID)
		if err == nil {
			logger.Debug("video details served from cache",
				observability.String("video_id", videoID))
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("details cache read failed",
				observability.Error(err))
		}
	}

	languages, err := s.transcripts.ListLanguages(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		return nil, fmt.Errorf("%w: no caption tracks for video %s", ErrNoTranscript, videoID)
	}

	details := &VideoDetails{
		Title:     defaultVideoTitle,
		Languages: languages,
	}

	entry, err := s.catalog.Lookup(ctx, videoID)
	if err != nil {
		logger.Warn("catalog lookup failed",
			observability.String("video_id", videoID),
			observability.Error(err))
	} else {
		if entry.Title != "" {
			details.Title = entry.Title
		}
		details.Duration = entry.Duration
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, videoID, details); err != nil {
			logger.Warn("details cache write failed",
				observability.Error(err))
		}
	}

	return details, nil
}

// KeyStatus reports the credential pool rotation state.
func (s *SummaryService) KeyStatus() KeyStatus {
	return s.pool.Status()
}

// resolveTranscript fetches the transcript, pinned to languageCode when set
// and otherwise trying every advertised language in order.
func (s *SummaryService) resolveTranscript(ctx context.Context, videoID, languageCode string) (string, error) {
	if languageCode != "" {
		return s.transcripts.Fetch(ctx, videoID, []string{languageCode})
	}

	languages, err := s.transcripts.ListLanguages(ctx, videoID)
	if err != nil {
		return "", err
	}
	if len(languages) == 0 {
		return "", fmt.Errorf("%w: no caption tracks for video %s", ErrNoTranscript, videoID)
	}

	codes := make([]string, 0, len(languages))
	for _, language := range languages {
		codes = append(codes, language.Code)
	}

	return s.transcripts.Fetch(ctx, videoID, codes)
}
