package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
)

// CatalogClient looks up video metadata through the Data API v3 videos
// endpoint. A token bucket in front of the API keeps lookup bursts inside
// the per-second quota.
type CatalogClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCatalogClient creates a catalog client.
func NewCatalogClient(config Config) *CatalogClient {
	return &CatalogClient{
		apiKey:  config.APIKey,
		baseURL: config.DataBaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}
}

// Data API response structures.
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Lookup returns the title and duration for a video. An unparseable
// duration degrades to zero rather than failing the lookup.
func (c *CatalogClient) Lookup(ctx context.Context, videoID string) (*domain.CatalogEntry, error) {
	if c.apiKey == "" {
		return nil, errors.New("API key is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("part", "contentDetails,snippet")
	query.Set("id", videoID)
	query.Set("key", c.apiKey)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/videos?"+query.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var videos videosResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&videos); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if len(videos.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := videos.Items[0]

	duration, err := ParseISODuration(item.ContentDetails.Duration)
	if err != nil {
		observability.FromContext(ctx).Warn("unparseable video duration",
			observability.String("video_id", videoID),
			observability.String("duration", item.ContentDetails.Duration),
			observability.Error(err))
		duration = 0
	}

	return &domain.CatalogEntry{
		Title:    item.Snippet.Title,
		Duration: duration,
	}, nil
}
