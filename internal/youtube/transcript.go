// Package youtube retrieves transcripts and catalog metadata from YouTube.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
)

// Innertube ANDROID client identity. The ANDROID surface hands out caption
// track URLs without the attestation token the WEB client requires.
const (
	androidClientVersion    = "20.10.38"
	androidSdkVersion       = 30
	androidUserAgent        = "com.google.android.youtube/" + androidClientVersion + " (Linux; U; Android 11) gzip"
	androidClientNameHeader = "3"
)

// asrKind marks auto-generated caption tracks.
const asrKind = "asr"

// maxTimedTextBytes caps how much caption XML is read per track. Multi-hour
// tracks run to a few megabytes; a document past the cap is rejected whole,
// never truncated mid-element.
const maxTimedTextBytes = 10 << 20

// TranscriptClient retrieves caption tracks through the Innertube player
// endpoint. No API key is involved; the endpoint is the one the mobile
// client itself calls.
type TranscriptClient struct {
	playerURL  string
	httpClient *http.Client
}

// NewTranscriptClient creates a transcript client.
func NewTranscriptClient(config Config) *TranscriptClient {
	return &TranscriptClient{
		playerURL: config.PlayerURL,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Innertube request/response structures.
type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        playerContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"` // "asr" = auto-generated
	Name         trackName `json:"name"`
}

// trackName carries the human-readable track label, which arrives either as
// simpleText or as runs depending on the client surface.
type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n trackName) text() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}

	var sb strings.Builder
	for _, run := range n.Runs {
		sb.WriteString(run.Text)
	}

	return sb.String()
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// ListLanguages returns the transcript languages available for a video, in
// the order the player advertises them. Manual and auto-generated tracks in
// the same language are listed separately.
func (c *TranscriptClient) ListLanguages(ctx context.Context, videoID string) ([]domain.Language, error) {
	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return nil, noTranscript(ctx, videoID, err)
	}

	languages := make([]domain.Language, 0, len(tracks))
	for _, track := range tracks {
		languages = append(languages, domain.Language{
			Code: track.LanguageCode,
			Name: track.Name.text(),
		})
	}

	return languages, nil
}

// Fetch returns the transcript in the first language from languageCodes that
// has a track, fragments joined with single spaces. Every failure mode comes
// back as domain.ErrNoTranscript with the cause attached.
func (c *TranscriptClient) Fetch(ctx context.Context, videoID string, languageCodes []string) (string, error) {
	if len(languageCodes) == 0 {
		return "", noTranscript(ctx, videoID, errors.New("no language codes requested"))
	}

	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		return "", noTranscript(ctx, videoID, err)
	}

	track, ok := pickTrack(tracks, languageCodes)
	if !ok {
		return "", noTranscript(ctx, videoID,
			fmt.Errorf("no track for languages %v", languageCodes))
	}

	text, err := c.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return "", noTranscript(ctx, videoID, err)
	}
	if text == "" {
		return "", noTranscript(ctx, videoID, errors.New("empty caption track"))
	}

	observability.FromContext(ctx).Debug("transcript fetched",
		observability.String("video_id", videoID),
		observability.String("language", track.LanguageCode),
		observability.Int("length", len(text)))

	return text, nil
}

// captionTracks calls the player endpoint and returns the advertised tracks.
func (c *TranscriptClient) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	reqBody, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{
			Client: playerClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidClientVersion,
				AndroidSdkVersion: androidSdkVersion,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.playerURL+"?prettyPrint=false",
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", androidUserAgent)
	httpReq.Header.Set("X-Youtube-Client-Name", androidClientNameHeader)
	httpReq.Header.Set("X-Youtube-Client-Version", androidClientVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var player playerResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&player); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", player.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}

	return tracks, nil
}

// pickTrack selects a track for the given language preferences. Manual
// tracks in any preferred language win over auto-generated ones; within
// each group the preference order decides. Languages outside the preference
// list are never used.
func pickTrack(tracks []captionTrack, languageCodes []string) (captionTrack, bool) {
	for _, code := range languageCodes {
		for _, track := range tracks {
			if track.LanguageCode == code && track.Kind != asrKind {
				return track, true
			}
		}
	}

	for _, code := range languageCodes {
		for _, track := range tracks {
			if track.LanguageCode == code {
				return track, true
			}
		}
	}

	return captionTrack{}, false
}

// fetchTimedText downloads a timedtext XML track and flattens it to plain
// text. HTML entities inside caption lines are decoded.
func (c *TranscriptClient) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", androidUserAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxTimedTextBytes {
		return "", fmt.Errorf("caption track exceeds %d bytes", maxTimedTextBytes)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("failed to parse timedtext: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

// noTranscript logs the underlying cause and collapses it into
// domain.ErrNoTranscript, the only transcript failure callers see.
func noTranscript(ctx context.Context, videoID string, cause error) error {
	observability.FromContext(ctx).Warn("transcript retrieval failed",
		observability.String("video_id", videoID),
		observability.Error(cause))

	return fmt.Errorf("%w: %v", domain.ErrNoTranscript, cause)
}
