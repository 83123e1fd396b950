package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests.
type Handler struct {
	summaries *domain.SummaryService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(summaries *domain.SummaryService) *Handler {
	return &Handler{
		summaries: summaries,
	}
}

// Request/response payloads. Field names are part of the frontend contract.
type summarizeRequest struct {
	VideoURL     string `json:"video_url"`
	LanguageCode string `json:"language_code"`
	SummaryStyle string `json:"summary_style"`
	DetailLevel  string `json:"detail_level"`
	TranslateTo  string `json:"translate_to"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type questionRequest struct {
	Question string `json:"question"`
	Summary  string `json:"summary"`
	VideoURL string `json:"video_url"`
}

type questionResponse struct {
	Answer string `json:"answer"`
}

type detailsRequest struct {
	VideoURL string `json:"video_url"`
}

// detailsResponse renders a missing duration as null rather than zero.
type detailsResponse struct {
	Title     string            `json:"title"`
	Languages []domain.Language `json:"languages"`
	Duration  *int              `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleSummarize processes summary requests. Option fields are passed
// through as received; unknown values fall back to the default style and
// medium detail downstream.
func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.VideoURL == "" {
		writeError(w, http.StatusBadRequest, "video_url is required")
		return
	}

	ctx = observability.WithVideoID(ctx, domain.ExtractVideoID(req.VideoURL))

	logger := observability.FromContext(ctx)
	logger.Info("summarize request received",
		zap.String("style", req.SummaryStyle),
		zap.String("detail_level", req.DetailLevel),
		zap.String("translate_to", req.TranslateTo),
	)

	opts := domain.SummaryOptions{
		Style:       req.SummaryStyle,
		DetailLevel: req.DetailLevel,
		TranslateTo: req.TranslateTo,
	}

	summary, err := h.summaries.Summarize(ctx, req.VideoURL, req.LanguageCode, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNoTranscript) {
			writeError(w, http.StatusBadRequest, "Could not retrieve transcript for the given URL")
			return
		}
		logger.Error("summarize failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate summary: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{Summary: summary})
}

// HandleQuestion answers a question about a previously generated summary.
func (h *Handler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	if req.Summary == "" {
		writeError(w, http.StatusBadRequest, "summary is required")
		return
	}

	if req.VideoURL != "" {
		ctx = observability.WithVideoID(ctx, domain.ExtractVideoID(req.VideoURL))
	}

	answer, err := h.summaries.Answer(ctx, req.Question, req.Summary)
	if err != nil {
		observability.FromContext(ctx).Error("question failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate answer: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{Answer: answer})
}

// HandleVideoDetails reports the title, transcript languages and duration
// for a video.
func (h *Handler) HandleVideoDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.VideoURL == "" {
		writeError(w, http.StatusBadRequest, "video_url is required")
		return
	}

	ctx = observability.WithVideoID(ctx, domain.ExtractVideoID(req.VideoURL))

	details, err := h.summaries.Details(ctx, req.VideoURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidVideoURL):
			writeError(w, http.StatusBadRequest, "Invalid YouTube video URL")
		case errors.Is(err, domain.ErrNoTranscript):
			writeError(w, http.StatusNotFound, "No transcripts available for this video")
		default:
			observability.FromContext(ctx).Error("video details failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve video details: %v", err))
		}
		return
	}

	resp := detailsResponse{
		Title:     details.Title,
		Languages: details.Languages,
	}
	if details.Duration > 0 {
		resp.Duration = &details.Duration
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleAPIStatus reports the credential pool rotation state.
func (h *Handler) HandleAPIStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.summaries.KeyStatus())
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// writeJSON writes payload with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Status is already written, nothing left to do.
		return
	}
}

// writeError writes the {"error": ...} payload clients match on.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
