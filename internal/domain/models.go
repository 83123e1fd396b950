package domain

// SummaryOptions selects the prompt format for a summary request. Unknown
// values fall back to the default style and medium detail; an empty or "none"
// translation target disables translation.
type SummaryOptions struct {
	Style       string `json:"summary_style,omitempty"`
	DetailLevel string `json:"detail_level,omitempty"`
	TranslateTo string `json:"translate_to,omitempty"`
}

// Language identifies one available transcript language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// VideoDetails carries catalog metadata and transcript availability for a
// single video. Duration is in seconds, zero when the catalog lookup failed.
type VideoDetails struct {
	Title     string     `json:"title"`
	Languages []Language `json:"languages"`
	Duration  int        `json:"duration"`
}

// CatalogEntry is the catalog metadata for a single video.
type CatalogEntry struct {
	Title    string
	Duration int
}

// KeyStatus reports the rotation state of the credential pool. ActiveKey is
// 1-based for display.
type KeyStatus struct {
	ActiveKey     int `json:"current_key_index"`
	TotalKeys     int `json:"total_keys"`
	RemainingKeys int `json:"remaining_keys"`
}

// FinishSafety is the provider-neutral finish reason for candidates dropped
// by a safety filter. Adapters normalize their provider's vocabulary to it.
const FinishSafety = "SAFETY"

// CompletionResult is the normalized outcome of a single model invocation.
// Candidates counts the raw candidates the provider returned; Text holds the
// first candidate's text, FinishReason its finish reason.
type CompletionResult struct {
	Text         string
	FinishReason string
	Candidates   int
}
