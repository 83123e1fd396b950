// Package prompt builds the completion prompts used by the summary pipeline.
package prompt

import (
	"fmt"

	"github.com/vidbrief/vidbrief/internal/domain"
)

// Summary styles accepted by AdvancedSummary. Unknown styles fall back to
// StyleDefault.
const (
	StyleDefault      = "default"
	StyleBulletPoints = "bullet-points"
	StyleParagraphs   = "paragraphs"
	StyleQA           = "qa"
	StyleTimeline     = "timeline"
)

// Detail levels accepted by AdvancedSummary. Unknown levels fall back to
// DetailMedium.
const (
	DetailBrief    = "brief"
	DetailMedium   = "medium"
	DetailDetailed = "detailed"
)

// TranslateNone disables translation.
const TranslateNone = "none"

// Transcript character budgets per detail level. Longer transcripts are cut
// at the budget and marked with an ellipsis to keep token usage bounded.
const (
	briefBudget    = 6000
	defaultBudget  = 8000
	detailedBudget = 12000
)

const summaryTemplate = `Summarize this YouTube video transcript in an organized format:

%s

Provide a clear summary covering:
1. Main Topic
2. Key Points (3-5 points)
3. Important Details
4. Conclusions

Summary:`

const advancedTemplate = `Summarize this YouTube video transcript in the requested format:

%s

%s

Instructions: %s%s

Summary:`

const questionTemplate = `Based on the following video summary, please answer the user's question accurately and helpfully.

Video Summary:
%s

User Question: %s

Please provide a clear, informative answer based solely on the information available in the summary.
If the summary doesn't contain enough information to answer the question, please say so and suggest what additional information might be needed.

Answer:`

var styleInstructions = map[string]string{
	StyleDefault: `Provide a clear summary covering:
1. Main Topic
2. Key Points (3-5 points)
3. Important Details
4. Conclusions`,

	StyleBulletPoints: `Provide a bullet-point summary with:
• Main topic and overview
• Key points (use bullet points throughout)
• Important details (as sub-bullets)
• Final conclusions`,

	StyleParagraphs: `Provide a well-structured paragraph summary with:
- Opening paragraph: Main topic and context
- Body paragraphs: Key points and details (2-3 paragraphs)
- Closing paragraph: Conclusions and takeaways`,

	StyleQA: `Provide a Q&A format summary with:
Q: What is the main topic of this video?
A: [Answer]

Q: What are the key points discussed?
A: [Answer]

Q: What are the most important details?
A: [Answer]

Q: What conclusions are drawn?
A: [Answer]`,

	StyleTimeline: `Provide a timeline-style summary with:
🕐 Beginning: [What starts the discussion]
🕕 Early Discussion: [Initial key points]
🕘 Middle: [Main content and details]
🕛 End: [Conclusions and final thoughts]`,
}

var detailInstructions = map[string]string{
	DetailBrief:    "Keep it concise and focus only on the most essential information.",
	DetailMedium:   "Provide a balanced level of detail with key information.",
	DetailDetailed: "Include comprehensive details, examples, and thorough explanations.",
}

// languageNames maps translation target codes to the language names spelled
// out in the prompt. Codes outside the map are passed through verbatim.
var languageNames = map[string]string{
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
}

// Builder constructs completion prompts from transcripts.
type Builder struct{}

// NewBuilder creates a prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Summary builds the fixed-format summary prompt. The transcript is cut to
// the medium budget.
func (b *Builder) Summary(transcript string) (string, error) {
	if transcript == "" {
		return "", domain.ErrEmptyTranscript
	}

	return fmt.Sprintf(summaryTemplate, truncate(transcript, defaultBudget)), nil
}

// AdvancedSummary builds a summary prompt honoring style, detail level and
// translation options. Unknown styles and detail levels fall back to the
// defaults; an empty or "none" translation target disables translation.
func (b *Builder) AdvancedSummary(transcript string, opts domain.SummaryOptions) (string, error) {
	if transcript == "" {
		return "", domain.ErrEmptyTranscript
	}

	budget := defaultBudget
	switch opts.DetailLevel {
	case DetailBrief:
		budget = briefBudget
	case DetailDetailed:
		budget = detailedBudget
	}

	style, ok := styleInstructions[opts.Style]
	if !ok {
		style = styleInstructions[StyleDefault]
	}

	detail, ok := detailInstructions[opts.DetailLevel]
	if !ok {
		detail = detailInstructions[DetailMedium]
	}

	var translation string
	if opts.TranslateTo != "" && opts.TranslateTo != TranslateNone {
		target, ok := languageNames[opts.TranslateTo]
		if !ok {
			target = opts.TranslateTo
		}
		translation = fmt.Sprintf("\n\nIMPORTANT: Translate the entire summary to %s.", target)
	}

	return fmt.Sprintf(advancedTemplate, truncate(transcript, budget), style, detail, translation), nil
}

// Question builds a prompt answering a question about a prior summary.
func (b *Builder) Question(summary, question string) (string, error) {
	return fmt.Sprintf(questionTemplate, summary, question), nil
}

// truncate cuts transcript to limit characters, marking the cut with a
// trailing ellipsis. Limits count runes so multibyte transcripts are never
// split mid-character.
func truncate(transcript string, limit int) string {
	runes := []rune(transcript)
	if len(runes) <= limit {
		return transcript
	}

	return string(runes[:limit]) + "..."
}
