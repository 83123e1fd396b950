package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief/internal/domain"
	"github.com/vidbrief/vidbrief/internal/prompt"
)

func TestBuilder_Summary(t *testing.T) {
	builder := prompt.NewBuilder()

	t.Run("should embed the transcript in the summary prompt", func(t *testing.T) {
		result, err := builder.Summary("welcome to the show")

		require.NoError(t, err)
		require.Contains(t, result, "Summarize this YouTube video transcript in an organized format:")
		require.Contains(t, result, "welcome to the show")
		require.Contains(t, result, "Key Points (3-5 points)")
		require.True(t, strings.HasSuffix(result, "Summary:"))
	})

	t.Run("should reject an empty transcript", func(t *testing.T) {
		_, err := builder.Summary("")

		require.ErrorIs(t, err, domain.ErrEmptyTranscript)
	})

	t.Run("should cut long transcripts at the medium budget", func(t *testing.T) {
		transcript := strings.Repeat("a", 8001)

		result, err := builder.Summary(transcript)

		require.NoError(t, err)
		require.Contains(t, result, strings.Repeat("a", 8000)+"...")
		require.NotContains(t, result, strings.Repeat("a", 8001))
	})
}

func TestBuilder_AdvancedSummary(t *testing.T) {
	builder := prompt.NewBuilder()

	t.Run("should reject an empty transcript", func(t *testing.T) {
		_, err := builder.AdvancedSummary("", domain.SummaryOptions{})

		require.ErrorIs(t, err, domain.ErrEmptyTranscript)
	})

	t.Run("should fall back to the default style and medium detail", func(t *testing.T) {
		result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{})

		require.NoError(t, err)
		require.Contains(t, result, "Summarize this YouTube video transcript in the requested format:")
		require.Contains(t, result, "1. Main Topic")
		require.Contains(t, result, "Instructions: Provide a balanced level of detail with key information.")
		require.True(t, strings.HasSuffix(result, "Summary:"))
	})

	t.Run("should fall back on unknown style and detail values", func(t *testing.T) {
		opts := domain.SummaryOptions{Style: "interpretive-dance", DetailLevel: "extreme"}

		result, err := builder.AdvancedSummary("transcript", opts)

		require.NoError(t, err)
		require.Contains(t, result, "1. Main Topic")
		require.Contains(t, result, "Provide a balanced level of detail")
	})

	t.Run("should render exactly one style block", func(t *testing.T) {
		markers := map[string]string{
			prompt.StyleDefault:      "1. Main Topic",
			prompt.StyleBulletPoints: "• Main topic and overview",
			prompt.StyleParagraphs:   "- Opening paragraph: Main topic and context",
			prompt.StyleQA:           "Q: What is the main topic of this video?",
			prompt.StyleTimeline:     "🕐 Beginning: [What starts the discussion]",
		}

		for style, marker := range markers {
			t.Run(style, func(t *testing.T) {
				result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{Style: style})

				require.NoError(t, err)
				require.Contains(t, result, marker)
				for other, otherMarker := range markers {
					if other != style {
						require.NotContains(t, result, otherMarker)
					}
				}
			})
		}
	})

	t.Run("should shape the qa style as four question-answer pairs", func(t *testing.T) {
		result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{Style: prompt.StyleQA})

		require.NoError(t, err)
		require.Equal(t, 4, strings.Count(result, "Q: "))
		require.Equal(t, 4, strings.Count(result, "A: [Answer]"))
	})

	t.Run("should render each detail level", func(t *testing.T) {
		tests := []struct {
			level  string
			marker string
		}{
			{level: prompt.DetailBrief, marker: "Keep it concise and focus only on the most essential information."},
			{level: prompt.DetailMedium, marker: "Provide a balanced level of detail with key information."},
			{level: prompt.DetailDetailed, marker: "Include comprehensive details, examples, and thorough explanations."},
		}

		for _, tt := range tests {
			t.Run(tt.level, func(t *testing.T) {
				result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{DetailLevel: tt.level})

				require.NoError(t, err)
				require.Contains(t, result, "Instructions: "+tt.marker)
			})
		}
	})

	t.Run("should size the transcript budget by detail level", func(t *testing.T) {
		transcript := strings.Repeat("b", 13000)

		brief, err := builder.AdvancedSummary(transcript, domain.SummaryOptions{DetailLevel: prompt.DetailBrief})
		require.NoError(t, err)
		require.Contains(t, brief, strings.Repeat("b", 6000)+"...")
		require.NotContains(t, brief, strings.Repeat("b", 6001))

		detailed, err := builder.AdvancedSummary(transcript, domain.SummaryOptions{DetailLevel: prompt.DetailDetailed})
		require.NoError(t, err)
		require.Contains(t, detailed, strings.Repeat("b", 12000)+"...")
		require.NotContains(t, detailed, strings.Repeat("b", 12001))
	})

	t.Run("should not mark transcripts that fit the budget", func(t *testing.T) {
		transcript := strings.Repeat("c", 8000)

		result, err := builder.AdvancedSummary(transcript, domain.SummaryOptions{})

		require.NoError(t, err)
		require.NotContains(t, result, "...")
	})

	t.Run("should count the budget in runes", func(t *testing.T) {
		transcript := strings.Repeat("ü", 8001)

		result, err := builder.AdvancedSummary(transcript, domain.SummaryOptions{})

		require.NoError(t, err)
		require.Contains(t, result, strings.Repeat("ü", 8000)+"...")
	})

	t.Run("should append a translation instruction for known codes", func(t *testing.T) {
		result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{TranslateTo: "es"})

		require.NoError(t, err)
		require.Contains(t, result, "IMPORTANT: Translate the entire summary to Spanish.")
	})

	t.Run("should pass unknown translation codes through verbatim", func(t *testing.T) {
		result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{TranslateTo: "tlh"})

		require.NoError(t, err)
		require.Contains(t, result, "IMPORTANT: Translate the entire summary to tlh.")
	})

	t.Run("should skip translation when disabled", func(t *testing.T) {
		for _, target := range []string{"", prompt.TranslateNone} {
			result, err := builder.AdvancedSummary("transcript", domain.SummaryOptions{TranslateTo: target})

			require.NoError(t, err)
			require.NotContains(t, result, "IMPORTANT: Translate")
		}
	})
}

func TestBuilder_Question(t *testing.T) {
	builder := prompt.NewBuilder()

	t.Run("should embed the summary and question", func(t *testing.T) {
		result, err := builder.Question("the video is about ducks", "how many ducks?")

		require.NoError(t, err)
		require.Contains(t, result, "Video Summary:\nthe video is about ducks")
		require.Contains(t, result, "User Question: how many ducks?")
		require.True(t, strings.HasSuffix(result, "Answer:"))
	})

	t.Run("should accept an empty summary", func(t *testing.T) {
		result, err := builder.Question("", "what happened?")

		require.NoError(t, err)
		require.Contains(t, result, "User Question: what happened?")
	})
}
