package youtube_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief/internal/youtube"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{value: "PT45S", expected: 45},
		{value: "PT3M", expected: 180},
		{value: "PT15M33S", expected: 933},
		{value: "PT1H", expected: 3600},
		{value: "PT1H2M30S", expected: 3750},
		{value: "P1D", expected: 86400},
		{value: "P1DT2H", expected: 93600},
		{value: "PT0S", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			seconds, err := youtube.ParseISODuration(tt.value)

			require.NoError(t, err)
			require.Equal(t, tt.expected, seconds)
		})
	}
}

func TestParseISODuration_Invalid(t *testing.T) {
	values := []string{
		"",
		"P",
		"PT",
		"1H30M",
		"PT1H30",
		"PT1.5S",
		"P1M",
		"P1Y",
		"P1W",
		"PTT1S",
	}

	for _, value := range values {
		t.Run(value, func(t *testing.T) {
			_, err := youtube.ParseISODuration(value)

			require.Error(t, err)
		})
	}
}
