package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsNoisePhrases(t *testing.T) {
	in := "Here is the generated prompt for you. The event was a success."
	assert.Equal(t, "The event was a success.", Sanitize(in))

	in = "A production-ready summary of a production ready event."
	assert.Equal(t, "A summary of a event.", Sanitize(in))
}

func TestSanitizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "Heading bold item", Sanitize("# Heading **bold** > item"))
	assert.Equal(t, "code", Sanitize("`code`"))
}

func TestSanitizeCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", Sanitize("  a   b\t\tc  "))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Here is  the prompt. Actual **content** here.",
		"plain text",
		"",
		"### production-ready ###",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input: %q", in)
	}
}

func TestSanitizeOr(t *testing.T) {
	assert.Equal(t, "N/A", SanitizeOr("   ", "N/A"))
	assert.Equal(t, "N/A", SanitizeOr("", "N/A"))
	assert.Equal(t, "kept", SanitizeOr("kept", "N/A"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 March 2024", FormatDate("2024-03-15"))
	assert.Equal(t, "15 March 2024", FormatDate("2024-03-15T00:00:00"))
	assert.Equal(t, "2 January 2025", FormatDate("2025-01-02"))
	assert.Equal(t, "N/A", FormatDate(""))
	assert.Equal(t, "N/A", FormatDate("not-a-date"))
	assert.Equal(t, "N/A", FormatDate("2024-13-01"))
	assert.Equal(t, "N/A", FormatDate("2024-03-99"))
	assert.Equal(t, "N/A", FormatDate("2024-03-0"))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "2:30 PM", FormatTime("14:30"))
	assert.Equal(t, "9:05 AM", FormatTime("09:05"))
	assert.Equal(t, "N/A", FormatTime(""))
	assert.Equal(t, "N/A", FormatTime("25:99"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Offline", Capitalize("offline"))
	assert.Equal(t, "Hybrid", Capitalize("hybrid"))
	assert.Equal(t, "N/A", Capitalize(""))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "AI_Workshop_2024", SafeFilename("AI Workshop 2024"))
	assert.Equal(t, "Reunion__Batch_of__15_", SafeFilename("Reunion: Batch of '15!"))
}

func TestGenerateCode(t *testing.T) {
	a, err := GenerateCode(8)
	require.NoError(t, err)
	b, err := GenerateCode(8)
	require.NoError(t, err)
	assert.Len(t, a, 16) // hex doubles the byte count
	assert.NotEqual(t, a, b)
}
