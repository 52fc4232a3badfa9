package services

import (
	"testing"

	"chartline/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare array",
			input:    `[{"vote_index": 0}]`,
			expected: `[{"vote_index": 0}]`,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n[{\"vote_index\": 0}]\n```",
			expected: `[{"vote_index": 0}]`,
		},
		{
			name:     "surrounding prose",
			input:    "Here are the matches:\n[{\"vote_index\": 0}]\nLet me know!",
			expected: `[{"vote_index": 0}]`,
		},
		{
			name:     "no array returns input",
			input:    "I could not process this request",
			expected: "I could not process this request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONArray(tt.input))
		})
	}
}

func TestParseConfidence(t *testing.T) {
	assert.Equal(t, models.ConfidenceHigh, parseConfidence("high"))
	assert.Equal(t, models.ConfidenceHigh, parseConfidence("HIGH"))
	assert.Equal(t, models.ConfidenceMedium, parseConfidence("medium"))
	assert.Equal(t, models.ConfidenceLow, parseConfidence("low"))
	assert.Equal(t, models.ConfidenceNone, parseConfidence("none"))
	assert.Equal(t, models.ConfidenceNone, parseConfidence("gibberish"))
	assert.Equal(t, models.ConfidenceNone, parseConfidence(""))
}

func TestBuildVoteMatchingPrompt(t *testing.T) {
	votes := []VoteToMatch{
		{DisplayName: "winkyd - ijipita", MatchKey: "winkyd::ijipita", Count: 3},
	}
	songs := []models.CanonicalSong{
		{Artist: "Winky D", Title: "Ijipita", CanonicalName: "Winky D - Ijipita"},
	}

	prompt := buildVoteMatchingPrompt(votes, songs)

	// Songs are referenced by position, never by UUID
	assert.Contains(t, prompt, "[0] Winky D - Ijipita")
	assert.Contains(t, prompt, `"winkyd - ijipita"`)
	assert.Contains(t, prompt, "winkyd::ijipita")
	assert.NotContains(t, prompt, songs[0].ID.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "toolongfor", truncate("toolongforthis", 10))
}
