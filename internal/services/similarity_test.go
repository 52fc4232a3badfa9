package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical", a: "winky d", b: "winky d", expected: 1.0},
		{name: "both empty", a: "", b: "", expected: 1.0},
		{name: "one empty", a: "winky d", b: "", expected: 0.0},
		{name: "completely different", a: "abc", b: "xyz", expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, charSimilarity(tt.a, tt.b), 0.001)
		})
	}

	t.Run("spacing variant scores as near match", func(t *testing.T) {
		// Space-stripped comparison makes these identical
		assert.Equal(t, 1.0, charSimilarity("winkyd", "winky d"))
	})

	t.Run("single typo stays high", func(t *testing.T) {
		score := charSimilarity("ijipita", "ijipta")
		assert.Greater(t, score, 0.8)
		assert.Less(t, score, 1.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, charSimilarity("holy ten", "holyten"), charSimilarity("holyten", "holy ten"))
	})
}

func TestTokenOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical tokens", a: "winky d", b: "winky d", expected: 1.0},
		{name: "no overlap", a: "winky d", b: "holy ten", expected: 0.0},
		// Jaccard: |{winky, d}| over |{winky, d, feat., holy, ten}|
		{name: "partial overlap", a: "winky d feat. holy ten", b: "winky d", expected: 0.4},
		{name: "empty left", a: "", b: "winky d", expected: 0.0},
		{name: "both empty", a: "", b: "", expected: 0.0},
		{name: "order does not matter", a: "d winky", b: "winky d", expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tokenOverlap(tt.a, tt.b), 0.001)
		})
	}
}

func TestCombinedSimilarity(t *testing.T) {
	// Identity scores exactly 1.0 through both components
	assert.Equal(t, 1.0, combinedSimilarity("ijipita", "ijipita"))

	// Blend is bounded by its parts
	score := combinedSimilarity("ijipita", "ijipta")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestWeightedScore(t *testing.T) {
	t.Run("exact pair scores 1.0", func(t *testing.T) {
		assert.InDelta(t, 1.0, weightedScore("winky d", "ijipita", "winky d", "ijipita"), 0.001)
	})

	t.Run("exact artist carries a typo title", func(t *testing.T) {
		score := weightedScore("winky d", "ijipita", "winky d", "ijipta")
		assert.GreaterOrEqual(t, score, 0.7)
		assert.Less(t, score, 0.92)
	})

	t.Run("artist token reorder with exact title stays above 0.90", func(t *testing.T) {
		score := weightedScore("d winky", "ijipita", "winky d", "ijipita")
		assert.GreaterOrEqual(t, score, 0.90)
	})

	t.Run("unrelated pair scores low", func(t *testing.T) {
		score := weightedScore("winky d", "ijipita", "jah prayzah", "mudhara vachauya")
		assert.Less(t, score, 0.5)
	})

	t.Run("title outweighs artist", func(t *testing.T) {
		titleOff := weightedScore("winky d", "zzzzzzz", "winky d", "ijipita")
		artistOff := weightedScore("zzzzzzz", "ijipita", "winky d", "ijipita")
		assert.Less(t, titleOff, artistOff)
	})
}
