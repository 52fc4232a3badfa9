package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreTrack(t *testing.T) {
	t.Run("exact match scores full", func(t *testing.T) {
		track := &CatalogTrack{Title: "Ijipita", Artists: []string{"Winky D"}}
		score := scoreTrack("Winky D", "Ijipita", track)
		assert.InDelta(t, 1.0, score, 0.001)
	})

	t.Run("wrong title is penalized even with exact artist", func(t *testing.T) {
		track := &CatalogTrack{Title: "Completely Different", Artists: []string{"Winky D"}}
		score := scoreTrack("Winky D", "Ijipita", track)
		assert.Less(t, score, 0.3)
	})

	t.Run("title outweighs artist", func(t *testing.T) {
		rightTitle := &CatalogTrack{Title: "Ijipita", Artists: []string{"Someone Else Entirely"}}
		rightArtist := &CatalogTrack{Title: "Some Other Song Name", Artists: []string{"Winky D"}}
		assert.Greater(
			t,
			scoreTrack("Winky D", "Ijipita", rightTitle),
			scoreTrack("Winky D", "Ijipita", rightArtist),
		)
	})
}

func TestLowerClean(t *testing.T) {
	assert.Equal(t, "winky d", lowerClean("  Winky   D  "))
	assert.Equal(t, "jah prayzah", lowerClean("JAH PRAYZAH"))
	assert.Equal(t, "", lowerClean("   "))
}

func TestIsKnownArtist(t *testing.T) {
	aliases := map[string]string{
		"gemma griffiths": "Gemma Griffiths",
	}

	assert.True(t, isKnownArtist([]string{"Winky D"}, nil), "fallback list")
	assert.True(t, isKnownArtist([]string{"Gemma Griffiths"}, aliases), "alias map")
	assert.True(t, isKnownArtist([]string{"Ed Sheeran", "Holy Ten"}, nil), "any listed artist counts")
	assert.False(t, isKnownArtist([]string{"Ed Sheeran"}, aliases))
}
