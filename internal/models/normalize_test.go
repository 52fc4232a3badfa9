package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase", input: "Winky D", expected: "winky d"},
		{name: "trims whitespace", input: "  Winky D  ", expected: "winky d"},
		{name: "collapses internal whitespace", input: "Winky   D", expected: "winky d"},
		{name: "tabs and newlines", input: "Winky\tD\n", expected: "winky d"},
		{name: "empty string", input: "", expected: ""},
		{name: "only whitespace", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t, "winky d::ijipita", MatchKey("Winky D", "Ijipita"))

	// Invariant to case and whitespace variation
	variants := [][2]string{
		{"winky d", "ijipita"},
		{"WINKY D", "IJIPITA"},
		{" Winky  D ", " Ijipita "},
	}
	for _, v := range variants {
		assert.Equal(t, "winky d::ijipita", MatchKey(v[0], v[1]))
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Winky D - Ijipita", DisplayName(" Winky  D ", " Ijipita "))
}

func TestVerifiedArtistAllNames(t *testing.T) {
	artist := &VerifiedArtist{
		Name:    "Winky D",
		Aliases: "Winkyd\n Ninja President \n",
	}
	artist.NameNormalized = NormalizeText(artist.Name)

	names := artist.AllNames()
	assert.Contains(t, names, "winky d")
	assert.Contains(t, names, "winkyd")
	assert.Contains(t, names, "ninja president")
	assert.Len(t, names, 3)
}
