package models

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeText lowercases, trims, and collapses internal whitespace.
// Every grouping key is built from text in this form.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.ToLower(text)
}

// MatchKey builds the grouping key used to bucket raw votes before
// canonical resolution.
func MatchKey(artist, song string) string {
	return NormalizeText(artist) + "::" + NormalizeText(song)
}

// DisplayName builds the "Artist - Song" form shown back to voters.
func DisplayName(artist, song string) string {
	artist = whitespaceRegex.ReplaceAllString(strings.TrimSpace(artist), " ")
	song = whitespaceRegex.ReplaceAllString(strings.TrimSpace(song), " ")
	return artist + " - " + song
}
