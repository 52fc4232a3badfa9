package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVoteInput(t *testing.T) {
	normalizer := NewNormalizerService()

	tests := []struct {
		name     string
		input    string
		artist   string
		song     string
		songOnly bool
		ok       bool
	}{
		{name: "spaced dash", input: "Killer T - Hwahwa", artist: "Killer T", song: "Hwahwa", ok: true},
		{name: "dash no left space", input: "Killer T- Hwahwa", artist: "Killer T", song: "Hwahwa", ok: true},
		{name: "dash no right space", input: "Killer T -Hwahwa", artist: "Killer T", song: "Hwahwa", ok: true},
		{name: "tight dash", input: "Killer T-Hwahwa", artist: "Killer T", song: "Hwahwa", ok: true},
		{name: "song only", input: "Ijipita", song: "Ijipita", songOnly: true, ok: true},
		{name: "song only too short", input: "ab", ok: false},
		{name: "artist too short", input: "a - Hwahwa", ok: false},
		{name: "song too short", input: "Killer T - b", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, song, songOnly, ok := normalizer.ParseVoteInput(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.artist, artist)
				assert.Equal(t, tt.song, song)
				assert.Equal(t, tt.songOnly, songOnly)
			}
		})
	}
}

func TestNormalizeCommonWords(t *testing.T) {
	normalizer := NewNormalizerService()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ft becomes feat.", input: "Winky D ft Holy Ten", expected: "Winky D feat. Holy Ten"},
		{name: "ft. becomes feat.", input: "Winky D ft. Holy Ten", expected: "Winky D feat. Holy Ten"},
		{name: "featuring becomes feat.", input: "Winky D featuring Holy Ten", expected: "Winky D feat. Holy Ten"},
		{name: "x becomes feat.", input: "Winky D x Holy Ten", expected: "Winky D feat. Holy Ten"},
		{name: "ampersand becomes and", input: "ExQ & Holy Ten", expected: "ExQ and Holy Ten"},
		{name: "producer credit dropped", input: "Ijipita prod. by Oskid", expected: "Ijipita Oskid"},
		{name: "whitespace collapsed", input: "Winky   D", expected: "Winky D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizer.NormalizeCommonWords(tt.input))
		})
	}
}

func TestCleanSongTitle(t *testing.T) {
	normalizer := NewNormalizerService()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "official video", input: "Ijipita (Official Video)", expected: "Ijipita"},
		{name: "official music video brackets", input: "Ijipita [Official Music Video]", expected: "Ijipita"},
		{name: "lyrics video", input: "Ijipita (Lyrics Video)", expected: "Ijipita"},
		{name: "audio", input: "Ijipita (Audio)", expected: "Ijipita"},
		{name: "hd", input: "Ijipita (HD)", expected: "Ijipita"},
		{name: "trailing dash removed", input: "Ijipita - (Official Video)", expected: "Ijipita"},
		{name: "clean title untouched", input: "Ijipita", expected: "Ijipita"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizer.CleanSongTitle(tt.input))
		})
	}
}

func TestCorrectArtistTypo(t *testing.T) {
	normalizer := NewNormalizerService()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "literal match", input: "winkyd", expected: "Winky D"},
		{name: "case insensitive", input: "WinkyD", expected: "Winky D"},
		{name: "space stripped match", input: "holy ten", expected: "Holy Ten"},
		{name: "unknown passes through", input: "Gemma Griffiths", expected: "Gemma Griffiths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizer.CorrectArtistTypo(tt.input))
		})
	}
}

func TestExtractFeaturedArtists(t *testing.T) {
	normalizer := NewNormalizerService()

	t.Run("feat clause", func(t *testing.T) {
		main, featured := normalizer.ExtractFeaturedArtists("Winky D feat. Holy Ten")
		assert.Equal(t, "Winky D", main)
		assert.Equal(t, []string{"Holy Ten"}, featured)
	})

	t.Run("multiple featured", func(t *testing.T) {
		main, featured := normalizer.ExtractFeaturedArtists("Winky D feat. Holy Ten, Freeman")
		assert.Equal(t, "Winky D", main)
		assert.Equal(t, []string{"Holy Ten", "Freeman"}, featured)
	})

	t.Run("and collaboration without dash", func(t *testing.T) {
		main, featured := normalizer.ExtractFeaturedArtists("Winky D and Holy Ten")
		assert.Equal(t, "Winky D", main)
		assert.Equal(t, []string{"Holy Ten"}, featured)
	})

	t.Run("no featured", func(t *testing.T) {
		main, featured := normalizer.ExtractFeaturedArtists("Winky D")
		assert.Equal(t, "Winky D", main)
		assert.Empty(t, featured)
	})
}

func TestCleanVoteText(t *testing.T) {
	normalizer := NewNormalizerService()

	t.Run("full pipeline", func(t *testing.T) {
		artist, song := normalizer.CleanVoteText("winkyd ft holyten", "Ijipita (Official Video)")
		assert.Equal(t, "Winky D feat. Holy Ten", artist)
		assert.Equal(t, "Ijipita", song)
	})

	t.Run("feat clause relocated from title", func(t *testing.T) {
		artist, song := normalizer.CleanVoteText("Winky D", "Ijipita feat. Holy Ten")
		assert.Equal(t, "Winky D feat. Holy Ten", artist)
		assert.Equal(t, "Ijipita", song)
	})

	t.Run("relocated featured artist deduped", func(t *testing.T) {
		artist, song := normalizer.CleanVoteText("Winky D ft Holy Ten", "Ijipita ft holyten")
		assert.Equal(t, "Winky D feat. Holy Ten", artist)
		assert.Equal(t, "Ijipita", song)
	})

	t.Run("plain vote untouched", func(t *testing.T) {
		artist, song := normalizer.CleanVoteText("Jah Prayzah", "Mudhara Vachauya")
		assert.Equal(t, "Jah Prayzah", artist)
		assert.Equal(t, "Mudhara Vachauya", song)
	})
}

func TestDisplayForms(t *testing.T) {
	normalizer := NewNormalizerService()

	cleaned := normalizer.DisplayForms("winky d feat. holy ten", "ijipita")
	assert.Equal(t, "Winky D Feat. Holy Ten", cleaned.ArtistDisplay)
	assert.Equal(t, "Ijipita", cleaned.SongDisplay)
	assert.Equal(t, "winky d feat. holy ten::ijipita", cleaned.MatchKey)
	assert.Equal(t, "Winky D Feat. Holy Ten - Ijipita", cleaned.DisplayName)
}
