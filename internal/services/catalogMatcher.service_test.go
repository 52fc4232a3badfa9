package services

import (
	"context"
	"testing"
	"time"

	"chartline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func catalogFixture() []models.CanonicalSong {
	return []models.CanonicalSong{
		{Artist: "Winky D", Title: "Ijipita", CanonicalName: "Winky D - Ijipita"},
		{Artist: "Winky D", Title: "Dzika Ngirozi", CanonicalName: "Winky D - Dzika Ngirozi"},
		{Artist: "Jah Prayzah", Title: "Mudhara Vachauya", CanonicalName: "Jah Prayzah - Mudhara Vachauya"},
		{Artist: "Holy Ten", Title: "Ndaremerwa", CanonicalName: "Holy Ten - Ndaremerwa"},
	}
}

func TestMatchCatalog(t *testing.T) {
	songs := catalogFixture()

	t.Run("exact match wins with full score", func(t *testing.T) {
		matched, score := matchCatalog("winky d", "ijipita", songs, 0.92, 0.10)
		require.NotNil(t, matched)
		assert.Equal(t, "Winky D - Ijipita", matched.CanonicalName)
		assert.InDelta(t, 1.0, score, 0.001)
	})

	t.Run("title typo falls below the auto-merge bar", func(t *testing.T) {
		matched, score := matchCatalog("winky d", "ijipitta", songs, 0.92, 0.10)
		assert.Nil(t, matched)
		assert.Greater(t, score, 0.7)
		assert.Less(t, score, 0.92)
	})

	t.Run("lower threshold accepts the typo", func(t *testing.T) {
		matched, _ := matchCatalog("winky d", "ijipitta", songs, 0.7, 0.10)
		require.NotNil(t, matched)
		assert.Equal(t, "Winky D - Ijipita", matched.CanonicalName)
	})

	t.Run("unrelated input matches nothing", func(t *testing.T) {
		matched, score := matchCatalog("burna boy", "last last", songs, 0.92, 0.10)
		assert.Nil(t, matched)
		assert.Less(t, score, 0.92)
	})

	t.Run("empty catalog matches nothing", func(t *testing.T) {
		matched, score := matchCatalog("winky d", "ijipita", nil, 0.92, 0.10)
		assert.Nil(t, matched)
		assert.Zero(t, score)
	})

	t.Run("ambiguous winner is rejected by the confidence gap", func(t *testing.T) {
		ambiguous := []models.CanonicalSong{
			{Artist: "Winky D", Title: "Ijipita", CanonicalName: "Winky D - Ijipita"},
			{Artist: "Winky D", Title: "Ijipita", CanonicalName: "Winky D - Ijipita (Remastered)"},
		}
		matched, _ := matchCatalog("winky d", "ijipita", ambiguous, 0.92, 0.10)
		assert.Nil(t, matched)
	})
}

func TestResolveVerifiedArtist(t *testing.T) {
	aliases := map[string]string{
		"winky d":         "Winky D",
		"winkyd":          "Winky D",
		"jah prayzah":     "Jah Prayzah",
		"oliver mtukudzi": "Oliver Mtukudzi",
		"tuku":            "Oliver Mtukudzi",
	}

	tests := []struct {
		name     string
		artist   string
		expected string
	}{
		{name: "exact alias", artist: "tuku", expected: "Oliver Mtukudzi"},
		{name: "case insensitive", artist: "WINKY D", expected: "Winky D"},
		{name: "close typo resolves fuzzily", artist: "jah prayzar", expected: "Jah Prayzah"},
		{name: "unknown artist stays unresolved", artist: "burna boy", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveVerifiedArtist(tt.artist, aliases))
		})
	}
}

func TestSplitMatchKey(t *testing.T) {
	artist, song, ok := splitMatchKey("winky d::ijipita")
	require.True(t, ok)
	assert.Equal(t, "winky d", artist)
	assert.Equal(t, "ijipita", song)

	_, _, ok = splitMatchKey("no separator here")
	assert.False(t, ok)
}

func TestSplitDisplayName(t *testing.T) {
	artist, title := splitDisplayName("Winky D - Ijipita")
	assert.Equal(t, "Winky D", artist)
	assert.Equal(t, "Ijipita", title)

	artist, title = splitDisplayName("Ijipita")
	assert.Equal(t, "Unknown", artist)
	assert.Equal(t, "Ijipita", title)
}

func TestFindSongByID(t *testing.T) {
	songs := catalogFixture()
	songs[2].ID = uuid.New()

	found := findSongByID(songs, songs[2].ID)
	require.NotNil(t, found)
	assert.Equal(t, "Jah Prayzah - Mudhara Vachauya", found.CanonicalName)

	assert.Nil(t, findSongByID(songs, uuid.New()))
}

func TestLinkTallySemanticWritesAuditBeforeMapping(t *testing.T) {
	svc, repos := newTestStack(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	song := seedVerifiedSong(t, repos, "Winky D", "Ijipita")
	tally := models.RawTally{
		Date:        datatypes.Date(day),
		MatchKey:    "winkyd::ijipitta",
		DisplayName: "winkyd - ijipitta",
		Count:       2,
	}

	err := svc.CatalogMatcher.linkTallySemantic(ctx, tally, song, SemanticMatchResult{
		RawInput:        "winkyd - ijipitta",
		MatchKey:        "winkyd::ijipitta",
		MatchedSongID:   &song.ID,
		MatchedSongName: song.CanonicalName,
		Confidence:      models.ConfidenceHigh,
		Reasoning:       "misspelling of the catalog entry",
	})
	require.NoError(t, err)

	entries, err := repos.DecisionLog.List(ctx, models.ActionAutoMerge, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].WasApplied)
	assert.Equal(t, "winkyd - ijipitta", entries[0].InputText)
	assert.Equal(t, song.CanonicalName, entries[0].MatchedSongName)

	mapping, err := repos.Mapping.GetByKey(ctx, "winkyd::ijipitta")
	require.NoError(t, err)
	require.NotNil(t, mapping)
	assert.Equal(t, song.ID, mapping.SongID)

	// The audit row is created before the mapping, so it sorts first
	assert.True(t, entries[0].CreatedAt.Compare(mapping.CreatedAt) <= 0)
}
