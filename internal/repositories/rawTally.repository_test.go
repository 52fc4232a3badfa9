package repositories

import (
	"context"
	"testing"
	"time"

	"chartline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestRawTallyIncrement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRawTallyRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	t.Run("first vote creates the row", func(t *testing.T) {
		assert.NoError(t, repo.Increment(ctx, day, "winky d::ijipita", "Winky D - Ijipita"))

		tallies, err := repo.GetByDate(ctx, day)
		assert.NoError(t, err)
		assert.Len(t, tallies, 1)
		assert.Equal(t, 1, tallies[0].Count)
		assert.Equal(t, "Winky D - Ijipita", tallies[0].DisplayName)
	})

	t.Run("repeat vote bumps the count and display name follows the latest vote", func(t *testing.T) {
		assert.NoError(t, repo.Increment(ctx, day, "winky d::ijipita", "Winky D - IJIPITA"))

		tallies, err := repo.GetByDate(ctx, day)
		assert.NoError(t, err)
		assert.Len(t, tallies, 1)
		assert.Equal(t, 2, tallies[0].Count)
		assert.Equal(t, "Winky D - IJIPITA", tallies[0].DisplayName)
	})

	t.Run("another day is a separate tally", func(t *testing.T) {
		nextDay := day.AddDate(0, 0, 1)
		assert.NoError(t, repo.Increment(ctx, nextDay, "winky d::ijipita", "Winky D - Ijipita"))

		tallies, err := repo.GetByDate(ctx, nextDay)
		assert.NoError(t, err)
		assert.Len(t, tallies, 1)
		assert.Equal(t, 1, tallies[0].Count)
	})
}

func TestRawTallyGetUnmapped(t *testing.T) {
	db := setupTestDB(t)
	repos := New(db)
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, repos.RawTally.Increment(ctx, day, "winky d::ijipita", "Winky D - Ijipita"))
	assert.NoError(t, repos.RawTally.Increment(ctx, day, "holy ten::ndaremara", "Holy Ten - Ndaremara"))

	song, err := repos.CanonicalSong.Create(ctx, &models.CanonicalSong{
		Artist: "Winky D",
		Title:  "Ijipita",
		Status: models.SongStatusVerified,
	})
	assert.NoError(t, err)
	assert.NoError(t, repos.Mapping.Upsert(ctx, &models.MatchKeyMapping{
		MatchKey:          "winky d::ijipita",
		SongID:            song.ID,
		SampleDisplayName: "Winky D - Ijipita",
	}))

	unmapped, err := repos.RawTally.GetUnmapped(ctx, day, 10)
	assert.NoError(t, err)
	assert.Len(t, unmapped, 1)
	assert.Equal(t, "holy ten::ndaremara", unmapped[0].MatchKey)
}

func TestVoterFindOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVoterRepository(db)
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, models.ChannelTelegram, "12345")
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second, err := repo.FindOrCreate(ctx, models.ChannelTelegram, "12345")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := repo.FindOrCreate(ctx, models.ChannelWhatsApp, "12345")
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestRawVoteUniquePerVoterKeyDay(t *testing.T) {
	db := setupTestDB(t)
	repos := New(db)
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	voter, err := repos.Voter.FindOrCreate(ctx, models.ChannelTelegram, "777")
	assert.NoError(t, err)

	vote := models.RawVote{
		VoterID:     voter.ID,
		RawInput:    "Winky D - Ijipita",
		ArtistRaw:   "Winky D",
		SongRaw:     "Ijipita",
		MatchKey:    "winky d::ijipita",
		DisplayName: "Winky D - Ijipita",
		VoteDate:    datatypes.Date(day),
	}
	assert.NoError(t, repos.RawVote.Create(ctx, &vote))

	dup := vote
	dup.ID = uuid.Nil
	err = repos.RawVote.Create(ctx, &dup)
	assert.Error(t, err, "same voter, key and day must hit the unique index")

	exists, err := repos.RawVote.ExistsForKey(ctx, voter.ID, "winky d::ijipita", day)
	assert.NoError(t, err)
	assert.True(t, exists)
}
