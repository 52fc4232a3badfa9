package services

import (
	"context"
	"testing"
	"time"

	"chartline/internal/models"
	"chartline/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func seedVerifiedSong(
	t *testing.T,
	repos repositories.Repository,
	artist, title string,
) *models.CanonicalSong {
	t.Helper()

	song, err := repos.CanonicalSong.Create(context.Background(), &models.CanonicalSong{
		Artist: artist,
		Title:  title,
		Status: models.SongStatusVerified,
	})
	if err != nil {
		t.Fatalf("failed to seed song: %v", err)
	}
	return song
}

func TestRecompute(t *testing.T) {
	svc, repos := newTestStack(t)
	ctx := context.Background()
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	verified := seedVerifiedSong(t, repos, "Winky D", "Ijipita")
	pending, err := repos.CanonicalSong.Create(ctx, &models.CanonicalSong{
		Artist: "Holy Ten",
		Title:  "Ndaremara",
		Status: models.SongStatusPending,
	})
	assert.NoError(t, err)

	for range 3 {
		assert.NoError(t, repos.RawTally.Increment(ctx, day, "winky d::ijipita", "Winky D - Ijipita"))
	}
	assert.NoError(t, repos.RawTally.Increment(ctx, day, "winkyd::ijipita", "winkyd - ijipita"))
	assert.NoError(t, repos.RawTally.Increment(ctx, day, "holy ten::ndaremara", "Holy Ten - Ndaremara"))

	assert.NoError(t, repos.Mapping.Upsert(ctx, &models.MatchKeyMapping{
		MatchKey: "winky d::ijipita", SongID: verified.ID, SampleDisplayName: "Winky D - Ijipita",
	}))
	assert.NoError(t, repos.Mapping.Upsert(ctx, &models.MatchKeyMapping{
		MatchKey: "winkyd::ijipita", SongID: verified.ID, SampleDisplayName: "winkyd - ijipita",
	}))
	assert.NoError(t, repos.Mapping.Upsert(ctx, &models.MatchKeyMapping{
		MatchKey: "holy ten::ndaremara", SongID: pending.ID, SampleDisplayName: "Holy Ten - Ndaremara",
	}))

	t.Run("mapped keys fold into one verified count", func(t *testing.T) {
		updated, err := svc.TallyReconciler.Recompute(ctx, day)
		assert.NoError(t, err)
		assert.Equal(t, 1, updated)

		tallies, err := repos.CanonicalTally.GetByDate(ctx, day)
		assert.NoError(t, err)
		assert.Len(t, tallies, 1)
		assert.Equal(t, verified.ID, tallies[0].SongID)
		assert.Equal(t, 4, tallies[0].Count)
	})

	t.Run("pending songs never reach the chart", func(t *testing.T) {
		tallies, err := repos.CanonicalTally.GetBySong(ctx, pending.ID)
		assert.NoError(t, err)
		assert.Empty(t, tallies)
	})

	t.Run("running twice yields the same result", func(t *testing.T) {
		updated, err := svc.TallyReconciler.Recompute(ctx, day)
		assert.NoError(t, err)
		assert.Equal(t, 1, updated)

		tallies, err := repos.CanonicalTally.GetByDate(ctx, day)
		assert.NoError(t, err)
		assert.Len(t, tallies, 1)
		assert.Equal(t, 4, tallies[0].Count)
	})

	t.Run("stale rows for the day are removed", func(t *testing.T) {
		stale := seedVerifiedSong(t, repos, "Jah Prayzah", "Mudhara Vachauya")
		assert.NoError(t, repos.CanonicalTally.SetCount(ctx, day, stale.ID, 9))

		_, err := svc.TallyReconciler.Recompute(ctx, day)
		assert.NoError(t, err)

		tallies, err := repos.CanonicalTally.GetByDate(ctx, day)
		assert.NoError(t, err)
		assert.Len(t, tallies, 1)
		assert.Equal(t, verified.ID, tallies[0].SongID)
	})
}

func TestMerge(t *testing.T) {
	svc, repos := newTestStack(t)
	ctx := context.Background()
	day1 := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	target := seedVerifiedSong(t, repos, "Winky D", "Ijipita")
	source := seedVerifiedSong(t, repos, "Winky D", "Ijipitaa")

	assert.NoError(t, repos.Mapping.Upsert(ctx, &models.MatchKeyMapping{
		MatchKey: "winky d::ijipitaa", SongID: source.ID, SampleDisplayName: "Winky D - Ijipitaa",
	}))
	assert.NoError(t, repos.CanonicalTally.SetCount(ctx, day1, target.ID, 5))
	assert.NoError(t, repos.CanonicalTally.SetCount(ctx, day1, source.ID, 2))
	assert.NoError(t, repos.CanonicalTally.SetCount(ctx, day2, source.ID, 1))

	result, err := svc.TallyReconciler.Merge(ctx, source.ID, target.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.KeysMoved)
	assert.Equal(t, 2, result.TalliesMoved)

	t.Run("counts are conserved", func(t *testing.T) {
		day1Tallies, err := repos.CanonicalTally.GetByDate(ctx, day1)
		assert.NoError(t, err)
		assert.Len(t, day1Tallies, 1)
		assert.Equal(t, 7, day1Tallies[0].Count)

		day2Tallies, err := repos.CanonicalTally.GetByDate(ctx, day2)
		assert.NoError(t, err)
		assert.Len(t, day2Tallies, 1)
		assert.Equal(t, 1, day2Tallies[0].Count)
	})

	t.Run("mappings point at the target", func(t *testing.T) {
		moved, err := repos.Mapping.GetByKey(ctx, "winky d::ijipitaa")
		assert.NoError(t, err)
		assert.NotNil(t, moved)
		assert.Equal(t, target.ID, moved.SongID)

		// The source's own grouping key keeps resolving after the merge
		own, err := repos.Mapping.GetByKey(ctx, models.MatchKey("Winky D", "Ijipitaa"))
		assert.NoError(t, err)
		assert.NotNil(t, own)
		assert.Equal(t, target.ID, own.SongID)
	})

	t.Run("source song is gone", func(t *testing.T) {
		_, err := repos.CanonicalSong.GetByID(ctx, source.ID.String())
		assert.Error(t, err)

		tallies, err := repos.CanonicalTally.GetBySong(ctx, source.ID)
		assert.NoError(t, err)
		assert.Empty(t, tallies)
	})

	t.Run("merging a song into itself is refused", func(t *testing.T) {
		_, err := svc.TallyReconciler.Merge(ctx, target.ID, target.ID)
		assert.Error(t, err)
	})
}
