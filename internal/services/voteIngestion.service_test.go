package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"chartline/internal/models"
	"chartline/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		rejected bool
	}{
		{name: "plain vote passes", text: "Winky D - Ijipita", rejected: false},
		{name: "song only passes", text: "Ijipita", rejected: false},
		{name: "http link rejected", text: "check this out https://spam.example/x", rejected: true},
		{name: "www link rejected", text: "www.freestuff.com best deals", rejected: true},
		{name: "bare domain rejected", text: "visit freestuff.com now", rejected: true},
		{name: "too many emojis rejected", text: "🔥🔥🔥 Winky D - Ijipita", rejected: true},
		{name: "two emojis allowed", text: "🔥🔥 Winky D - Ijipita", rejected: false},
		{name: "over 100 chars rejected", text: strings.Repeat("a", 101), rejected: true},
		{name: "multiline rejected", text: "Winky D - Ijipita\nHoly Ten - Ndaremerwa\nExQ - Nzenza", rejected: true},
		{name: "single newline allowed", text: "Winky D -\nIjipita", rejected: false},
		{
			name:     "prose with many sentences rejected",
			text:     "Hello. How are you? I love this show. Greetings to all!",
			rejected: true,
		},
		{name: "abbreviated title allowed", text: "Winky D - Dr. Love", rejected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateContent(tt.text)
			if tt.rejected {
				assert.NotEmpty(t, msg)
				assert.True(t, strings.HasPrefix(msg, "❌"))
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestCountEmojis(t *testing.T) {
	assert.Equal(t, 0, countEmojis("Winky D - Ijipita"))
	assert.Equal(t, 2, countEmojis("🔥🔥 vote"))
	assert.Equal(t, 3, countEmojis("🎵🎵🎵"))
	assert.Equal(t, 1, countEmojis("great song ☀"))
}

func TestSubmitCommands(t *testing.T) {
	svc, _ := newTestStack(t)
	ctx := context.Background()

	reply, err := svc.VoteIngestion.Submit(ctx, models.ChannelTelegram, "u1", "/start")
	assert.NoError(t, err)
	assert.Contains(t, reply, "👋")

	reply, err = svc.VoteIngestion.Submit(ctx, models.ChannelTelegram, "u1", "/help")
	assert.NoError(t, err)
	assert.Contains(t, reply, "🎵")
}

func TestSubmitDailyCeiling(t *testing.T) {
	svc, repos := newTestStack(t)
	ctx := context.Background()

	for i := range 5 {
		reply, err := svc.VoteIngestion.Submit(
			ctx,
			models.ChannelTelegram,
			"u1",
			fmt.Sprintf("Artist %d - Song %d", i, i),
		)
		assert.NoError(t, err)
		if i < 4 {
			assert.True(t, strings.HasPrefix(reply, "✅"), "vote %d: %s", i, reply)
		} else {
			assert.True(t, strings.HasPrefix(reply, "🎉"), "last vote: %s", reply)
		}
	}

	reply, err := svc.VoteIngestion.Submit(ctx, models.ChannelTelegram, "u1", "One More - Song")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "🚫"), "over the ceiling: %s", reply)

	voter, err := repos.Voter.GetByChannelRef(ctx, models.ChannelTelegram, "u1")
	assert.NoError(t, err)
	count, err := repos.RawVote.CountForDay(ctx, voter.ID, time.Now().UTC())
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestSubmitDuplicateKey(t *testing.T) {
	svc, _ := newTestStack(t)
	ctx := context.Background()

	reply, err := svc.VoteIngestion.Submit(ctx, models.ChannelTelegram, "u1", "Winky D - Ijipita")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "✅"), reply)

	// Same song again, different spelling of the same text
	reply, err = svc.VoteIngestion.Submit(ctx, models.ChannelTelegram, "u1", "winky d - ijipita")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "🔁"), reply)

	// A different voter is free to vote for the same song
	reply, err = svc.VoteIngestion.Submit(ctx, models.ChannelTelegram, "u2", "Winky D - Ijipita")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(reply, "✅"), reply)
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, isDuplicateKeyError(nil))
	assert.False(t, isDuplicateKeyError(errors.New("connection refused")))
	assert.True(t, isDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKeyError(
		errors.New(`pq: duplicate key value violates unique constraint "idx_raw_votes_voter_key_date"`),
	))
	assert.True(t, isDuplicateKeyError(
		errors.New("UNIQUE constraint failed: raw_votes.voter_id, raw_votes.match_key, raw_votes.vote_date"),
	))
}

func TestConcurrentDuplicateHitsUniqueIndex(t *testing.T) {
	repos := repositories.New(setupTestDB(t))
	ctx := context.Background()
	today := time.Now().UTC()

	voter, err := repos.Voter.FindOrCreate(ctx, models.ChannelTelegram, "u1")
	assert.NoError(t, err)

	vote := models.RawVote{
		VoterID:     voter.ID,
		RawInput:    "Winky D - Ijipita",
		ArtistRaw:   "Winky D",
		SongRaw:     "Ijipita",
		MatchKey:    "winky d::ijipita",
		DisplayName: "Winky D - Ijipita",
		VoteDate:    datatypes.Date(today),
	}
	assert.NoError(t, repos.RawVote.Create(ctx, &vote))

	// The insert a racing submission would attempt after its pre-check
	dup := vote
	dup.ID = uuid.Nil
	err = repos.RawVote.Create(ctx, &dup)
	assert.Error(t, err)
	assert.True(t, isDuplicateKeyError(err), "got: %v", err)
}
