package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"chartline/config"
	"chartline/internal/database"
	"chartline/internal/models"
	"chartline/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	welcomeMessage = `👋 Welcome to the radio chart vote line!

Vote for your favourite song by sending it as:

Artist - Song
e.g. Winky D - Ijipita

You can send up to 5 votes per day. Send /help for more.`

	helpMessage = `🎵 How voting works:

• Send votes as "Artist - Song", e.g. Jah Prayzah - Mudhara Vachauya
• If you only know the song title, send just the title
• You get 5 votes per day and each song counts once
• The daily chart is built from everyone's votes

Send /start to see the welcome message again.`
)

var (
	urlRegex = regexp.MustCompile(
		`(?i)(https?://\S+|www\.\S+|\b[a-z0-9-]+\.(com|net|org|info|biz|co|io|me|tv|xyz|online|site|club|top|link)\b\S*)`,
	)
	sentenceEnderRegex = regexp.MustCompile(`[.!?]`)
)

// countEmojis counts runes in the common emoji blocks.
func countEmojis(text string) int {
	count := 0
	for _, r := range text {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF,
			r >= 0x2600 && r <= 0x27BF,
			r >= 0x1F1E6 && r <= 0x1F1FF:
			count++
		}
	}
	return count
}

// VoteIngestionService is the conversational entry point: it takes one
// raw chat message and returns the reply to send back. Every guard
// answers with a human-readable message rather than an error, because
// the voter on the other end cannot do anything with a stack trace.
type VoteIngestionService struct {
	config     config.Config
	db         database.DB
	repo       repositories.Repository
	tx         *TransactionService
	normalizer *NormalizerService
	matcher    *CatalogMatcherService
	log        logger.Logger
}

func NewVoteIngestionService(
	config config.Config,
	db database.DB,
	repo repositories.Repository,
	tx *TransactionService,
	normalizer *NormalizerService,
	matcher *CatalogMatcherService,
) *VoteIngestionService {
	return &VoteIngestionService{
		config:     config,
		db:         db,
		repo:       repo,
		tx:         tx,
		normalizer: normalizer,
		matcher:    matcher,
		log:        logger.New("voteIngestionService"),
	}
}

// Submit processes one inbound chat message and returns the reply text.
func (s *VoteIngestionService) Submit(
	ctx context.Context,
	channel models.VoteChannel,
	userRef, text string,
) (string, error) {
	log := s.log.Function("Submit")

	trimmed := strings.TrimSpace(text)
	switch strings.ToLower(trimmed) {
	case "", "/start", "start":
		return welcomeMessage, nil
	case "/help", "help":
		return helpMessage, nil
	}

	voter, err := s.repo.Voter.FindOrCreate(ctx, channel, userRef)
	if err != nil {
		return "", log.Err("failed to resolve voter", err, "channel", channel)
	}

	today := time.Now().UTC()

	used, err := s.repo.RawVote.CountForDay(ctx, voter.ID, today)
	if err != nil {
		return "", log.Err("failed to count votes for day", err, "voterID", voter.ID)
	}
	if used >= int64(s.config.MaxVotesPerDay) {
		return fmt.Sprintf(
			"🚫 You've used all %d votes for today. Come back tomorrow!",
			s.config.MaxVotesPerDay,
		), nil
	}

	if msg := validateContent(trimmed); msg != "" {
		return msg, nil
	}

	if spamming, err := s.checkSpam(ctx, userRef, trimmed); err != nil {
		log.Warn("spam check unavailable, allowing vote", "error", err)
	} else if spamming {
		return "⚠️ Slow down! You're sending the same vote too quickly. Please wait a minute.", nil
	}

	artistRaw, songRaw, songOnly, ok := s.normalizer.ParseVoteInput(trimmed)
	if !ok {
		return `❌ I couldn't read that vote. Please send it as:

Artist - Song
e.g. Winky D - Ijipita`, nil
	}

	var cleaned CleanedVote
	if songOnly {
		cleaned, err = s.matcher.ResolveTitleOnly(ctx, songRaw, today)
	} else {
		cleaned, err = s.matcher.ResolveVote(ctx, artistRaw, songRaw, today)
	}
	if err != nil {
		return "", log.Err("failed to resolve vote", err, "voterID", voter.ID)
	}

	exists, err := s.repo.RawVote.ExistsForKey(ctx, voter.ID, cleaned.MatchKey, today)
	if err != nil {
		return "", log.Err("failed to check for duplicate vote", err, "voterID", voter.ID)
	}
	if exists {
		return fmt.Sprintf(
			"🔁 You've already voted for %s today. Each song counts once per day!",
			cleaned.DisplayName,
		), nil
	}

	err = s.tx.Execute(ctx, func(txCtx context.Context, _ *gorm.DB) error {
		vote := &models.RawVote{
			VoterID:          voter.ID,
			RawInput:         trimmed,
			ArtistRaw:        artistRaw,
			SongRaw:          songRaw,
			ArtistNormalized: models.NormalizeText(cleaned.ArtistDisplay),
			SongNormalized:   models.NormalizeText(cleaned.SongDisplay),
			MatchKey:         cleaned.MatchKey,
			DisplayName:      cleaned.DisplayName,
			VoteDate:         datatypes.Date(today),
		}
		if err := s.repo.RawVote.Create(txCtx, vote); err != nil {
			return err
		}
		return s.repo.RawTally.Increment(txCtx, today, cleaned.MatchKey, cleaned.DisplayName)
	})
	if err != nil {
		// A concurrent submission for the same key can slip past the
		// pre-check and lose on the unique index instead
		if isDuplicateKeyError(err) {
			return fmt.Sprintf(
				"🔁 You've already voted for %s today. Each song counts once per day!",
				cleaned.DisplayName,
			), nil
		}
		return "", log.Err("failed to record vote", err, "voterID", voter.ID)
	}

	// Resolution of new grouping keys happens off the request path
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.matcher.ProcessUnmatched(bgCtx, today, 50); err != nil {
			s.log.Function("Submit").Warn("background resolution failed", "error", err)
		}
	}()

	remaining := s.config.MaxVotesPerDay - int(used) - 1
	if remaining > 0 {
		return fmt.Sprintf(
			"✅ Vote recorded for %s! You have %d votes left today.",
			cleaned.DisplayName,
			remaining,
		), nil
	}
	return fmt.Sprintf(
		"🎉 Vote recorded for %s! That was your last vote for today, thanks for voting!",
		cleaned.DisplayName,
	), nil
}

// validateContent rejects messages that cannot plausibly be a vote.
// Returns the reply text for a rejected message, empty when the message
// passes.
func validateContent(text string) string {
	if urlRegex.MatchString(text) {
		return "❌ Links aren't allowed in votes. Please send just: Artist - Song"
	}
	if countEmojis(text) > 2 {
		return "❌ Too many emojis! Please send just: Artist - Song"
	}
	if len(text) > 100 {
		return "❌ That message is too long for a vote. Please send just: Artist - Song"
	}
	if strings.Count(text, "\n") > 1 {
		return "❌ One vote per message please! Send it as: Artist - Song"
	}
	if len(sentenceEnderRegex.FindAllString(text, -1)) > 2 {
		return "❌ That looks like a message, not a vote. Please send just: Artist - Song"
	}
	return ""
}

// isDuplicateKeyError reports whether an error is a unique constraint
// violation, in either gorm's translated form or the driver's raw message.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// checkSpam counts identical messages from one voter inside a sliding
// window, keyed on a short hash of the normalized text.
func (s *VoteIngestionService) checkSpam(
	ctx context.Context,
	userRef, text string,
) (bool, error) {
	sum := md5.Sum([]byte(models.NormalizeText(text)))
	key := "spam_" + userRef + "_" + hex.EncodeToString(sum[:])[:16]

	count, err := database.NewCacheBuilder(s.db.Cache.Spam, key).
		WithContext(ctx).
		WithTTL(time.Duration(s.config.SpamWindowSecs) * time.Second).
		Increment()
	if err != nil {
		return false, err
	}

	return count > int64(s.config.SpamMaxIdentical), nil
}
