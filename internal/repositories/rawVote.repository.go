package repositories

import (
	"context"
	"time"

	"chartline/internal/database"
	. "chartline/internal/models"

	contextutil "chartline/internal/context"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RawVoteRepository interface {
	Create(ctx context.Context, vote *RawVote) error
	CountForDay(ctx context.Context, voterID uuid.UUID, date time.Time) (int64, error)
	ExistsForKey(ctx context.Context, voterID uuid.UUID, matchKey string, date time.Time) (bool, error)
	GetByVoterAndDay(ctx context.Context, voterID uuid.UUID, date time.Time) ([]RawVote, error)
}

type rawVoteRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRawVoteRepository(db database.DB) RawVoteRepository {
	return &rawVoteRepository{
		db:  db,
		log: logger.New("rawVoteRepository"),
	}
}

func (r *rawVoteRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *rawVoteRepository) Create(ctx context.Context, vote *RawVote) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(vote).Error; err != nil {
		return log.Err("failed to create raw vote", err, "matchKey", vote.MatchKey)
	}

	return nil
}

func (r *rawVoteRepository) CountForDay(
	ctx context.Context,
	voterID uuid.UUID,
	date time.Time,
) (int64, error) {
	log := r.log.Function("CountForDay")

	var count int64
	if err := r.getDB(ctx).
		Model(&RawVote{}).
		Where("voter_id = ? AND vote_date = ?", voterID, toDate(date)).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count votes for day", err, "voterID", voterID)
	}

	return count, nil
}

func (r *rawVoteRepository) ExistsForKey(
	ctx context.Context,
	voterID uuid.UUID,
	matchKey string,
	date time.Time,
) (bool, error) {
	log := r.log.Function("ExistsForKey")

	var count int64
	if err := r.getDB(ctx).
		Model(&RawVote{}).
		Where(
			"voter_id = ? AND match_key = ? AND vote_date = ?",
			voterID,
			matchKey,
			toDate(date),
		).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check vote existence", err, "matchKey", matchKey)
	}

	return count > 0, nil
}

func (r *rawVoteRepository) GetByVoterAndDay(
	ctx context.Context,
	voterID uuid.UUID,
	date time.Time,
) ([]RawVote, error) {
	log := r.log.Function("GetByVoterAndDay")

	var votes []RawVote
	if err := r.getDB(ctx).
		Where("voter_id = ? AND vote_date = ?", voterID, toDate(date)).
		Order("created_at").
		Find(&votes).Error; err != nil {
		return nil, log.Err("failed to get votes for day", err, "voterID", voterID)
	}

	return votes, nil
}
