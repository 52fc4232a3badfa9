package repositories

import (
	"context"

	"chartline/internal/database"
	. "chartline/internal/models"

	contextutil "chartline/internal/context"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoterRepository interface {
	GetByID(ctx context.Context, id string) (*Voter, error)
	GetByChannelRef(ctx context.Context, channel VoteChannel, userRef string) (*Voter, error)
	FindOrCreate(ctx context.Context, channel VoteChannel, userRef string) (*Voter, error)
}

type voterRepository struct {
	db  database.DB
	log logger.Logger
}

func NewVoterRepository(db database.DB) VoterRepository {
	return &voterRepository{
		db:  db,
		log: logger.New("voterRepository"),
	}
}

func (r *voterRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *voterRepository) GetByID(ctx context.Context, id string) (*Voter, error) {
	log := r.log.Function("GetByID")

	voterID, err := uuid.Parse(id)
	if err != nil {
		return nil, log.Err("failed to parse voter ID", err, "id", id)
	}

	var voter Voter
	if err := r.getDB(ctx).First(&voter, "id = ?", voterID).Error; err != nil {
		return nil, log.Err("failed to get voter by ID", err, "id", id)
	}

	return &voter, nil
}

func (r *voterRepository) GetByChannelRef(
	ctx context.Context,
	channel VoteChannel,
	userRef string,
) (*Voter, error) {
	log := r.log.Function("GetByChannelRef")

	var voter Voter
	if err := r.getDB(ctx).
		First(&voter, "channel = ? AND user_ref = ?", channel, userRef).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get voter", err, "channel", channel, "userRef", userRef)
	}

	return &voter, nil
}

func (r *voterRepository) FindOrCreate(
	ctx context.Context,
	channel VoteChannel,
	userRef string,
) (*Voter, error) {
	log := r.log.Function("FindOrCreate")

	if userRef == "" {
		return nil, log.Error("voter userRef cannot be empty", "channel", channel)
	}

	voter := &Voter{Channel: channel, UserRef: userRef}
	result := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel"}, {Name: "user_ref"}},
			DoNothing: true,
		}).
		Create(voter)
	if result.Error != nil {
		return nil, log.Err("failed to create voter", result.Error, "channel", channel, "userRef", userRef)
	}

	// DoNothing skips the insert when the row already existed
	if result.RowsAffected == 0 {
		return r.GetByChannelRef(ctx, channel, userRef)
	}

	return voter, nil
}
