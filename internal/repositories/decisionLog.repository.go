package repositories

import (
	"context"

	"chartline/internal/database"
	. "chartline/internal/models"

	contextutil "chartline/internal/context"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DecisionLogRepository interface {
	Create(ctx context.Context, entry *DecisionLog) error
	MarkApplied(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, action DecisionAction, limit, offset int) ([]DecisionLog, error)
}

type decisionLogRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDecisionLogRepository(db database.DB) DecisionLogRepository {
	return &decisionLogRepository{
		db:  db,
		log: logger.New("decisionLogRepository"),
	}
}

func (r *decisionLogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *decisionLogRepository) Create(ctx context.Context, entry *DecisionLog) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(entry).Error; err != nil {
		return log.Err("failed to create decision log", err, "action", entry.Action)
	}

	return nil
}

// MarkApplied flips an audit row to applied once the mutation it
// describes has gone through.
func (r *decisionLogRepository) MarkApplied(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("MarkApplied")

	if err := r.getDB(ctx).
		Model(&DecisionLog{}).
		Where("id = ?", id).
		Update("was_applied", true).Error; err != nil {
		return log.Err("failed to mark decision applied", err, "id", id)
	}

	return nil
}

func (r *decisionLogRepository) List(
	ctx context.Context,
	action DecisionAction,
	limit, offset int,
) ([]DecisionLog, error) {
	log := r.log.Function("List")

	query := r.getDB(ctx).Preload("MatchedSong").Order("created_at DESC")
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var entries []DecisionLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list decision logs", err, "action", action)
	}

	return entries, nil
}
