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
	"gorm.io/gorm/clause"
)

type CanonicalTallyRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]CanonicalTally, error)
	GetBySong(ctx context.Context, songID uuid.UUID) ([]CanonicalTally, error)
	SetCount(ctx context.Context, date time.Time, songID uuid.UUID, count int) error
	AddCount(ctx context.Context, date time.Time, songID uuid.UUID, count int) error
	DeleteForDateExcept(ctx context.Context, date time.Time, songIDs []uuid.UUID) error
	DeleteBySong(ctx context.Context, songID uuid.UUID) error
}

type canonicalTallyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCanonicalTallyRepository(db database.DB) CanonicalTallyRepository {
	return &canonicalTallyRepository{
		db:  db,
		log: logger.New("canonicalTallyRepository"),
	}
}

func (r *canonicalTallyRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *canonicalTallyRepository) GetByDate(
	ctx context.Context,
	date time.Time,
) ([]CanonicalTally, error) {
	log := r.log.Function("GetByDate")

	var tallies []CanonicalTally
	if err := r.getDB(ctx).
		Preload("Song").
		Where("date = ?", toDate(date)).
		Order("count DESC").
		Find(&tallies).Error; err != nil {
		return nil, log.Err("failed to get canonical tallies by date", err, "date", date)
	}

	return tallies, nil
}

func (r *canonicalTallyRepository) GetBySong(
	ctx context.Context,
	songID uuid.UUID,
) ([]CanonicalTally, error) {
	log := r.log.Function("GetBySong")

	var tallies []CanonicalTally
	if err := r.getDB(ctx).Where("song_id = ?", songID).Find(&tallies).Error; err != nil {
		return nil, log.Err("failed to get canonical tallies by song", err, "songID", songID)
	}

	return tallies, nil
}

// SetCount writes the absolute count for a (date, song) pair. Used by the
// reconciler, whose recomputed totals replace whatever was there before.
func (r *canonicalTallyRepository) SetCount(
	ctx context.Context,
	date time.Time,
	songID uuid.UUID,
	count int,
) error {
	log := r.log.Function("SetCount")

	tally := &CanonicalTally{
		Date:   toDate(date),
		SongID: songID,
		Count:  count,
	}

	if err := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "song_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": count}),
		}).
		Create(tally).Error; err != nil {
		return log.Err("failed to set canonical tally", err, "songID", songID, "count", count)
	}

	return nil
}

// AddCount folds a count into a (date, song) pair, used when merging one
// song's history into another.
func (r *canonicalTallyRepository) AddCount(
	ctx context.Context,
	date time.Time,
	songID uuid.UUID,
	count int,
) error {
	log := r.log.Function("AddCount")

	tally := &CanonicalTally{
		Date:   toDate(date),
		SongID: songID,
		Count:  count,
	}

	if err := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}, {Name: "song_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count": gorm.Expr("canonical_tallies.count + ?", count),
			}),
		}).
		Create(tally).Error; err != nil {
		return log.Err("failed to add canonical tally count", err, "songID", songID, "count", count)
	}

	return nil
}

// DeleteForDateExcept removes stale rows for a date that no longer have a
// recomputed total. An empty songIDs slice clears the whole date.
func (r *canonicalTallyRepository) DeleteForDateExcept(
	ctx context.Context,
	date time.Time,
	songIDs []uuid.UUID,
) error {
	log := r.log.Function("DeleteForDateExcept")

	query := r.getDB(ctx).Unscoped().Where("date = ?", toDate(date))
	if len(songIDs) > 0 {
		query = query.Where("song_id NOT IN ?", songIDs)
	}

	if err := query.Delete(&CanonicalTally{}).Error; err != nil {
		return log.Err("failed to delete stale canonical tallies", err, "date", date)
	}

	return nil
}

func (r *canonicalTallyRepository) DeleteBySong(ctx context.Context, songID uuid.UUID) error {
	log := r.log.Function("DeleteBySong")

	if err := r.getDB(ctx).
		Unscoped().
		Delete(&CanonicalTally{}, "song_id = ?", songID).Error; err != nil {
		return log.Err("failed to delete canonical tallies by song", err, "songID", songID)
	}

	return nil
}
