package repositories

import (
	"context"
	"time"

	"chartline/internal/database"
	. "chartline/internal/models"

	contextutil "chartline/internal/context"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RawTallyRepository interface {
	Increment(ctx context.Context, date time.Time, matchKey, displayName string) error
	GetByDate(ctx context.Context, date time.Time) ([]RawTally, error)
	GetByKeys(ctx context.Context, date time.Time, matchKeys []string) ([]RawTally, error)
	GetUnmapped(ctx context.Context, date time.Time, limit int) ([]RawTally, error)
}

type rawTallyRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRawTallyRepository(db database.DB) RawTallyRepository {
	return &rawTallyRepository{
		db:  db,
		log: logger.New("rawTallyRepository"),
	}
}

func (r *rawTallyRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Increment bumps the counter for a (date, matchKey) pair, creating the
// row with count 1 on first sight. The display name follows the most
// recently recorded vote for the key.
func (r *rawTallyRepository) Increment(
	ctx context.Context,
	date time.Time,
	matchKey, displayName string,
) error {
	log := r.log.Function("Increment")

	tally := &RawTally{
		Date:        toDate(date),
		MatchKey:    matchKey,
		DisplayName: displayName,
		Count:       1,
	}

	if err := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "match_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":        gorm.Expr("raw_tallies.count + 1"),
				"display_name": displayName,
			}),
		}).
		Create(tally).Error; err != nil {
		return log.Err("failed to increment raw tally", err, "matchKey", matchKey)
	}

	return nil
}

func (r *rawTallyRepository) GetByDate(ctx context.Context, date time.Time) ([]RawTally, error) {
	log := r.log.Function("GetByDate")

	var tallies []RawTally
	if err := r.getDB(ctx).
		Where("date = ?", toDate(date)).
		Order("count DESC").
		Find(&tallies).Error; err != nil {
		return nil, log.Err("failed to get raw tallies by date", err, "date", date)
	}

	return tallies, nil
}

func (r *rawTallyRepository) GetByKeys(
	ctx context.Context,
	date time.Time,
	matchKeys []string,
) ([]RawTally, error) {
	log := r.log.Function("GetByKeys")

	if len(matchKeys) == 0 {
		return nil, nil
	}

	var tallies []RawTally
	if err := r.getDB(ctx).
		Where("date = ? AND match_key IN ?", toDate(date), matchKeys).
		Find(&tallies).Error; err != nil {
		return nil, log.Err("failed to get raw tallies by keys", err, "count", len(matchKeys))
	}

	return tallies, nil
}

// GetUnmapped returns tallies whose match key has no canonical mapping yet,
// highest counts first so the busiest unresolved entries are handled early.
func (r *rawTallyRepository) GetUnmapped(
	ctx context.Context,
	date time.Time,
	limit int,
) ([]RawTally, error) {
	log := r.log.Function("GetUnmapped")

	query := r.getDB(ctx).
		Joins("LEFT JOIN match_key_mappings ON match_key_mappings.match_key = raw_tallies.match_key AND match_key_mappings.deleted_at IS NULL").
		Where("raw_tallies.date = ? AND match_key_mappings.id IS NULL", toDate(date)).
		Order("raw_tallies.count DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var tallies []RawTally
	if err := query.Find(&tallies).Error; err != nil {
		return nil, log.Err("failed to get unmapped raw tallies", err, "date", date)
	}

	return tallies, nil
}
