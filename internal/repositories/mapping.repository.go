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

type MappingRepository interface {
	GetByKey(ctx context.Context, matchKey string) (*MatchKeyMapping, error)
	GetByKeys(ctx context.Context, matchKeys []string) (map[string]*MatchKeyMapping, error)
	GetBySong(ctx context.Context, songID uuid.UUID) ([]MatchKeyMapping, error)
	Upsert(ctx context.Context, mapping *MatchKeyMapping) error
	IncrementVoteCount(ctx context.Context, matchKey string) error
	ReassignSong(ctx context.Context, fromSongID, toSongID uuid.UUID) (int64, error)
	DeleteBySong(ctx context.Context, songID uuid.UUID) error
}

type mappingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMappingRepository(db database.DB) MappingRepository {
	return &mappingRepository{
		db:  db,
		log: logger.New("mappingRepository"),
	}
}

func (r *mappingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *mappingRepository) GetByKey(
	ctx context.Context,
	matchKey string,
) (*MatchKeyMapping, error) {
	log := r.log.Function("GetByKey")

	var mapping MatchKeyMapping
	if err := r.getDB(ctx).First(&mapping, "match_key = ?", matchKey).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get mapping by key", err, "matchKey", matchKey)
	}

	return &mapping, nil
}

func (r *mappingRepository) GetByKeys(
	ctx context.Context,
	matchKeys []string,
) (map[string]*MatchKeyMapping, error) {
	log := r.log.Function("GetByKeys")

	if len(matchKeys) == 0 {
		return make(map[string]*MatchKeyMapping), nil
	}

	var mappings []*MatchKeyMapping
	if err := r.getDB(ctx).Where("match_key IN ?", matchKeys).Find(&mappings).Error; err != nil {
		return nil, log.Err("failed to get mappings by keys", err, "count", len(matchKeys))
	}

	result := make(map[string]*MatchKeyMapping, len(mappings))
	for _, mapping := range mappings {
		result[mapping.MatchKey] = mapping
	}

	return result, nil
}

func (r *mappingRepository) GetBySong(
	ctx context.Context,
	songID uuid.UUID,
) ([]MatchKeyMapping, error) {
	log := r.log.Function("GetBySong")

	var mappings []MatchKeyMapping
	if err := r.getDB(ctx).Where("song_id = ?", songID).Find(&mappings).Error; err != nil {
		return nil, log.Err("failed to get mappings by song", err, "songID", songID)
	}

	return mappings, nil
}

// Upsert writes a mapping, repointing the key if it already exists. The
// stored vote count keeps the larger of the two values.
func (r *mappingRepository) Upsert(ctx context.Context, mapping *MatchKeyMapping) error {
	log := r.log.Function("Upsert")

	if err := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "match_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"song_id":        mapping.SongID,
				"is_auto_mapped": mapping.IsAutoMapped,
				"vote_count":     gorm.Expr("GREATEST(match_key_mappings.vote_count, ?)", mapping.VoteCount),
			}),
		}).
		Create(mapping).Error; err != nil {
		return log.Err("failed to upsert mapping", err, "matchKey", mapping.MatchKey)
	}

	return nil
}

func (r *mappingRepository) IncrementVoteCount(ctx context.Context, matchKey string) error {
	log := r.log.Function("IncrementVoteCount")

	if err := r.getDB(ctx).
		Model(&MatchKeyMapping{}).
		Where("match_key = ?", matchKey).
		Update("vote_count", gorm.Expr("vote_count + 1")).Error; err != nil {
		return log.Err("failed to increment mapping vote count", err, "matchKey", matchKey)
	}

	return nil
}

// ReassignSong repoints every mapping from one song to another and returns
// the number of moved keys.
func (r *mappingRepository) ReassignSong(
	ctx context.Context,
	fromSongID, toSongID uuid.UUID,
) (int64, error) {
	log := r.log.Function("ReassignSong")

	result := r.getDB(ctx).
		Model(&MatchKeyMapping{}).
		Where("song_id = ?", fromSongID).
		Update("song_id", toSongID)
	if result.Error != nil {
		return 0, log.Err(
			"failed to reassign mappings",
			result.Error,
			"from", fromSongID,
			"to", toSongID,
		)
	}

	return result.RowsAffected, nil
}

func (r *mappingRepository) DeleteBySong(ctx context.Context, songID uuid.UUID) error {
	log := r.log.Function("DeleteBySong")

	if err := r.getDB(ctx).
		Unscoped().
		Delete(&MatchKeyMapping{}, "song_id = ?", songID).Error; err != nil {
		return log.Err("failed to delete mappings by song", err, "songID", songID)
	}

	return nil
}
