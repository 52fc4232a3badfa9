package repositories

import (
	"context"

	"chartline/internal/database"
	. "chartline/internal/models"

	contextutil "chartline/internal/context"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerifiedArtistRepository interface {
	GetActive(ctx context.Context) ([]VerifiedArtist, error)
	GetByNormalizedName(ctx context.Context, nameNormalized string) (*VerifiedArtist, error)
	Upsert(ctx context.Context, artist *VerifiedArtist) error
}

type verifiedArtistRepository struct {
	db  database.DB
	log logger.Logger
}

func NewVerifiedArtistRepository(db database.DB) VerifiedArtistRepository {
	return &verifiedArtistRepository{
		db:  db,
		log: logger.New("verifiedArtistRepository"),
	}
}

func (r *verifiedArtistRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *verifiedArtistRepository) GetActive(ctx context.Context) ([]VerifiedArtist, error) {
	log := r.log.Function("GetActive")

	var artists []VerifiedArtist
	if err := r.getDB(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&artists).Error; err != nil {
		return nil, log.Err("failed to get active verified artists", err)
	}

	return artists, nil
}

func (r *verifiedArtistRepository) GetByNormalizedName(
	ctx context.Context,
	nameNormalized string,
) (*VerifiedArtist, error) {
	log := r.log.Function("GetByNormalizedName")

	var artist VerifiedArtist
	if err := r.getDB(ctx).
		First(&artist, "name_normalized = ?", nameNormalized).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get verified artist", err, "name", nameNormalized)
	}

	return &artist, nil
}

func (r *verifiedArtistRepository) Upsert(ctx context.Context, artist *VerifiedArtist) error {
	log := r.log.Function("Upsert")

	if err := r.getDB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"name_normalized", "aliases", "genre", "is_active"},
			),
		}).
		Create(artist).Error; err != nil {
		return log.Err("failed to upsert verified artist", err, "name", artist.Name)
	}

	return nil
}
