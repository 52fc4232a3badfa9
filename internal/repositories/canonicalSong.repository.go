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

type CanonicalSongRepository interface {
	GetByID(ctx context.Context, id string) (*CanonicalSong, error)
	GetByNameInsensitive(ctx context.Context, canonicalName string) (*CanonicalSong, error)
	GetByStatus(ctx context.Context, status SongStatus, limit int) ([]CanonicalSong, error)
	GetVerified(ctx context.Context) ([]CanonicalSong, error)
	Create(ctx context.Context, song *CanonicalSong) (*CanonicalSong, error)
	Update(ctx context.Context, song *CanonicalSong) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status SongStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type canonicalSongRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCanonicalSongRepository(db database.DB) CanonicalSongRepository {
	return &canonicalSongRepository{
		db:  db,
		log: logger.New("canonicalSongRepository"),
	}
}

func (r *canonicalSongRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *canonicalSongRepository) GetByID(ctx context.Context, id string) (*CanonicalSong, error) {
	log := r.log.Function("GetByID")

	songID, err := uuid.Parse(id)
	if err != nil {
		return nil, log.Err("failed to parse song ID", err, "id", id)
	}

	var song CanonicalSong
	if err := r.getDB(ctx).First(&song, "id = ?", songID).Error; err != nil {
		return nil, log.Err("failed to get song by ID", err, "id", id)
	}

	return &song, nil
}

func (r *canonicalSongRepository) GetByNameInsensitive(
	ctx context.Context,
	canonicalName string,
) (*CanonicalSong, error) {
	log := r.log.Function("GetByNameInsensitive")

	var song CanonicalSong
	if err := r.getDB(ctx).
		First(&song, "LOWER(canonical_name) = LOWER(?)", canonicalName).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get song by name", err, "canonicalName", canonicalName)
	}

	return &song, nil
}

func (r *canonicalSongRepository) GetByStatus(
	ctx context.Context,
	status SongStatus,
	limit int,
) ([]CanonicalSong, error) {
	log := r.log.Function("GetByStatus")

	query := r.getDB(ctx).Where("status = ?", status).Order("created_at")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var songs []CanonicalSong
	if err := query.Find(&songs).Error; err != nil {
		return nil, log.Err("failed to get songs by status", err, "status", status)
	}

	return songs, nil
}

func (r *canonicalSongRepository) GetVerified(ctx context.Context) ([]CanonicalSong, error) {
	return r.GetByStatus(ctx, SongStatusVerified, 0)
}

func (r *canonicalSongRepository) Create(
	ctx context.Context,
	song *CanonicalSong,
) (*CanonicalSong, error) {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(song).Error; err != nil {
		return nil, log.Err("failed to create song", err, "canonicalName", song.CanonicalName)
	}

	return song, nil
}

func (r *canonicalSongRepository) Update(ctx context.Context, song *CanonicalSong) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(song).Error; err != nil {
		return log.Err("failed to update song", err, "id", song.ID)
	}

	return nil
}

func (r *canonicalSongRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status SongStatus,
) error {
	log := r.log.Function("UpdateStatus")

	result := r.getDB(ctx).
		Model(&CanonicalSong{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return log.Err("failed to update song status", result.Error, "id", id, "status", status)
	}
	if result.RowsAffected == 0 {
		return log.Error("song not found for status update", "id", id)
	}

	return nil
}

func (r *canonicalSongRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Unscoped().Delete(&CanonicalSong{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete song", err, "id", id)
	}

	return nil
}
