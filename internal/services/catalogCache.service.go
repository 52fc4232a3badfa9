package services

import (
	"context"
	"time"

	"chartline/internal/database"
	"chartline/internal/models"
	"chartline/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	verifiedSongsCacheKey = "catalog:verified_songs"
	artistAliasCacheKey   = "catalog:artist_aliases"
	catalogCacheTTL       = 5 * time.Minute
)

// CatalogCacheService is a read-through cache over the verified catalog.
// The matcher scans the whole verified list for every unresolved key, so
// both the song list and the artist alias map are held in the catalog
// cache database and refreshed from Postgres when the snapshot expires.
// Any write to the catalog must call Invalidate.
type CatalogCacheService struct {
	db   database.DB
	repo repositories.Repository
	log  logger.Logger
}

func NewCatalogCacheService(
	db database.DB,
	repo repositories.Repository,
) *CatalogCacheService {
	return &CatalogCacheService{
		db:   db,
		repo: repo,
		log:  logger.New("catalogCacheService"),
	}
}

// GetVerifiedSongs returns the verified catalog, served from cache when
// fresh. Cache failures fall through to the database.
func (s *CatalogCacheService) GetVerifiedSongs(ctx context.Context) ([]models.CanonicalSong, error) {
	log := s.log.Function("GetVerifiedSongs")

	var songs []models.CanonicalSong
	found, err := database.NewCacheBuilder(s.db.Cache.Catalog, verifiedSongsCacheKey).
		WithContext(ctx).
		Get(&songs)
	if err != nil {
		log.Warn("catalog cache read failed, falling back to database", "error", err)
	}
	if found {
		return songs, nil
	}

	songs, err = s.repo.CanonicalSong.GetVerified(ctx)
	if err != nil {
		return nil, log.Err("failed to load verified songs", err)
	}

	if err := database.NewCacheBuilder(s.db.Cache.Catalog, verifiedSongsCacheKey).
		WithContext(ctx).
		WithStruct(songs).
		WithTTL(catalogCacheTTL).
		Set(); err != nil {
		log.Warn("failed to cache verified songs", "error", err)
	}

	return songs, nil
}

// GetArtistAliases returns a map of normalized artist names and aliases
// to the canonical display spelling.
func (s *CatalogCacheService) GetArtistAliases(ctx context.Context) (map[string]string, error) {
	log := s.log.Function("GetArtistAliases")

	aliases := make(map[string]string)
	found, err := database.NewCacheBuilder(s.db.Cache.Catalog, artistAliasCacheKey).
		WithContext(ctx).
		Get(&aliases)
	if err != nil {
		log.Warn("alias cache read failed, falling back to database", "error", err)
	}
	if found {
		return aliases, nil
	}

	artists, err := s.repo.VerifiedArtist.GetActive(ctx)
	if err != nil {
		return nil, log.Err("failed to load verified artists", err)
	}

	aliases = make(map[string]string, len(artists))
	for _, artist := range artists {
		for _, name := range artist.AllNames() {
			aliases[name] = artist.Name
		}
	}

	if err := database.NewCacheBuilder(s.db.Cache.Catalog, artistAliasCacheKey).
		WithContext(ctx).
		WithStruct(aliases).
		WithTTL(catalogCacheTTL).
		Set(); err != nil {
		log.Warn("failed to cache artist aliases", "error", err)
	}

	return aliases, nil
}

// Invalidate drops both catalog snapshots. Called after any verification,
// rejection, merge, or artist change.
func (s *CatalogCacheService) Invalidate(ctx context.Context) {
	log := s.log.Function("Invalidate")

	for _, key := range []string{verifiedSongsCacheKey, artistAliasCacheKey} {
		if err := database.NewCacheBuilder(s.db.Cache.Catalog, key).
			WithContext(ctx).
			Delete(); err != nil {
			log.Warn("failed to invalidate catalog cache key", "key", key, "error", err)
		}
	}
}
