package services

import (
	"context"
	"time"

	"chartline/internal/models"
	"chartline/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MergeResult summarizes a song merge.
type MergeResult struct {
	KeysMoved    int64 `json:"keysMoved"`
	TalliesMoved int   `json:"talliesMoved"`
}

// TallyReconcilerService derives the canonical per-day chart from raw
// tallies and the match key mappings. Canonical tallies are never a
// source of truth; Recompute can rebuild any day from scratch, which
// makes every operation here safe to re-run.
type TallyReconcilerService struct {
	repo  repositories.Repository
	tx    *TransactionService
	cache *CatalogCacheService
	log   logger.Logger
}

func NewTallyReconcilerService(
	repo repositories.Repository,
	tx *TransactionService,
	cache *CatalogCacheService,
) *TallyReconcilerService {
	return &TallyReconcilerService{
		repo:  repo,
		tx:    tx,
		cache: cache,
		log:   logger.New("tallyReconcilerService"),
	}
}

// Recompute rebuilds the canonical tallies for one day. Raw counts are
// folded through the mappings, only verified songs receive counts, and
// stale rows for the day are removed. Running it twice yields the same
// result.
func (s *TallyReconcilerService) Recompute(ctx context.Context, date time.Time) (int, error) {
	log := s.log.Function("Recompute")

	var updated int
	err := s.tx.Execute(ctx, func(txCtx context.Context, _ *gorm.DB) error {
		rawTallies, err := s.repo.RawTally.GetByDate(txCtx, date)
		if err != nil {
			return err
		}

		matchKeys := make([]string, 0, len(rawTallies))
		for _, tally := range rawTallies {
			matchKeys = append(matchKeys, tally.MatchKey)
		}

		mappings, err := s.repo.Mapping.GetByKeys(txCtx, matchKeys)
		if err != nil {
			return err
		}

		verified, err := s.repo.CanonicalSong.GetVerified(txCtx)
		if err != nil {
			return err
		}
		verifiedIDs := make(map[uuid.UUID]struct{}, len(verified))
		for _, song := range verified {
			verifiedIDs[song.ID] = struct{}{}
		}

		counts := make(map[uuid.UUID]int)
		for _, tally := range rawTallies {
			mapping, ok := mappings[tally.MatchKey]
			if !ok {
				continue
			}
			if _, ok := verifiedIDs[mapping.SongID]; !ok {
				continue
			}
			counts[mapping.SongID] += tally.Count
		}

		songIDs := make([]uuid.UUID, 0, len(counts))
		for songID, count := range counts {
			if err := s.repo.CanonicalTally.SetCount(txCtx, date, songID, count); err != nil {
				return err
			}
			songIDs = append(songIDs, songID)
		}

		if err := s.repo.CanonicalTally.DeleteForDateExcept(txCtx, date, songIDs); err != nil {
			return err
		}

		updated = len(counts)
		return nil
	})
	if err != nil {
		return 0, log.Err("failed to recompute canonical tallies", err, "date", date)
	}

	log.Info("Recomputed canonical tallies", "date", date, "songs", updated)
	return updated, nil
}

// Merge folds one song into another: mappings are repointed, a mapping
// for the source's own grouping key is added so future votes land on the
// target, tally history moves over date by date, and the source row is
// deleted. Everything happens in one transaction.
func (s *TallyReconcilerService) Merge(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
) (MergeResult, error) {
	log := s.log.Function("Merge")

	if sourceID == targetID {
		return MergeResult{}, log.Error("cannot merge a song into itself", "songID", sourceID)
	}

	var result MergeResult
	err := s.tx.Execute(ctx, func(txCtx context.Context, _ *gorm.DB) error {
		source, err := s.repo.CanonicalSong.GetByID(txCtx, sourceID.String())
		if err != nil {
			return err
		}
		target, err := s.repo.CanonicalSong.GetByID(txCtx, targetID.String())
		if err != nil {
			return err
		}

		moved, err := s.repo.Mapping.ReassignSong(txCtx, source.ID, target.ID)
		if err != nil {
			return err
		}
		result.KeysMoved = moved

		// Future votes spelled exactly like the source still resolve
		if err := s.repo.Mapping.Upsert(txCtx, &models.MatchKeyMapping{
			MatchKey:          models.MatchKey(source.Artist, source.Title),
			SongID:            target.ID,
			SampleDisplayName: source.CanonicalName,
			IsAutoMapped:      true,
		}); err != nil {
			return err
		}

		sourceTallies, err := s.repo.CanonicalTally.GetBySong(txCtx, source.ID)
		if err != nil {
			return err
		}
		for _, tally := range sourceTallies {
			if err := s.repo.CanonicalTally.AddCount(
				txCtx,
				time.Time(tally.Date),
				target.ID,
				tally.Count,
			); err != nil {
				return err
			}
		}
		result.TalliesMoved = len(sourceTallies)

		if err := s.repo.CanonicalTally.DeleteBySong(txCtx, source.ID); err != nil {
			return err
		}

		return s.repo.CanonicalSong.Delete(txCtx, source.ID)
	})
	if err != nil {
		return MergeResult{}, log.Err("merge failed", err, "source", sourceID, "target", targetID)
	}

	s.cache.Invalidate(ctx)

	log.Info(
		"Merged song",
		"source", sourceID,
		"target", targetID,
		"keysMoved", result.KeysMoved,
		"talliesMoved", result.TalliesMoved,
	)
	return result, nil
}

// VerifySong promotes a song to the verified catalog and brings today's
// chart up to date.
func (s *TallyReconcilerService) VerifySong(ctx context.Context, songID uuid.UUID) error {
	log := s.log.Function("VerifySong")

	if err := s.repo.CanonicalSong.UpdateStatus(ctx, songID, models.SongStatusVerified); err != nil {
		return log.Err("failed to verify song", err, "songID", songID)
	}

	s.cache.Invalidate(ctx)

	if _, err := s.Recompute(ctx, time.Now().UTC()); err != nil {
		log.Warn("recompute after verify failed", "songID", songID, "error", err)
	}

	return nil
}

// RejectSong marks a song as rejected and removes its chart entries.
// Mappings stay in place so the same spam does not resurface as a new
// pending entry.
func (s *TallyReconcilerService) RejectSong(ctx context.Context, songID uuid.UUID) error {
	log := s.log.Function("RejectSong")

	err := s.tx.Execute(ctx, func(txCtx context.Context, _ *gorm.DB) error {
		if err := s.repo.CanonicalSong.UpdateStatus(txCtx, songID, models.SongStatusRejected); err != nil {
			return err
		}
		return s.repo.CanonicalTally.DeleteBySong(txCtx, songID)
	})
	if err != nil {
		return log.Err("failed to reject song", err, "songID", songID)
	}

	s.cache.Invalidate(ctx)
	return nil
}
