package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"chartline/config"
	"chartline/internal/models"
	"chartline/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// Thresholds tuned to prefer false negatives over false positives: a
// vote that stays pending costs a review click, a wrong auto-merge
// corrupts the chart.
const (
	artistSimilarityThreshold = 0.88
	songSimilarityThreshold   = 0.82
)

// UnknownArtist is the placeholder for song-only votes with no resolvable artist.
const UnknownArtist = "Unknown Artist"

// ProcessStats summarizes one run over unresolved tallies.
type ProcessStats struct {
	Processed      int `json:"processed"`
	FuzzyLinked    int `json:"fuzzyLinked"`
	SemanticLinked int `json:"semanticLinked"`
	Enriched       int `json:"enriched"`
	NewPending     int `json:"newPending"`
	Errors         int `json:"errors"`
}

// ReviewStats summarizes one review pass over pending songs.
type ReviewStats struct {
	Processed int `json:"processed"`
	Merged    int `json:"merged"`
	Rejected  int `json:"rejected"`
	Verified  int `json:"verified"`
	Errors    int `json:"errors"`
}

// CatalogMatcherService resolves messy vote text to canonical songs.
//
// Resolution is tiered so the cheap deterministic work always runs
// first and the expensive calls only see what the previous tier could
// not settle:
//  1. fuzzy match against the verified catalog, gated by both an
//     absolute threshold and a confidence gap over the runner-up
//  2. semantic matching through the LLM
//  3. external catalog search for enrichment
//  4. a new pending catalog entry awaiting manual review
type CatalogMatcherService struct {
	config     config.Config
	repo       repositories.Repository
	normalizer *NormalizerService
	cache      *CatalogCacheService
	semantic   *SemanticMatcherService
	search     *CatalogSearchService
	reconciler *TallyReconcilerService
	log        logger.Logger
}

func NewCatalogMatcherService(
	config config.Config,
	repo repositories.Repository,
	normalizer *NormalizerService,
	cache *CatalogCacheService,
	semantic *SemanticMatcherService,
	search *CatalogSearchService,
	reconciler *TallyReconcilerService,
) *CatalogMatcherService {
	return &CatalogMatcherService{
		config:     config,
		repo:       repo,
		normalizer: normalizer,
		cache:      cache,
		semantic:   semantic,
		search:     search,
		reconciler: reconciler,
		log:        logger.New("catalogMatcherService"),
	}
}

// matchCatalog scores a normalized (artist, title) pair against every
// candidate and returns the winner only when it clears the threshold
// AND beats the runner-up by the confidence gap.
func matchCatalog(
	artistNorm, titleNorm string,
	songs []models.CanonicalSong,
	threshold, gap float64,
) (*models.CanonicalSong, float64) {
	if len(songs) == 0 {
		return nil, 0
	}

	type scored struct {
		song  *models.CanonicalSong
		score float64
	}

	scores := make([]scored, 0, len(songs))
	for i := range songs {
		song := &songs[i]
		score := weightedScore(
			artistNorm,
			titleNorm,
			models.NormalizeText(song.Artist),
			models.NormalizeText(song.Title),
		)
		scores = append(scores, scored{song: song, score: score})
	}

	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	best := scores[0]
	secondBest := 0.0
	if len(scores) > 1 {
		secondBest = scores[1].score
	}

	if best.score >= threshold && best.score-secondBest >= gap {
		return best.song, best.score
	}

	return nil, best.score
}

// resolveVerifiedArtist maps an artist name to its canonical spelling
// using the verified-artist aliases, exact first and then fuzzy.
func resolveVerifiedArtist(artist string, aliases map[string]string) string {
	artistNorm := models.NormalizeText(artist)

	if canonical, ok := aliases[artistNorm]; ok {
		return canonical
	}

	best := ""
	bestScore := 0.0
	for alias, canonical := range aliases {
		score := charSimilarity(artistNorm, alias)
		if score > bestScore && score >= artistSimilarityThreshold {
			bestScore = score
			best = canonical
		}
	}

	return best
}

// ResolveVote turns raw artist and song text into the grouping key and
// display strings a vote is recorded under. A confident catalog match
// snaps the vote onto the canonical song immediately; otherwise a fuzzy
// pass over the day's existing tallies keeps spelling variants of the
// same song under one key.
func (s *CatalogMatcherService) ResolveVote(
	ctx context.Context,
	artistRaw, songRaw string,
	date time.Time,
) (CleanedVote, error) {
	log := s.log.Function("ResolveVote")

	artist, song := s.normalizer.CleanVoteText(artistRaw, songRaw)
	artist = s.normalizer.CorrectArtistTypo(artist)

	verified, err := s.cache.GetVerifiedSongs(ctx)
	if err != nil {
		log.Warn("verified catalog unavailable, matching degraded", "error", err)
	}

	if matched, _ := matchCatalog(
		models.NormalizeText(artist),
		models.NormalizeText(song),
		verified,
		s.config.AutoMergeThreshold,
		s.config.ConfidenceGap,
	); matched != nil {
		return CleanedVote{
			ArtistDisplay: matched.Artist,
			SongDisplay:   matched.Title,
			MatchKey:      models.MatchKey(matched.Artist, matched.Title),
			DisplayName:   matched.CanonicalName,
		}, nil
	}

	aliases, err := s.cache.GetArtistAliases(ctx)
	if err != nil {
		log.Warn("artist aliases unavailable", "error", err)
	}

	cleaned := s.normalizer.DisplayForms(artist, song)
	if canonical := resolveVerifiedArtist(artist, aliases); canonical != "" {
		cleaned.ArtistDisplay = canonical
		cleaned.MatchKey = models.MatchKey(canonical, cleaned.SongDisplay)
		cleaned.DisplayName = models.DisplayName(canonical, cleaned.SongDisplay)
	}

	if grouped, err := s.groupWithExistingTally(ctx, cleaned, date); err == nil && grouped != nil {
		cleaned.MatchKey = grouped.MatchKey
		cleaned.DisplayName = grouped.DisplayName
	}

	return cleaned, nil
}

// groupWithExistingTally finds a same-day tally whose key is close
// enough that both votes clearly mean the same song.
func (s *CatalogMatcherService) groupWithExistingTally(
	ctx context.Context,
	cleaned CleanedVote,
	date time.Time,
) (*models.RawTally, error) {
	tallies, err := s.repo.RawTally.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	artistNorm := models.NormalizeText(cleaned.ArtistDisplay)
	songNorm := models.NormalizeText(cleaned.SongDisplay)

	for i := range tallies {
		tally := &tallies[i]
		existingArtist, existingSong, ok := splitMatchKey(tally.MatchKey)
		if !ok {
			continue
		}

		if existingArtist != artistNorm &&
			charSimilarity(artistNorm, existingArtist) < artistSimilarityThreshold {
			continue
		}
		if existingSong == songNorm ||
			charSimilarity(songNorm, existingSong) >= songSimilarityThreshold {
			return tally, nil
		}
	}

	return nil, nil
}

// ResolveTitleOnly handles votes with no artist. The verified catalog
// is tried first, then the day's tallies; when neither knows the title
// the vote lands under the Unknown Artist bucket.
func (s *CatalogMatcherService) ResolveTitleOnly(
	ctx context.Context,
	songRaw string,
	date time.Time,
) (CleanedVote, error) {
	log := s.log.Function("ResolveTitleOnly")

	songNorm := models.NormalizeText(songRaw)

	verified, err := s.cache.GetVerifiedSongs(ctx)
	if err != nil {
		log.Warn("verified catalog unavailable for title lookup", "error", err)
	}

	var best *models.CanonicalSong
	bestScore := 0.0
	for i := range verified {
		song := &verified[i]
		score := charSimilarity(songNorm, models.NormalizeText(song.Title))
		if score > bestScore && score >= songSimilarityThreshold {
			bestScore = score
			best = song
		}
	}
	if best != nil {
		return CleanedVote{
			ArtistDisplay: best.Artist,
			SongDisplay:   best.Title,
			MatchKey:      models.MatchKey(best.Artist, best.Title),
			DisplayName:   best.CanonicalName,
		}, nil
	}

	tallies, err := s.repo.RawTally.GetByDate(ctx, date)
	if err == nil {
		for i := range tallies {
			tally := &tallies[i]
			existingArtist, existingSong, ok := splitMatchKey(tally.MatchKey)
			if !ok || existingArtist == "unknown" {
				continue
			}
			if charSimilarity(songNorm, existingSong) >= songSimilarityThreshold {
				artistDisplay, songDisplay, found := strings.Cut(tally.DisplayName, " - ")
				if found {
					return CleanedVote{
						ArtistDisplay: artistDisplay,
						SongDisplay:   songDisplay,
						MatchKey:      tally.MatchKey,
						DisplayName:   tally.DisplayName,
					}, nil
				}
			}
		}
	}

	songDisplay := titleCase(strings.TrimSpace(songRaw))
	return CleanedVote{
		ArtistDisplay: UnknownArtist,
		SongDisplay:   songDisplay,
		MatchKey:      "unknown::" + songNorm,
		DisplayName:   UnknownArtist + " - " + songDisplay,
	}, nil
}

// ProcessUnmatched resolves the day's raw tallies that have no mapping
// yet, working down the tiers.
func (s *CatalogMatcherService) ProcessUnmatched(
	ctx context.Context,
	date time.Time,
	limit int,
) (ProcessStats, error) {
	log := s.log.Function("ProcessUnmatched")

	var stats ProcessStats

	verified, err := s.repo.CanonicalSong.GetVerified(ctx)
	if err != nil {
		return stats, log.Err("failed to load verified catalog", err)
	}

	unmatched, err := s.repo.RawTally.GetUnmapped(ctx, date, limit)
	if err != nil {
		return stats, log.Err("failed to load unmatched tallies", err)
	}
	if len(unmatched) == 0 {
		return stats, nil
	}

	var remaining []models.RawTally

	// Tier 1: deterministic fuzzy match
	for _, tally := range unmatched {
		stats.Processed++

		artist, title := splitDisplayName(tally.DisplayName)
		matched, score := matchCatalog(
			models.NormalizeText(artist),
			models.NormalizeText(title),
			verified,
			s.config.AutoMergeThreshold,
			s.config.ConfidenceGap,
		)
		if matched == nil {
			remaining = append(remaining, tally)
			continue
		}

		if err := s.linkTally(ctx, tally, matched, models.ConfidenceHigh,
			"fuzzy match above auto-merge threshold", score); err != nil {
			stats.Errors++
			remaining = append(remaining, tally)
			continue
		}
		stats.FuzzyLinked++
	}

	// Tier 2: semantic matching
	if s.semantic.Enabled() && len(remaining) > 0 && len(verified) > 0 {
		remaining = s.semanticPass(ctx, remaining, verified, &stats)
	}

	// Tier 3 and 4: enrichment search, then pending entries
	for _, tally := range remaining {
		if err := s.ensureSong(ctx, tally, &stats); err != nil {
			log.Er("failed to create catalog entry for tally", err, "matchKey", tally.MatchKey)
			stats.Errors++
		}
	}

	if stats.FuzzyLinked+stats.SemanticLinked+stats.Enriched > 0 {
		if _, err := s.reconciler.Recompute(ctx, date); err != nil {
			log.Warn("recompute after linking failed", "error", err)
		}
	}

	log.Info(
		"Processed unmatched tallies",
		"processed", stats.Processed,
		"fuzzy", stats.FuzzyLinked,
		"semantic", stats.SemanticLinked,
		"enriched", stats.Enriched,
		"pending", stats.NewPending,
		"errors", stats.Errors,
	)
	return stats, nil
}

func (s *CatalogMatcherService) semanticPass(
	ctx context.Context,
	tallies []models.RawTally,
	verified []models.CanonicalSong,
	stats *ProcessStats,
) []models.RawTally {
	log := s.log.Function("semanticPass")

	byKey := make(map[string]models.RawTally, len(tallies))
	votes := make([]VoteToMatch, 0, len(tallies))
	for _, tally := range tallies {
		byKey[tally.MatchKey] = tally
		votes = append(votes, VoteToMatch{
			DisplayName: tally.DisplayName,
			MatchKey:    tally.MatchKey,
			Count:       tally.Count,
		})
	}

	linked := make(map[string]struct{})

	batchSize := s.semantic.BatchSize()
	for start := 0; start < len(votes); start += batchSize {
		end := start + batchSize
		if end > len(votes) {
			end = len(votes)
		}

		results, err := s.semantic.MatchVotes(ctx, votes[start:end], verified)
		if err != nil {
			// Semantic matching is best-effort; the batch stays pending
			log.Warn("semantic batch failed", "batch", start/batchSize, "error", err)
			continue
		}

		for _, result := range results {
			tally, ok := byKey[result.MatchKey]
			if !ok {
				continue
			}

			autoLink := result.ShouldAutoLink ||
				(s.config.SemanticAutoLinkMedium &&
					result.Confidence == models.ConfidenceMedium &&
					result.MatchedSongID != nil)

			if !autoLink {
				s.logDecision(ctx, &models.DecisionLog{
					InputText:       result.RawInput,
					InputType:       "raw_vote",
					Action:          models.ActionNew,
					Confidence:      result.Confidence,
					Reasoning:       result.Reasoning,
					MatchedSongID:   result.MatchedSongID,
					MatchedSongName: result.MatchedSongName,
					WasApplied:      false,
				})
				continue
			}

			matched := findSongByID(verified, *result.MatchedSongID)
			if matched == nil {
				continue
			}

			if err := s.linkTallySemantic(ctx, tally, matched, result); err != nil {
				stats.Errors++
				continue
			}
			stats.SemanticLinked++
			linked[result.MatchKey] = struct{}{}
		}
	}

	var remaining []models.RawTally
	for _, tally := range tallies {
		if _, ok := linked[tally.MatchKey]; !ok {
			remaining = append(remaining, tally)
		}
	}
	return remaining
}

// ensureSong gives an unresolvable tally a catalog home: an external
// catalog hit creates a verified entry, anything else a pending one.
// Either way the tally's key gets a mapping so it is never reprocessed.
func (s *CatalogMatcherService) ensureSong(
	ctx context.Context,
	tally models.RawTally,
	stats *ProcessStats,
) error {
	artist, title := splitDisplayName(tally.DisplayName)

	if s.search.Enabled() {
		aliases, err := s.cache.GetArtistAliases(ctx)
		if err != nil {
			aliases = nil
		}

		track, score, err := s.search.ResolveWithConfidence(ctx, artist, title, aliases)
		if err == nil && track != nil && s.search.HighConfidence(score) {
			song, err := s.songFromTrack(ctx, track)
			if err == nil {
				if err := s.createMapping(ctx, tally, song); err != nil {
					return err
				}
				s.logDecision(ctx, &models.DecisionLog{
					InputText:       tally.DisplayName,
					InputType:       "raw_vote",
					Action:          models.ActionMatch,
					Confidence:      models.ConfidenceHigh,
					Reasoning:       "external catalog confirmed the track",
					MatchedSongID:   &song.ID,
					MatchedSongName: song.CanonicalName,
					WasApplied:      true,
				})
				stats.Enriched++
				s.cache.Invalidate(ctx)
				return nil
			}
		}
	}

	song, err := s.findOrCreateSong(ctx, titleCase(artist), titleCase(title), models.SongStatusPending)
	if err != nil {
		return err
	}

	if err := s.createMapping(ctx, tally, song); err != nil {
		return err
	}

	s.logDecision(ctx, &models.DecisionLog{
		InputText:  tally.DisplayName,
		InputType:  "raw_vote",
		Action:     models.ActionNew,
		Confidence: models.ConfidenceLow,
		Reasoning:  "no confident match, pending manual review",
		WasApplied: true,
	})
	stats.NewPending++
	return nil
}

// findOrCreateSong creates a catalog entry, deduplicating on the
// canonical name case-insensitively. A unique-constraint race on insert
// falls back to fetching the winning row.
func (s *CatalogMatcherService) findOrCreateSong(
	ctx context.Context,
	artist, title string,
	status models.SongStatus,
) (*models.CanonicalSong, error) {
	log := s.log.Function("findOrCreateSong")

	canonicalName := artist + " - " + title

	existing, err := s.repo.CanonicalSong.GetByNameInsensitive(ctx, canonicalName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	song := &models.CanonicalSong{
		Artist:        artist,
		Title:         title,
		CanonicalName: canonicalName,
		Status:        status,
	}

	created, err := s.repo.CanonicalSong.Create(ctx, song)
	if err == nil {
		return created, nil
	}

	// Concurrent resolution of the same song loses the insert race
	existing, fetchErr := s.repo.CanonicalSong.GetByNameInsensitive(ctx, canonicalName)
	if fetchErr == nil && existing != nil {
		log.Info("found existing song after insert conflict", "canonicalName", canonicalName)
		return existing, nil
	}

	return nil, err
}

// songFromTrack creates or enriches a verified catalog entry from an
// external search result.
func (s *CatalogMatcherService) songFromTrack(
	ctx context.Context,
	track *CatalogTrack,
) (*models.CanonicalSong, error) {
	artist := strings.Join(track.Artists, ", ")

	song, err := s.findOrCreateSong(ctx, artist, track.Title, models.SongStatusVerified)
	if err != nil {
		return nil, err
	}

	changed := false
	if song.CatalogTrackID == nil || *song.CatalogTrackID == "" {
		song.CatalogTrackID = &track.ID
		if track.Album != "" {
			song.Album = &track.Album
		}
		if track.ImageURL != "" {
			song.ImageURL = &track.ImageURL
		}
		if track.PreviewURL != "" {
			song.PreviewURL = &track.PreviewURL
		}
		changed = true
	}
	if song.Status == models.SongStatusPending {
		song.Status = models.SongStatusVerified
		changed = true
	}

	if changed {
		if err := s.repo.CanonicalSong.Update(ctx, song); err != nil {
			return nil, err
		}
	}

	return song, nil
}

// ReviewPending runs the semantic reviewer over pending catalog entries
// and applies its verdicts: merge duplicates, reject spam, verify new
// songs.
func (s *CatalogMatcherService) ReviewPending(ctx context.Context, limit int) (ReviewStats, error) {
	log := s.log.Function("ReviewPending")

	var stats ReviewStats

	if !s.semantic.Enabled() {
		return stats, log.Error("semantic matching is not enabled")
	}

	verified, err := s.repo.CanonicalSong.GetVerified(ctx)
	if err != nil {
		return stats, log.Err("failed to load verified catalog", err)
	}
	if len(verified) == 0 {
		return stats, log.Error("no verified songs to review against")
	}

	pending, err := s.repo.CanonicalSong.GetByStatus(ctx, models.SongStatusPending, limit)
	if err != nil {
		return stats, log.Err("failed to load pending songs", err)
	}
	if len(pending) == 0 {
		return stats, nil
	}

	batchSize := s.semantic.BatchSize()
	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}

		results, err := s.semantic.ReviewPending(ctx, pending[start:end], verified)
		if err != nil {
			log.Warn("pending review batch failed", "batch", start/batchSize, "error", err)
			stats.Errors++
			continue
		}

		for _, result := range results {
			stats.Processed++
			s.applyReviewVerdict(ctx, result, &stats)
		}
	}

	log.Info(
		"Reviewed pending songs",
		"processed", stats.Processed,
		"merged", stats.Merged,
		"rejected", stats.Rejected,
		"verified", stats.Verified,
		"errors", stats.Errors,
	)
	return stats, nil
}

func (s *CatalogMatcherService) applyReviewVerdict(
	ctx context.Context,
	result PendingReviewResult,
	stats *ReviewStats,
) {
	log := s.log.Function("applyReviewVerdict")

	applied := false
	action := result.Action

	switch result.Action {
	case models.ActionMatch:
		confident := result.Confidence == models.ConfidenceHigh ||
			result.Confidence == models.ConfidenceMedium
		if confident && result.MatchedID != nil {
			if _, err := s.reconciler.Merge(ctx, result.PendingID, *result.MatchedID); err != nil {
				stats.Errors++
			} else {
				stats.Merged++
				applied = true
				action = models.ActionAutoMerge
			}
		}
	case models.ActionReject:
		if err := s.reconciler.RejectSong(ctx, result.PendingID); err != nil {
			stats.Errors++
		} else {
			stats.Rejected++
			applied = true
			action = models.ActionAutoReject
		}
	case models.ActionNew:
		if err := s.reconciler.VerifySong(ctx, result.PendingID); err != nil {
			stats.Errors++
		} else {
			stats.Verified++
			applied = true
		}
	default:
		log.Warn("unknown review action", "action", result.Action)
	}

	s.logDecision(ctx, &models.DecisionLog{
		InputText:       result.PendingName,
		InputType:       "pending_song",
		Action:          action,
		Confidence:      result.Confidence,
		Reasoning:       result.Reasoning,
		MatchedSongID:   result.MatchedID,
		MatchedSongName: result.MatchedName,
		WasApplied:      applied,
	})
}

func (s *CatalogMatcherService) linkTally(
	ctx context.Context,
	tally models.RawTally,
	song *models.CanonicalSong,
	confidence models.ConfidenceTier,
	reasoning string,
	score float64,
) error {
	if err := s.createMapping(ctx, tally, song); err != nil {
		return err
	}

	s.logDecision(ctx, &models.DecisionLog{
		InputText:       tally.DisplayName,
		InputType:       "raw_vote",
		Action:          models.ActionMatch,
		Confidence:      confidence,
		Reasoning:       reasoning,
		MatchedSongID:   &song.ID,
		MatchedSongName: song.CanonicalName,
		WasApplied:      true,
	})

	s.log.Function("linkTally").Info(
		"Linked tally to catalog song",
		"matchKey", tally.MatchKey,
		"song", song.CanonicalName,
		"score", score,
	)
	return nil
}

// linkTallySemantic applies a semantic verdict. The audit row lands
// before the mapping so every model-driven mutation has a trail even
// when the write half fails; the row is flipped to applied afterwards.
func (s *CatalogMatcherService) linkTallySemantic(
	ctx context.Context,
	tally models.RawTally,
	song *models.CanonicalSong,
	result SemanticMatchResult,
) error {
	entry := &models.DecisionLog{
		InputText:       result.RawInput,
		InputType:       "raw_vote",
		Action:          models.ActionAutoMerge,
		Confidence:      result.Confidence,
		Reasoning:       result.Reasoning,
		MatchedSongID:   &song.ID,
		MatchedSongName: song.CanonicalName,
		WasApplied:      false,
	}
	clampDecision(entry)
	if err := s.repo.DecisionLog.Create(ctx, entry); err != nil {
		return err
	}

	if err := s.createMapping(ctx, tally, song); err != nil {
		return err
	}

	if err := s.repo.DecisionLog.MarkApplied(ctx, entry.ID); err != nil {
		s.log.Function("linkTallySemantic").
			Warn("failed to mark decision applied", "id", entry.ID, "error", err)
	}
	return nil
}

func (s *CatalogMatcherService) createMapping(
	ctx context.Context,
	tally models.RawTally,
	song *models.CanonicalSong,
) error {
	return s.repo.Mapping.Upsert(ctx, &models.MatchKeyMapping{
		MatchKey:          tally.MatchKey,
		SongID:            song.ID,
		SampleDisplayName: tally.DisplayName,
		VoteCount:         tally.Count,
		IsAutoMapped:      true,
	})
}

// clampDecision bounds the free-text columns of an audit row.
func clampDecision(entry *models.DecisionLog) {
	if len(entry.InputText) > 512 {
		entry.InputText = entry.InputText[:512]
	}
	if len(entry.Reasoning) > 500 {
		entry.Reasoning = entry.Reasoning[:500]
	}
}

// logDecision writes an audit row; failures never interrupt the pipeline.
func (s *CatalogMatcherService) logDecision(ctx context.Context, entry *models.DecisionLog) {
	clampDecision(entry)
	if err := s.repo.DecisionLog.Create(ctx, entry); err != nil {
		s.log.Function("logDecision").Warn("failed to write decision log", "error", err)
	}
}

func splitMatchKey(matchKey string) (artist, song string, ok bool) {
	return strings.Cut(matchKey, "::")
}

func splitDisplayName(displayName string) (artist, title string) {
	artist, title, found := strings.Cut(displayName, " - ")
	if !found {
		return "Unknown", displayName
	}
	return strings.TrimSpace(artist), strings.TrimSpace(title)
}

func findSongByID(songs []models.CanonicalSong, id uuid.UUID) *models.CanonicalSong {
	for i := range songs {
		if songs[i].ID == id {
			return &songs[i]
		}
	}
	return nil
}
