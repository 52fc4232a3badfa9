package database

import (
	"chartline/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.Voter{},
		&models.RawVote{},
		&models.RawTally{},
		&models.CanonicalSong{},
		&models.MatchKeyMapping{},
		&models.CanonicalTally{},
		&models.DecisionLog{},
		&models.VerifiedArtist{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			log.Error("Failed to migrate model", "model", model, "error", err)
			return err
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_raw_votes_date_key ON raw_votes(vote_date, match_key)",
		"CREATE INDEX IF NOT EXISTS idx_raw_votes_voter_date ON raw_votes(voter_id, vote_date)",
		"CREATE INDEX IF NOT EXISTS idx_mappings_song ON match_key_mappings(song_id)",
		"CREATE INDEX IF NOT EXISTS idx_canonical_tallies_song ON canonical_tallies(song_id)",
		"CREATE INDEX IF NOT EXISTS idx_decision_logs_created_at ON decision_logs(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_canonical_songs_lower_name ON canonical_songs(LOWER(canonical_name))",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
			// Continue with other indexes even if one fails
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
