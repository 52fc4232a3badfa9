package services

import (
	"fmt"
	"strings"
	"testing"

	"chartline/config"
	"chartline/internal/database"
	"chartline/internal/models"
	"chartline/internal/repositories"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
// The cache clients stay nil, so every cache path exercises its database
// fallthrough.
func setupTestDB(t *testing.T) database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gormDB.AutoMigrate(
		&models.Voter{},
		&models.RawVote{},
		&models.RawTally{},
		&models.CanonicalSong{},
		&models.MatchKeyMapping{},
		&models.CanonicalTally{},
		&models.DecisionLog{},
		&models.VerifiedArtist{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return database.DB{SQL: gormDB}
}

func testConfig() config.Config {
	return config.Config{
		MaxVotesPerDay:     5,
		SpamWindowSecs:     60,
		SpamMaxIdentical:   3,
		AutoMergeThreshold: 0.92,
		ConfidenceGap:      0.10,
	}
}

// newTestStack builds the full service aggregate over a fresh database,
// with the semantic and external search tiers disabled through config.
func newTestStack(t *testing.T) (Service, repositories.Repository) {
	t.Helper()

	db := setupTestDB(t)
	svc, err := New(db, testConfig())
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}

	return svc, repositories.New(db)
}
