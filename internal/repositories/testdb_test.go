package repositories

import (
	"fmt"
	"strings"
	"testing"

	"chartline/internal/database"
	"chartline/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema,
// so repository behavior is exercised against a real SQL engine.
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
