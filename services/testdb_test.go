package services

import (
	"fmt"
	"testing"

	"github.com/badinlee/sister-fitness/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level config.DB at a fresh in-memory
// database for one test. Named per test so parallel packages don't
// share state through sqlite's cache.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	config.DB = db
	_alert = alertDeps{} // reset the bus; individual tests wire it when needed
}
