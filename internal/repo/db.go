// Package repo implements the persistence layer for buyer leads and their
// status history, backed by GORM on the pure-Go SQLite driver.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/leadstack/buyer-intake/internal/domain"
)

// pragmas applied on open. WAL keeps readers unblocked during imports; the
// busy timeout rides out writer contention instead of failing fast.
var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA foreign_keys=ON;",
	"PRAGMA busy_timeout=5000;",
}

// OpenSQLite opens (or creates) the SQLite database at path, registers the
// OpenTelemetry tracing plugin, applies the pragmas, and sizes the pool.
func OpenSQLite(path string) (*gorm.DB, error) {
	// A missing parent directory surfaces from the driver as a misleading
	// "out of memory (14)"; check up front instead.
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	for _, p := range pragmas {
		db.Exec(p)
	}
	tunePool(db)
	return db, nil
}

// tunePool bounds the connection pool. SQLite tolerates a handful of
// concurrent connections well; anything larger just queues on the write lock.
func tunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// AutoMigrate creates or updates the buyer and history tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Buyer{},
		&domain.HistoryEntry{},
	)
}
