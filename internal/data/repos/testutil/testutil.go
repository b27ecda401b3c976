package testutil

import (
	"sync"
	"testing"

	"gorm.io/gorm"

	storedb "github.com/yungbote/redmane-backend/internal/data/db"
	"github.com/yungbote/redmane-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a fresh migrated in-memory SQLite store for one test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	store, err := storedb.NewStoreService(logger.Nop(), storedb.Config{
		Driver: storedb.DriverSQLite,
		DSN:    ":memory:",
		Silent: true,
	})
	if err != nil {
		tb.Fatalf("failed to open test store: %v", err)
	}
	tb.Cleanup(func() { _ = store.Close() })
	if err := store.AutoMigrateAll(); err != nil {
		tb.Fatalf("failed to migrate test store: %v", err)
	}
	return store.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
