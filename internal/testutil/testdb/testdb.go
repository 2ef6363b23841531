// Package testdb opens a migrated in-memory SQLite database for repository
// and use-case tests.
package testdb

import (
	"testing"

	"p2p-lending-ledger/internal/infrastructure/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database. The pool is pinned to one connection: every
// new sqlite :memory: connection is an empty database, and a single
// connection also serializes transactions the way row locks would.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGormWithDialector(sqlite.Open(":memory:"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}
