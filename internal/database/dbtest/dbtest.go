// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"apgbuilders/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open returns a migrated database living in t.TempDir(). A single
// connection keeps concurrent readers on the same file handle.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// RejectWrites makes every op ("INSERT", "UPDATE" or "DELETE") on table
// fail while reads keep working.
func RejectWrites(t testing.TB, db *gorm.DB, table, op string) {
	t.Helper()

	name := fmt.Sprintf("reject_%s_%s", strings.ToLower(op), table)
	require.NoError(t, db.Exec(fmt.Sprintf(
		"CREATE TRIGGER %s BEFORE %s ON %s BEGIN SELECT RAISE(ABORT, 'writes rejected'); END",
		name, op, table,
	)).Error)
}
