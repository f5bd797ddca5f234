package database_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"apgbuilders/internal/database"
	"apgbuilders/internal/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger.Log
	logger.Log = zerolog.New(&buf)
	logger.SetLevel("info")
	t.Cleanup(func() { logger.Log = prev })
	return &buf
}

func selectOne() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("errors are logged at info level", func(t *testing.T) {
		buf := captureLog(t)
		gl := database.NewGormLogger()

		gl.Error(ctx, "boom %s", "db down")
		require.Contains(t, buf.String(), `"level":"error"`)
		require.Contains(t, buf.String(), "boom db down")
	})

	t.Run("failed query", func(t *testing.T) {
		buf := captureLog(t)
		gl := database.NewGormLogger()

		gl.Trace(ctx, time.Now(), selectOne, errors.New("connection refused"))
		require.Contains(t, buf.String(), `"level":"error"`)
		require.Contains(t, buf.String(), "connection refused")
		require.Contains(t, buf.String(), "SELECT 1")
	})

	t.Run("slow query", func(t *testing.T) {
		buf := captureLog(t)
		gl := database.NewGormLogger()

		gl.Trace(ctx, time.Now().Add(-2*time.Second), selectOne, nil)
		require.Contains(t, buf.String(), `"level":"warn"`)
		require.Contains(t, buf.String(), "slow query")
	})

	t.Run("fast queries and missing records stay quiet", func(t *testing.T) {
		buf := captureLog(t)
		gl := database.NewGormLogger()

		gl.Trace(ctx, time.Now(), selectOne, nil)
		gl.Trace(ctx, time.Now(), selectOne, gormlogger.ErrRecordNotFound)
		require.Empty(t, buf.String())
	})

	t.Run("silent mode drops everything", func(t *testing.T) {
		buf := captureLog(t)
		gl := database.NewGormLogger().LogMode(gormlogger.Silent)

		gl.Error(ctx, "boom")
		gl.Trace(ctx, time.Now(), selectOne, errors.New("boom"))
		require.Empty(t, buf.String())
	})
}

func TestGormLogger_ReportsDriverErrors(t *testing.T) {
	buf := captureLog(t)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "log.db")), &gorm.Config{
		Logger: database.NewGormLogger(),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.Error(t, db.Exec("SELECT * FROM missing_table").Error)
	require.Contains(t, buf.String(), `"level":"error"`)
	require.Contains(t, buf.String(), "missing_table")
}
