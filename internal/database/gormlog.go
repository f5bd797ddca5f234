package database

import (
	"context"
	"errors"
	"time"

	"apgbuilders/internal/logger"

	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const slowQueryThreshold = 500 * time.Millisecond

// gormLog sends gorm's messages to logger.Log at a matching zerolog level.
// The global logger is looked up on every call so SetJSON takes effect.
type gormLog struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger reports slow queries as warnings and failed queries as
// errors. Missing records are not reported.
func NewGormLogger() gormlogger.Interface {
	return &gormLog{level: gormlogger.Warn, slowThreshold: slowQueryThreshold}
}

func (l *gormLog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *gormLog) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Log.Info().Str("caller", utils.FileWithLineNum()).Msgf(msg, args...)
	}
}

func (l *gormLog) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Log.Warn().Str("caller", utils.FileWithLineNum()).Msgf(msg, args...)
	}
}

func (l *gormLog) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Log.Error().Str("caller", utils.FileWithLineNum()).Msgf(msg, args...)
	}
}

func (l *gormLog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		logger.Log.Error().
			Err(err).
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Log.Warn().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msgf("slow query over %s", l.slowThreshold)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Log.Debug().
			Str("sql", sql).
			Int64("rows", rows).
			Dur("elapsed", elapsed).
			Msg("query")
	}
}
