package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQuery is the duration past which a statement is logged as a warning.
const slowQuery = 200 * time.Millisecond

// gormLogger routes gorm's logging into zerolog.
type gormLogger struct {
	log   zerolog.Logger
	level logger.LogLevel
}

// NewGormLogger adapts l for gorm. At logger.Info every statement is
// logged; at logger.Warn only slow statements and errors.
func NewGormLogger(l zerolog.Logger, level logger.LogLevel) logger.Interface {
	return &gormLogger{log: l, level: level}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	c := *g
	c.level = level
	return &c
}

func (g *gormLogger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Info {
		g.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Warn {
		g.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLogger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= logger.Error {
		g.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	var evt *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= logger.Error:
		evt = g.log.Error().Err(err)
	case elapsed > slowQuery && g.level >= logger.Warn:
		evt = g.log.Warn().Bool("slow", true)
	case g.level >= logger.Info:
		evt = g.log.Debug()
	default:
		return
	}

	sql, rows := fc()
	evt.Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
}
