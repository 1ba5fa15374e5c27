package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nurse-directory/config"
	"nurse-directory/internal/model"
)

func TestDialector(t *testing.T) {
	assert.Equal(t, "sqlite", Dialector("sqlite://nurses.db").Name())
	assert.Equal(t, "postgres", Dialector("host=localhost user=nurse dbname=nurses").Name())
}

func TestInit_SQLiteMemory(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{DSN: "sqlite://:memory:"}, zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, gormDB.Migrator().HasTable(&model.Nurse{}))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestGormLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := context.Background()

	quiet := NewGormLogger(log, logger.Warn)
	quiet.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 1 }, nil)
	assert.Empty(t, buf.String(), "fast queries are not logged at warn")

	quiet.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 2", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is not an error")

	quiet.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 3", 0 }, errors.New("no such table"))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT 3"`)

	buf.Reset()
	quiet.LogMode(logger.Info).Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 4", 2 }, nil)
	assert.Contains(t, buf.String(), `"sql":"SELECT 4"`)
	assert.Contains(t, buf.String(), `"rows":2`)

	buf.Reset()
	quiet.LogMode(logger.Silent).Error(ctx, "boom %d", 1)
	assert.Empty(t, buf.String())
	quiet.Error(ctx, "boom %d", 2)
	assert.Contains(t, buf.String(), "boom 2")
}
