package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, logger.Warn, cfg.Database.GormLogLevel())
	assert.False(t, cfg.Purge.Enabled)
	assert.Equal(t, DefaultPurgeSchedule, cfg.Purge.Schedule)
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/shelf.db")
	t.Setenv("DATABASE_LOG_LEVEL", "silent")
	t.Setenv("PURGE_ENABLED", "true")
	t.Setenv("PURGE_SCHEDULE", "*/5 * * * *")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/shelf.db", cfg.Database.Path)
	assert.Equal(t, logger.Silent, cfg.Database.GormLogLevel())
	assert.True(t, cfg.Purge.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.Purge.Schedule)
}

func TestDatabase_GormLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"silent", logger.Silent},
		{"ERROR", logger.Error},
		{" warn ", logger.Warn},
		{"info", logger.Info},
		{"", logger.Warn},
		{"verbose", logger.Warn},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Database{LogLevel: tt.in}.GormLogLevel())
		})
	}
}
