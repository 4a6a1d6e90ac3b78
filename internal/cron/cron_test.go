package cron

import (
	"os"
	"testing"

	cronv3 "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"

	"github.com/mailflow/mailflow/config"
	"github.com/mailflow/mailflow/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewCronManager(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		AppConfig: &config.AppConfig{
			Logger: &logger.Config{
				LogLevel: "info",
			},
		},
	}
	log := getLogger()

	// Act
	cm := NewCronManager(cfg, log, nil)

	// Assert
	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, log, cm.log)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_StartCron(t *testing.T) {
	os.Setenv("CRON_SCHEDULE_HEARTBEAT", "0 0 * * * *")
	os.Setenv("CRON_SCHEDULE_TRASH_PURGE", "0 0 2 * * *")
	defer os.Unsetenv("CRON_SCHEDULE_HEARTBEAT")
	defer os.Unsetenv("CRON_SCHEDULE_TRASH_PURGE")

	cfg := &config.Config{
		AppConfig: &config.AppConfig{},
	}
	cm := NewCronManager(cfg, getLogger(), nil)

	cm.StartCron()
	defer cm.Stop()

	assert.NotNil(t, cm.cron)
	assert.Contains(t, cm.jobIDs, "heartbeat")
	assert.Contains(t, cm.jobIDs, "trash_purge")
	assert.NotEqual(t, cronv3.EntryID(0), cm.jobIDs["trash_purge"])
}
