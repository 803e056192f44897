package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"TASKS_DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	"REMINDER_INTERVAL", "PLAN_INTERVAL", "HISTORY_SNAPSHOT_AT", "TASKS_TIMEZONE",
	"NOTIFY_APP_NAME", "NOTIFY_TIMEOUT", "NOTIFY_BREAKER_FAILURES", "NOTIFY_BREAKER_COOLDOWN",
	"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "NATS_URL", "NATS_SUBJECT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "tasks.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	assert.Equal(t, time.Hour, cfg.PlanInterval)
	assert.Equal(t, "23:59", cfg.SnapshotAt)
	assert.Equal(t, "Task Manager", cfg.NotifyAppName)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, uint32(5), cfg.BreakerFailures)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, "tasks.reminders", cfg.NATSSubject)
	assert.Empty(t, cfg.TelegramToken)
	assert.Zero(t, cfg.TelegramChatID)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKS_DB_PATH", "/var/lib/tasks/tasks.db")
	t.Setenv("REMINDER_INTERVAL", "30")
	t.Setenv("PLAN_INTERVAL", "2h")
	t.Setenv("TASKS_TIMEZONE", "UTC")
	t.Setenv("NOTIFY_BREAKER_FAILURES", "3")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tasks/tasks.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Second, cfg.ReminderInterval)
	assert.Equal(t, 2*time.Hour, cfg.PlanInterval)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, uint32(3), cfg.BreakerFailures)
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
}

func TestLoad_InvalidDurationsFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REMINDER_INTERVAL", "soon")
	t.Setenv("PLAN_INTERVAL", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.ReminderInterval)
	assert.Equal(t, time.Hour, cfg.PlanInterval)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("token without chat", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		_, err := Load()
		assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")
	})
	t.Run("bad chat id", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_CHAT_ID", "me")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bad timezone", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TASKS_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.ErrorContains(t, err, "TASKS_TIMEZONE")
	})
}
