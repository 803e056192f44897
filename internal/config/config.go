package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the task tracker.
type Config struct {
	DatabasePath string

	LogLevel  string
	LogFormat string
	LogFile   string

	Location         *time.Location
	ReminderInterval time.Duration
	PlanInterval     time.Duration
	SnapshotAt       string

	NotifyAppName   string
	NotifyTimeout   time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
	TelegramToken   string
	TelegramChatID  int64
	NATSURL         string
	NATSSubject     string
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabasePath:     getEnv("TASKS_DB_PATH", "tasks.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		LogFile:          getEnv("LOG_FILE", ""),
		ReminderInterval: getDuration("REMINDER_INTERVAL", time.Minute),
		PlanInterval:     getDuration("PLAN_INTERVAL", time.Hour),
		SnapshotAt:       getEnv("HISTORY_SNAPSHOT_AT", "23:59"),
		NotifyAppName:    getEnv("NOTIFY_APP_NAME", "Task Manager"),
		NotifyTimeout:    getDuration("NOTIFY_TIMEOUT", 10*time.Second),
		BreakerFailures:  uint32(getInt("NOTIFY_BREAKER_FAILURES", 5)),
		BreakerCooldown:  getDuration("NOTIFY_BREAKER_COOLDOWN", time.Minute),
		TelegramToken:    getEnv("TELEGRAM_TOKEN", ""),
		NATSURL:          getEnv("NATS_URL", ""),
		NATSSubject:      getEnv("NATS_SUBJECT", "tasks.reminders"),
	}

	loc, err := loadLocation(getEnv("TASKS_TIMEZONE", ""))
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc

	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TASKS_TIMEZONE: %w", err)
	}
	return loc, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getDuration accepts Go durations ("90s") or bare seconds ("60").
func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return def
		}
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
