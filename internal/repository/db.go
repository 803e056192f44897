package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-tracker/internal/model"
)

// NewDB opens a SQLite database and runs migrations.
func NewDB(dsn string, log *slog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "tasks.db"
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	if log == nil {
		log = slog.Default()
	}
	dbLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withBusyTimeout(dsn)), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection keeps every statement on the same SQLite handle.
	sqlDB.SetMaxOpenConns(1)

	if err := dedupeCategories(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	if err := db.AutoMigrate(&model.Task{}, &model.HistoryRecord{}, &model.Category{}, &model.Setting{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// dedupeCategories drops repeated names left by stores that had no unique
// constraint, keeping the newest row, so the unique index can be created.
func dedupeCategories(db *gorm.DB) error {
	if !db.Migrator().HasTable(&model.Category{}) {
		return nil
	}
	return db.Exec(`DELETE FROM categories WHERE id NOT IN (SELECT MAX(id) FROM categories GROUP BY name)`).Error
}

func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_busy_timeout=5000"
	}
	return dsn + "?_busy_timeout=5000"
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	dir := filepath.Dir(sqlitePath(dsn))
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

// sqlitePath strips the file: prefix and query string from a DSN.
func sqlitePath(dsn string) string {
	clean := strings.TrimPrefix(dsn, "file:")
	return strings.Split(clean, "?")[0]
}
