package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// Store owns the single gorm handle over the task database. Reads may run
// concurrently; writes, backup and restore hold the handle exclusively.
type Store struct {
	path   string
	logger *slog.Logger

	mu sync.RWMutex
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite file at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		path = "tasks.db"
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := NewDB(path, logger)
	if err != nil {
		return nil, model.Storage("open store", err)
	}
	return &Store{path: sqlitePath(path), logger: logger, db: db}, nil
}

// Path is the live database file.
func (s *Store) Path() string { return s.path }

// Close releases the handle. Calling it twice is harmless.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Store) closeLocked() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return model.Storage("close store", err)
	}
	return model.Storage("close store", sqlDB.Close())
}

func (s *Store) read(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return &model.StorageError{Op: op, Err: model.ErrStoreUnavailable}
	}
	return storageErr(op, fn(s.db.WithContext(ctx)))
}

func (s *Store) write(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return &model.StorageError{Op: op, Err: model.ErrStoreUnavailable}
	}
	return storageErr(op, fn(s.db.WithContext(ctx)))
}

func storageErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return model.Storage(op, err)
}

// reopenLocked opens the live file again and verifies its integrity.
func (s *Store) reopenLocked() error {
	db, err := NewDB(s.path, s.logger)
	if err != nil {
		return err
	}
	var result string
	if err := db.Raw("PRAGMA integrity_check").Row().Scan(&result); err != nil {
		closeDB(db)
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		closeDB(db)
		return fmt.Errorf("integrity check: %s", result)
	}
	s.db = db
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
