package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"task-tracker/internal/model"
)

var sqliteHeader = []byte("SQLite format 3\x00")

// Backup copies the live database file byte for byte to dst. Writers are
// held off for the duration of the copy.
func (s *Store) Backup(ctx context.Context, dst string) error {
	if dst == "" {
		return &model.ValidationError{Field: "path", Reason: "backup path is empty"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return &model.StorageError{Op: "backup", Err: model.ErrStoreUnavailable}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := copyFileAtomic(s.path, dst); err != nil {
		return &model.StorageError{Op: "backup", Err: err}
	}
	s.logger.InfoContext(ctx, "database backed up", "path", dst)
	return nil
}

// Restore replaces the live database with the file at src. The current file
// is first kept as <db>.pre-restore; if the restored copy cannot be opened the
// snapshot is put back. When neither opens, every later call reports
// model.ErrStoreUnavailable.
func (s *Store) Restore(ctx context.Context, src string) error {
	if src == "" {
		return &model.ValidationError{Field: "path", Reason: "restore path is empty"}
	}
	if err := checkSQLiteFile(src); err != nil {
		return &model.StorageError{Op: "restore", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.path + ".pre-restore"
	hasSnapshot := false
	if _, err := os.Stat(s.path); err == nil {
		if err := copyFileAtomic(s.path, snapshot); err != nil {
			return &model.StorageError{Op: "restore: snapshot current store", Err: err}
		}
		hasSnapshot = true
	}

	if err := s.closeLocked(); err != nil {
		s.logger.WarnContext(ctx, "close before restore", "error", err)
	}
	removeSidecars(s.path)

	if err := copyFileAtomic(src, s.path); err != nil {
		restoreErr := &model.StorageError{Op: "restore", Err: err}
		if reopenErr := s.reopenLocked(); reopenErr != nil {
			return errors.Join(restoreErr, &model.StorageError{Op: "reopen store", Err: model.ErrStoreUnavailable})
		}
		return restoreErr
	}

	err := s.reopenLocked()
	if err == nil {
		s.logger.InfoContext(ctx, "database restored", "path", src, "snapshot", snapshot)
		return nil
	}

	restoreErr := &model.StorageError{Op: "restore: open restored file", Err: err}
	if !hasSnapshot {
		return errors.Join(restoreErr, &model.StorageError{Op: "reopen store", Err: model.ErrStoreUnavailable})
	}
	s.logger.WarnContext(ctx, "restored file unusable, rolling back", "error", err)
	removeSidecars(s.path)
	if err := copyFileAtomic(snapshot, s.path); err != nil {
		return errors.Join(restoreErr, &model.StorageError{Op: "rollback", Err: err}, model.ErrStoreUnavailable)
	}
	if err := s.reopenLocked(); err != nil {
		return errors.Join(restoreErr, &model.StorageError{Op: "rollback", Err: err}, model.ErrStoreUnavailable)
	}
	return restoreErr
}

func checkSQLiteFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil {
		return fmt.Errorf("%s is not a SQLite database: %w", path, err)
	}
	if !bytes.Equal(head, sqliteHeader) {
		return fmt.Errorf("%s is not a SQLite database", path)
	}
	return nil
}

// copyFileAtomic writes src into a temp file beside dst and renames it over dst.
func copyFileAtomic(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

// removeSidecars drops journal files that belong to the file being replaced.
func removeSidecars(path string) {
	for _, suffix := range []string{"-journal", "-wal", "-shm"} {
		_ = os.Remove(path + suffix)
	}
}
