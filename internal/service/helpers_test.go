package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-tracker/internal/notify"
	"task-tracker/internal/repository"
)

var fixedNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	store      *repository.Store
	taskRepo   *repository.TaskRepository
	tasks      *TaskService
	history    *HistoryService
	categories *CategoryService
	settings   *SettingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := repository.Open(filepath.Join(t.TempDir(), "tasks.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	clock := func() time.Time { return fixedNow }
	taskRepo := repository.NewTaskRepository(store)
	return &testEnv{
		store:      store,
		taskRepo:   taskRepo,
		tasks:      NewTaskService(taskRepo, NewRecurrenceEngine(clock), clock),
		history:    NewHistoryService(taskRepo, repository.NewHistoryRepository(store)),
		categories: NewCategoryService(repository.NewCategoryRepository(store)),
		settings:   NewSettingService(repository.NewSettingRepository(store)),
	}
}

// recordingSink captures notifications and optionally fails every delivery.
type recordingSink struct {
	mu   sync.Mutex
	got  []notify.Notification
	fail bool
}

func (s *recordingSink) Notify(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	if s.fail {
		return errors.New("sink offline")
	}
	return nil
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) sent() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Notification(nil), s.got...)
}
