package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// HistoryDetails is a history record with the tasks it still refers to.
type HistoryDetails struct {
	Record model.HistoryRecord
	Tasks  []model.Task
}

// HistoryService aggregates daily completion statistics. Aggregation is
// pull-triggered: callers invoke UpdateHistory after viewing or changing a
// date's tasks.
type HistoryService struct {
	taskRepo    *repository.TaskRepository
	historyRepo *repository.HistoryRepository
}

func NewHistoryService(taskRepo *repository.TaskRepository, historyRepo *repository.HistoryRepository) *HistoryService {
	return &HistoryService{taskRepo: taskRepo, historyRepo: historyRepo}
}

// UpdateHistory snapshots the tasks of date. A date without tasks gets no
// record and loses any record left from earlier aggregations; the returned
// record is nil in that case.
func (s *HistoryService) UpdateHistory(ctx context.Context, date string) (*model.HistoryRecord, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}
	date = model.FormatDate(d)

	return s.historyRepo.Refresh(ctx, date, func(tasks []model.Task) *model.HistoryRecord {
		if len(tasks) == 0 {
			return nil
		}
		rec := Aggregate(date, tasks)
		return &rec
	})
}

// Aggregate computes the record for tasks without persisting it.
func Aggregate(date string, tasks []model.Task) model.HistoryRecord {
	ids := make([]uint, len(tasks))
	completed := 0
	for i, task := range tasks {
		ids[i] = task.ID
		if task.IsCompleted() {
			completed++
		}
	}
	var pct float64
	if len(tasks) > 0 {
		pct = float64(completed) / float64(len(tasks)) * 100
	}
	return model.HistoryRecord{
		Date:                 date,
		CompletionPercentage: pct,
		TaskIDs:              model.JoinIDs(ids),
		TotalTasks:           len(tasks),
		CompletedTasks:       completed,
	}
}

// GetHistory returns nil when date was never aggregated.
func (s *HistoryService) GetHistory(ctx context.Context, date string) (*model.HistoryRecord, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.historyRepo.FindByDate(ctx, model.FormatDate(d))
}

func (s *HistoryService) ListHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	return s.historyRepo.List(ctx)
}

// HistoryDetails resolves the record's task ids in recorded order, skipping
// tasks deleted since the snapshot.
func (s *HistoryService) HistoryDetails(ctx context.Context, date string) (*HistoryDetails, error) {
	rec, err := s.GetHistory(ctx, date)
	if err != nil || rec == nil {
		return nil, err
	}
	ids := rec.IDs()
	tasks, err := s.taskRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}
	details := &HistoryDetails{Record: *rec}
	for _, id := range ids {
		if task, ok := byID[id]; ok {
			details.Tasks = append(details.Tasks, task)
		}
	}
	return details, nil
}

// ScheduleDailySnapshot aggregates the scheduler's current date every day at
// at (HH:MM), so days nobody looked at still end up with a record.
func (s *HistoryService) ScheduleDailySnapshot(sched *SchedulerService, at string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	_, err := sched.ScheduleDaily(at, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		date := model.FormatDate(sched.Now())
		if _, err := s.UpdateHistory(ctx, date); err != nil {
			logger.Error("history snapshot failed", "date", date, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule history snapshot: %w", err)
	}
	return nil
}
