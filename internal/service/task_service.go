package service

import (
	"context"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title          string
	Description    string
	Date           string
	Time           string
	Priority       string
	Category       string
	IsRecurring    bool
	RecurringType  string
	Notes          string
	AttachmentPath string
}

// TaskEdit carries the fields an existing task may change. Date, status and
// recurrence are fixed once a row exists.
type TaskEdit struct {
	Title          string
	Description    string
	Time           string
	Priority       string
	Category       string
	Notes          string
	AttachmentPath string
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo *repository.TaskRepository
	engine   *RecurrenceEngine
	now      func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository, engine *RecurrenceEngine, clock func() time.Time) *TaskService {
	if clock == nil {
		clock = time.Now
	}
	if engine == nil {
		engine = NewRecurrenceEngine(clock)
	}
	return &TaskService{taskRepo: taskRepo, engine: engine, now: clock}
}

// AddTask stores a pending task. A recurring task is stored together with
// every occurrence up to the horizon before AddTask returns.
func (s *TaskService) AddTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, &model.ValidationError{Field: "title", Reason: "title is required"}
	}
	date, err := model.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	clock, err := model.NormalizeTime(input.Time)
	if err != nil {
		return nil, err
	}
	priority, err := model.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := model.Task{
		Title:          title,
		Description:    input.Description,
		Date:           model.FormatDate(date),
		Time:           clock,
		Priority:       priority,
		Category:       strings.TrimSpace(input.Category),
		IsRecurring:    input.IsRecurring,
		Status:         model.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
		Notes:          input.Notes,
		AttachmentPath: input.AttachmentPath,
	}

	var occurrences []model.Task
	if input.IsRecurring {
		rt, err := model.ParseRecurringType(input.RecurringType)
		if err != nil {
			return nil, err
		}
		if rt == model.RecurNone {
			rt = model.RecurDaily
		}
		task.RecurringType = rt
		task.SeriesID = s.engine.NewSeriesID()
		occurrences, err = s.engine.Expand(task)
		if err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Create(ctx, &task, occurrences); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks returns the tasks of date in insertion order.
func (s *TaskService) GetTasks(ctx context.Context, date string) ([]model.Task, error) {
	d, err := model.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListByDate(ctx, model.FormatDate(d))
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListAll(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, taskID)
}

// SeriesSize counts every row of a series, the anchor included.
func (s *TaskService) SeriesSize(ctx context.Context, seriesID string) (int64, error) {
	return s.taskRepo.CountSeries(ctx, seriesID)
}

// UpdateTaskStatus fails with a NotFoundError when taskID does not exist.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID uint, status model.Status) error {
	parsed, err := model.ParseStatus(string(status))
	if err != nil {
		return err
	}
	return s.taskRepo.UpdateStatus(ctx, taskID, parsed, s.now())
}

// UpdateTask rewrites the editable fields of a single row.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, edit TaskEdit) error {
	title := strings.TrimSpace(edit.Title)
	if title == "" {
		return &model.ValidationError{Field: "title", Reason: "title is required"}
	}
	clock, err := model.NormalizeTime(edit.Time)
	if err != nil {
		return err
	}
	priority, err := model.ParsePriority(edit.Priority)
	if err != nil {
		return err
	}
	return s.taskRepo.UpdateFields(ctx, taskID, map[string]any{
		"title":           title,
		"description":     edit.Description,
		"time":            clock,
		"priority":        priority,
		"category":        strings.TrimSpace(edit.Category),
		"notes":           edit.Notes,
		"attachment_path": edit.AttachmentPath,
	}, s.now())
}

// DeleteTask removes one row, or with allFuture on a recurring row every
// occurrence of its series from its date onwards. It returns the row count.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint, allFuture bool) (int64, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if allFuture && task.IsRecurring {
		return s.taskRepo.DeleteSeriesFrom(ctx, *task)
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// SearchTasks matches query against title or description.
func (s *TaskService) SearchTasks(ctx context.Context, query string) ([]model.Task, error) {
	return s.taskRepo.Search(ctx, query)
}

// PendingToday lists today's tasks that are still open.
func (s *TaskService) PendingToday(ctx context.Context, now time.Time) ([]model.Task, error) {
	tasks, err := s.taskRepo.ListByDate(ctx, model.FormatDate(now))
	if err != nil {
		return nil, err
	}
	pending := tasks[:0]
	for _, task := range tasks {
		if task.Status == model.StatusPending {
			pending = append(pending, task)
		}
	}
	return pending, nil
}
