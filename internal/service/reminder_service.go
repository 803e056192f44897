package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/notify"
	"task-tracker/internal/repository"
)

const (
	overdueTitle  = "Task Reminder"
	planTitle     = "Plan Tomorrow"
	planMessage   = "You haven't planned tasks for tomorrow!"
	defaultApp    = "Task Manager"
	defaultIcon   = "icon.ico"
	defaultNotify = 10 * time.Second
)

// ReminderOptions shapes the notifications the checks emit.
type ReminderOptions struct {
	AppName string
	Icon    string
	Timeout time.Duration
}

// ReminderService runs the overdue and next-day planning checks. Both are
// read-only against the store and gated by the notifications setting, which
// is read on every call.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	settings *SettingService
	sink     notify.Sink
	logger   *slog.Logger
	opts     ReminderOptions
}

func NewReminderService(taskRepo *repository.TaskRepository, settings *SettingService, sink notify.Sink, logger *slog.Logger, opts ReminderOptions) *ReminderService {
	if opts.AppName == "" {
		opts.AppName = defaultApp
	}
	if opts.Icon == "" {
		opts.Icon = defaultIcon
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultNotify
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderService{
		taskRepo: taskRepo,
		settings: settings,
		sink:     sink,
		logger:   logger.With("component", "reminders"),
		opts:     opts,
	}
}

// CheckOverdue notifies once for every pending task of now's date whose
// time is at or before now. An overdue task is notified again on every call
// until it is completed. It returns the number of notifications emitted.
func (s *ReminderService) CheckOverdue(ctx context.Context, now time.Time) (int, error) {
	enabled, err := s.settings.NotificationsEnabled(ctx)
	if err != nil || !enabled {
		return 0, err
	}

	tasks, err := s.taskRepo.ListByDate(ctx, model.FormatDate(now))
	if err != nil {
		return 0, err
	}
	current := now.Format(model.TimeLayout)

	sent := 0
	for _, task := range tasks {
		if !isOverdue(task, current) {
			continue
		}
		s.emit(ctx, notify.Notification{
			Title:   overdueTitle,
			Message: fmt.Sprintf("Task: %s is overdue!", task.Title),
		})
		sent++
	}
	return sent, nil
}

// CheckTomorrowPlan notifies when the day after now has no tasks at all.
func (s *ReminderService) CheckTomorrowPlan(ctx context.Context, now time.Time) (bool, error) {
	enabled, err := s.settings.NotificationsEnabled(ctx)
	if err != nil || !enabled {
		return false, err
	}

	tomorrow := model.FormatDate(now.AddDate(0, 0, 1))
	tasks, err := s.taskRepo.ListByDate(ctx, tomorrow)
	if err != nil {
		return false, err
	}
	if len(tasks) > 0 {
		return false, nil
	}
	s.emit(ctx, notify.Notification{Title: planTitle, Message: planMessage})
	return true, nil
}

func isOverdue(task model.Task, current string) bool {
	if task.Status != model.StatusPending || task.Time == "" {
		return false
	}
	at, err := model.NormalizeTime(task.Time)
	if err != nil {
		return false
	}
	return at <= current
}

// emit is fire-and-forget: a failed delivery is logged and dropped.
func (s *ReminderService) emit(ctx context.Context, n notify.Notification) {
	n.AppName = s.opts.AppName
	n.Icon = s.opts.Icon
	n.Timeout = s.opts.Timeout
	if err := s.sink.Notify(ctx, n); err != nil {
		derr := &model.NotificationDeliveryError{Sink: s.sink.Name(), Err: err}
		s.logger.WarnContext(ctx, "notification dropped", "title", n.Title, "error", derr)
	}
}

// Schedule registers both checks on sched as independent entries, so the
// overdue period and the planning period never influence each other.
// Check errors are logged; the next tick still fires.
func (s *ReminderService) Schedule(sched *SchedulerService, overdueEvery, planEvery time.Duration) error {
	if _, err := sched.ScheduleInterval(overdueEvery, func() {
		s.runTick("overdue", sched.Now(), func(ctx context.Context, now time.Time) error {
			n, err := s.CheckOverdue(ctx, now)
			if n > 0 {
				s.logger.Info("overdue reminders sent", "count", n)
			}
			return err
		})
	}); err != nil {
		return fmt.Errorf("schedule overdue check: %w", err)
	}
	if _, err := sched.ScheduleInterval(planEvery, func() {
		s.runTick("plan", sched.Now(), func(ctx context.Context, now time.Time) error {
			_, err := s.CheckTomorrowPlan(ctx, now)
			return err
		})
	}); err != nil {
		return fmt.Errorf("schedule plan check: %w", err)
	}
	return nil
}

func (s *ReminderService) runTick(name string, now time.Time, check func(ctx context.Context, now time.Time) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := check(ctx, now); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("reminder check failed", "check", name, "error", err)
	}
}
