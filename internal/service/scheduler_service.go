package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"task-tracker/internal/model"
)

// SchedulerService wraps cron-based jobs. Each registered job is an
// independent entry with its own schedule. A tick that fires while the same
// entry is still running is skipped, and a panicking job is recovered and
// logged without stopping the others.
type SchedulerService struct {
	cron *cron.Cron
	loc  *time.Location
}

func NewSchedulerService(loc *time.Location, logger *slog.Logger) *SchedulerService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	cl := cronLogger{logger: logger.With("component", "scheduler")}
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		loc: loc,
	}
}

// Now is the current time in the scheduler's location.
func (s *SchedulerService) Now() time.Time {
	return time.Now().In(s.loc)
}

// ScheduleDaily registers a daily job at the given HH:MM time string.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to return.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Entries reports how many jobs are registered.
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

// ScheduleInterval registers job to run every interval, rounded to whole
// seconds with a one second floor.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, &model.ValidationError{Field: "interval", Reason: fmt.Sprintf("%s is not positive", interval)}
	}
	seconds := int64(interval.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return s.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

// buildDailySpec turns HH:MM into a six-field cron spec (seconds first).
func buildDailySpec(at string) (string, error) {
	clock, err := model.NormalizeTime(at)
	if err != nil {
		return "", err
	}
	if clock == "" || strings.Count(at, ":") != 1 {
		return "", &model.ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not HH:MM", at)}
	}
	t, _ := time.Parse(model.TimeLayout, clock)
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour()), nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
