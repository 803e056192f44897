package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"task-tracker/internal/config"
	"task-tracker/internal/notify"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

// App holds the wired services the commands call into.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Store      *repository.Store
	Tasks      *service.TaskService
	History    *service.HistoryService
	Categories *service.CategoryService
	Settings   *service.SettingService
	Reminders  *service.ReminderService

	now     func() time.Time
	closers []func() error
}

// NewApp opens the store and wires every service. With a nil sink the sink
// chain is built from cfg.
func NewApp(ctx context.Context, cfg config.Config, logger *slog.Logger, sink notify.Sink) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	store, err := repository.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		now:     time.Now,
		closers: []func() error{store.Close},
	}

	if sink == nil {
		sink = app.buildSink(cfg)
	}

	clock := func() time.Time { return app.now().In(cfg.Location) }

	taskRepo := repository.NewTaskRepository(store)
	historyRepo := repository.NewHistoryRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)
	settingRepo := repository.NewSettingRepository(store)

	app.Tasks = service.NewTaskService(taskRepo, service.NewRecurrenceEngine(clock), clock)
	app.History = service.NewHistoryService(taskRepo, historyRepo)
	app.Categories = service.NewCategoryService(categoryRepo)
	app.Settings = service.NewSettingService(settingRepo)
	app.Reminders = service.NewReminderService(taskRepo, app.Settings, sink, logger, service.ReminderOptions{
		AppName: cfg.NotifyAppName,
		Timeout: cfg.NotifyTimeout,
	})

	if err := app.Categories.EnsureDefaults(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("default categories: %w", err)
	}
	return app, nil
}

// SetClock replaces the wall clock, for tests.
func (a *App) SetClock(now func() time.Time) { a.now = now }

// Now is the current time in the configured location.
func (a *App) Now() time.Time { return a.now().In(a.Config.Location) }

// Close releases the store and any sink connections, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// buildSink always includes the log sink. Telegram and NATS are optional:
// one that cannot be set up is logged and left out, so store commands keep
// working while a sink is down.
func (a *App) buildSink(cfg config.Config) notify.Sink {
	sinks := notify.Multi{notify.NewLogSink(a.Logger)}
	breakerCfg := notify.BreakerConfig{FailureThreshold: cfg.BreakerFailures, Cooldown: cfg.BreakerCooldown}

	if cfg.TelegramToken != "" {
		tg, err := newTelegramSink(cfg.TelegramToken, cfg.TelegramChatID, a.Logger)
		if err != nil {
			a.Logger.Warn("telegram sink disabled", "error", err)
		} else {
			sinks = append(sinks, notify.NewBreakerSink(tg, breakerCfg, a.Logger))
		}
	}

	if cfg.NATSURL != "" {
		nc, err := notify.ConnectNATS(cfg.NATSURL, a.Logger)
		if err != nil {
			a.Logger.Warn("nats sink disabled", "url", cfg.NATSURL, "error", err)
		} else {
			a.closers = append(a.closers, func() error { nc.Close(); return nil })
			a.Logger.Info("nats sink enabled", "url", cfg.NATSURL, "subject", cfg.NATSSubject, "status", nc.Status().String())
			sinks = append(sinks, notify.NewBreakerSink(notify.NewNATSSink(nc, cfg.NATSSubject, a.Logger), breakerCfg, a.Logger))
		}
	}

	return sinks
}

// newTelegramSink is swapped in tests to avoid the network.
var newTelegramSink = func(token string, chatID int64, logger *slog.Logger) (notify.Sink, error) {
	tg, err := notify.NewTelegramSink(token, chatID, logger)
	if err != nil {
		return nil, err
	}
	return tg, nil
}
