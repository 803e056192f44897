package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/internal/service"
)

func newRemindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the overdue and tomorrow-plan checks once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.Now()
			n, err := app.Reminders.CheckOverdue(ctx, now)
			if err != nil {
				return err
			}
			planned, err := app.Reminders.CheckTomorrowPlan(ctx, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Overdue reminders: %d\n", n)
			if planned {
				fmt.Fprintln(cmd.OutOrStdout(), "Tomorrow has no tasks yet")
			}
			return nil
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder scheduler until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := app.Config

			scheduler := service.NewSchedulerService(cfg.Location, app.Logger)
			if err := app.Reminders.Schedule(scheduler, cfg.ReminderInterval, cfg.PlanInterval); err != nil {
				return err
			}
			if cfg.SnapshotAt != "" {
				if err := app.History.ScheduleDailySnapshot(scheduler, cfg.SnapshotAt, app.Logger); err != nil {
					return err
				}
			}

			scheduler.Start()
			defer scheduler.Stop()
			app.Logger.Info("reminder scheduler started",
				"overdue_every", cfg.ReminderInterval,
				"plan_every", cfg.PlanInterval,
				"snapshot_at", cfg.SnapshotAt,
			)

			<-ctx.Done()

			pending, err := app.Tasks.PendingToday(context.WithoutCancel(ctx), app.Now())
			if err == nil && len(pending) > 0 {
				titles := make([]string, len(pending))
				for i, t := range pending {
					titles[i] = t.Title
				}
				app.Logger.Info("pending tasks left for today", "count", len(pending), "titles", titles)
			}
			app.Logger.Info("scheduler stopped")
			return nil
		},
	}
}

func newPendingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List today's tasks that are still open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pending, err := app.Tasks.PendingToday(cmd.Context(), app.Now())
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), pending)
			return nil
		},
	}
}
