package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

func newAddCmd(app *App) *cobra.Command {
	var input service.TaskInput
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Long: `Add a task for a date. Recurring tasks are stored with every occurrence
for the next nine years.

Examples:
  tasktracker add "Pay rent" --date 2025-01-01 --recurring monthly
  tasktracker add "Standup" --time 09:30 --priority high --category Work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Title = args[0]
			if input.Date == "" {
				input.Date = model.FormatDate(app.Now())
			}
			input.IsRecurring = input.RecurringType != ""

			ctx := cmd.Context()
			task, err := app.Tasks.AddTask(ctx, input)
			if err != nil {
				return fmt.Errorf("add task: %w", err)
			}
			if _, err := app.History.UpdateHistory(ctx, task.Date); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Task created: %d\n", task.ID)
			if task.IsRecurring {
				n, err := app.Tasks.SeriesSize(ctx, task.SeriesID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s series: %d occurrences\n", task.RecurringType, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Date, "date", "", "date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&input.Time, "time", "", "time of day (HH:MM)")
	cmd.Flags().StringVarP(&input.Priority, "priority", "p", "", "priority (low, medium, high)")
	cmd.Flags().StringVarP(&input.Category, "category", "c", "", "category name")
	cmd.Flags().StringVar(&input.Description, "description", "", "task description")
	cmd.Flags().StringVar(&input.Notes, "notes", "", "additional notes")
	cmd.Flags().StringVar(&input.AttachmentPath, "attachment", "", "attachment path")
	cmd.Flags().StringVarP(&input.RecurringType, "recurring", "r", "", "repeat daily, weekly, monthly or yearly")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [date]",
		Short: "List the tasks of a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := model.FormatDate(app.Now())
			if len(args) == 1 {
				date = args[0]
			}
			ctx := cmd.Context()
			tasks, err := app.Tasks.GetTasks(ctx, date)
			if err != nil {
				return err
			}
			rec, err := app.History.UpdateHistory(ctx, date)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			if rec != nil {
				fmt.Fprintln(cmd.OutOrStdout(), rec.Summary())
			}
			return nil
		},
	}
}

func newAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "List every task by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.GetAllTasks(cmd.Context())
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
}

func newStatusCmd(app *App, use, short string, status model.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Tasks.UpdateTaskStatus(ctx, id, status); err != nil {
				return err
			}
			task, err := app.Tasks.GetTask(ctx, id)
			if err != nil {
				return err
			}
			if _, err := app.History.UpdateHistory(ctx, task.Date); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(*task))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var edit service.TaskEdit
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the fields of one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			task, err := app.Tasks.GetTask(ctx, id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			merged := service.TaskEdit{
				Title:          pick(flags.Changed("title"), edit.Title, task.Title),
				Description:    pick(flags.Changed("description"), edit.Description, task.Description),
				Time:           pick(flags.Changed("time"), edit.Time, task.Time),
				Priority:       pick(flags.Changed("priority"), edit.Priority, string(task.Priority)),
				Category:       pick(flags.Changed("category"), edit.Category, task.Category),
				Notes:          pick(flags.Changed("notes"), edit.Notes, task.Notes),
				AttachmentPath: pick(flags.Changed("attachment"), edit.AttachmentPath, task.AttachmentPath),
			}
			if err := app.Tasks.UpdateTask(ctx, id, merged); err != nil {
				return err
			}
			updated, err := app.Tasks.GetTask(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatTask(*updated))
			return nil
		},
	}
	cmd.Flags().StringVar(&edit.Title, "title", "", "new title")
	cmd.Flags().StringVar(&edit.Description, "description", "", "new description")
	cmd.Flags().StringVar(&edit.Time, "time", "", "new time (HH:MM, empty clears)")
	cmd.Flags().StringVarP(&edit.Priority, "priority", "p", "", "new priority")
	cmd.Flags().StringVarP(&edit.Category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&edit.Notes, "notes", "", "new notes")
	cmd.Flags().StringVar(&edit.AttachmentPath, "attachment", "", "new attachment path")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var future bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task, or with --future the rest of its series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			task, err := app.Tasks.GetTask(ctx, id)
			if err != nil {
				return err
			}
			n, err := app.Tasks.DeleteTask(ctx, id, future)
			if err != nil {
				return err
			}
			if _, err := app.History.UpdateHistory(ctx, task.Date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&future, "future", false, "also delete every later occurrence of a recurring task")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.SearchTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &model.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a task id", raw)}
	}
	return uint(id), nil
}

func pick(changed bool, flagValue, current string) string {
	if changed {
		return flagValue
	}
	return current
}
