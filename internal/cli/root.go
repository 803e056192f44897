// Package cli exposes the task store, history aggregation, reminders and
// backup/restore as cobra commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"task-tracker/internal/model"
)

// NewRootCmd builds the command tree over app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Track dated and recurring tasks",
		Long:          `Track dated and recurring tasks, daily completion history and due-task reminders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newAllCmd(app),
		newStatusCmd(app, "done", "Mark a task completed", model.StatusCompleted),
		newStatusCmd(app, "undo", "Mark a task pending again", model.StatusPending),
		newEditCmd(app),
		newDeleteCmd(app),
		newSearchCmd(app),
		newHistoryCmd(app),
		newCategoryCmd(app),
		newSettingCmd(app),
		newBackupCmd(app),
		newRestoreCmd(app),
		newPendingCmd(app),
		newRemindCmd(app),
		newServeCmd(app),
	)
	return root
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTask(t))
	}
}

func formatTask(t model.Task) string {
	check := " "
	if t.IsCompleted() {
		check = "x"
	}
	clock := t.Time
	if clock == "" {
		clock = "-"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d [%s] %s %s (%s) - %s", t.ID, check, t.Date, t.Title, clock, t.Priority)
	if t.Category != "" {
		fmt.Fprintf(&sb, " <%s>", t.Category)
	}
	if t.IsRecurring {
		fmt.Fprintf(&sb, " ♻ %s", t.RecurringType)
	}
	return sb.String()
}
