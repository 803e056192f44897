package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker/internal/model"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history [date]",
		Short: "Show completion history, or the details of one date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				recs, err := app.History.ListHistory(ctx)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					fmt.Fprintln(out, "No history yet")
				}
				for _, rec := range recs {
					fmt.Fprintf(out, "%s  %s\n", rec.Date, rec.Summary())
				}
				return nil
			}

			details, err := app.History.HistoryDetails(ctx, args[0])
			if err != nil {
				return err
			}
			if details == nil {
				fmt.Fprintln(out, "No tasks for this date")
				return nil
			}
			fmt.Fprintln(out, details.Record.Summary())
			for _, t := range details.Tasks {
				clock := t.Time
				if clock == "" {
					clock = "-"
				}
				fmt.Fprintf(out, "  %s (%s) - %s - %s\n", t.Title, clock, t.Priority, statusLabel(t.Status))
			}
			return nil
		},
	}
}

func statusLabel(s model.Status) string {
	if s == model.StatusCompleted {
		return "completed"
	}
	return "pending"
}
