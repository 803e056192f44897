package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <path>",
		Short: "Copy the database file to path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Backup(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database backed up successfully!")
			return nil
		},
	}
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <path>",
		Short: "Replace the database with the backup at path",
		Long: `Replace the database with the backup at path. The current database is
kept next to it as <db>.pre-restore.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Restore(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database restored successfully!")
			return nil
		},
	}
}
