package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Read and write settings (notifications, language, theme, ...)",
	}

	var def string
	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Settings.Get(cmd.Context(), args[0], def)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	get.Flags().StringVar(&def, "default", "", "value printed when the key is unset")

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Settings.Save(cmd.Context(), args[0], args[1])
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
