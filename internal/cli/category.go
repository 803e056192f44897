package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	var color string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category or change its color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Categories.AddCategory(cmd.Context(), args[0], color); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category saved: %s\n", args[0])
			return nil
		},
	}
	add.Flags().StringVar(&color, "color", "", "display color, e.g. #FF6B6B")

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Name, c.Color)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category; tasks keep their category text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Categories.Remove(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}
