package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emrekaraca/duty-roster/pkg/core/services"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the application state to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := services.ExportState(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			fmt.Printf("\n✓ State exported to %s\n\n", args[0])
			return nil
		},
	}
}

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the application state from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read import file: %w", err)
			}

			if err := services.ImportState(app.Ctx, app.Database, app.Logger, data); err != nil {
				return err
			}

			fmt.Printf("\n✓ State imported from %s\n\n", args[0])
			return nil
		},
	}
}
