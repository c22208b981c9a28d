package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/emrekaraca/duty-roster/pkg/core/services"
)

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show per-teacher duty totals across confirmed rosters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, rosters, err := services.Summary(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(rosters) == 0 {
				fmt.Println("\nNo confirmed rosters yet.")
				return nil
			}

			locations := app.Cfg.LocationList()

			fmt.Printf("\n%-24s", "Teacher")
			for _, roster := range rosters {
				fmt.Printf("  %-8s", fmt.Sprintf("%s %d", time.Month(roster.Month+1).String()[:3], roster.Year))
			}
			locationNames := make([]string, len(locations))
			for i, loc := range locations {
				locationNames[i] = string(loc)
			}
			fmt.Printf("  Total (%s)\n", strings.Join(locationNames, " / "))

			for _, row := range rows {
				fmt.Printf("%-24s", row.Name)
				for _, roster := range rosters {
					fmt.Printf("  %-8d", row.ByMonth[roster.ID])
				}

				split := make([]string, len(locations))
				for i, loc := range locations {
					split[i] = fmt.Sprintf("%d", row.ByLocation[loc])
				}
				fmt.Printf("  %d (%s)\n", row.Total, strings.Join(split, " / "))
			}
			fmt.Println()

			return nil
		},
	}
}
