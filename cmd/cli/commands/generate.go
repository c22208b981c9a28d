package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <year> <month>",
		Short: "Generate a duty roster for a month",
		Long: `Generate a duty roster for the given month (1-12), balancing duty counts
across teachers using the confirmed history. Without --save this is a dry
run: the plan is printed but not confirmed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			save, _ := cmd.Flags().GetBool("save")
			skip, _ := cmd.Flags().GetStringSlice("skip")
			forceDuty, _ := cmd.Flags().GetStringSlice("force-duty")

			overrides := make(map[string]bool, len(skip)+len(forceDuty))
			for _, date := range skip {
				overrides[date] = false
			}
			for _, date := range forceDuty {
				overrides[date] = true
			}

			params := services.GenerateRosterParams{
				Year:      year,
				Month:     month,
				Overrides: overrides,
				Save:      save,
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				params.Seed = &seed
			}

			app.Logger.Debug("generate command",
				zap.Int("year", year),
				zap.Int("month", month),
				zap.Bool("save", save))

			result, err := services.GenerateRoster(app.Ctx, app.Database, app.Cal, app.Cfg, app.Logger, params)
			if err != nil {
				return err
			}

			names := teacherNames(result.Teachers)
			locations := app.Cfg.LocationList()

			monthName := time.Month(month + 1).String()
			fmt.Printf("\nDuty roster for %s %d (%d duty days)\n\n", monthName, year, len(result.Roster.Days))

			fmt.Printf("%-12s  %-10s", "Date", "Day")
			for _, loc := range locations {
				fmt.Printf("  %-20s", string(loc))
			}
			fmt.Println()

			for _, day := range result.Roster.Days {
				date, err := calendar.ParseDate(day.Date)
				if err != nil {
					return fmt.Errorf("malformed roster date %q: %w", day.Date, err)
				}
				fmt.Printf("%-12s  %-10s", day.Date, date.Weekday().String())
				for _, loc := range locations {
					assignee := "—"
					for _, duty := range day.Duties {
						if duty.Location == loc {
							assignee = nameOf(names, duty.TeacherID)
							break
						}
					}
					fmt.Printf("  %-20s", assignee)
				}
				fmt.Println()
			}
			fmt.Println()

			if result.Saved {
				fmt.Println("✓ Roster confirmed and saved.")
			} else {
				fmt.Println("This was a dry run. Use --save to confirm the roster.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Confirm the generated roster into state")
	cmd.Flags().StringSlice("skip", nil, "Dates (YYYY-MM-DD) forced to be non-duty days")
	cmd.Flags().StringSlice("force-duty", nil, "Dates (YYYY-MM-DD) forced to be duty days")
	cmd.Flags().Int64("seed", 0, "Seed for the random tie-break")

	return cmd
}
