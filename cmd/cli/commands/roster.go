package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
	"github.com/emrekaraca/duty-roster/pkg/core/services"
	"github.com/emrekaraca/duty-roster/pkg/store"
)

// RosterCmd creates the roster command group
func RosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect and manually edit confirmed rosters",
	}

	cmd.AddCommand(showRosterCmd(app))
	cmd.AddCommand(addDutyCmd(app))
	cmd.AddCommand(removeDutyCmd(app))

	return cmd
}

func showRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <year> <month>",
		Short: "Show the confirmed roster for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			roster, err := app.Database.GetRoster(app.Ctx, model.RosterMonthID(year, month))
			if err != nil {
				if errors.Is(err, store.ErrRosterNotFound) {
					return fmt.Errorf("no confirmed roster for %s %d", time.Month(month+1), year)
				}
				return err
			}

			teachers, err := app.Database.GetTeachers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch teachers: %w", err)
			}
			names := teacherNames(teachers)

			fmt.Printf("\nConfirmed roster for %s %d (%d duty days)\n\n", time.Month(month+1), year, len(roster.Days))
			for _, day := range roster.Days {
				fmt.Printf("%s:", day.Date)
				if len(day.Duties) == 0 {
					fmt.Print(" (unassigned)")
				}
				for _, duty := range day.Duties {
					fmt.Printf("  %s=%s", duty.Location, nameOf(names, duty.TeacherID))
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}
}

func addDutyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add-duty <date> <location> <teacher_id>",
		Short: "Manually add a duty to a confirmed roster",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, location, teacherID := args[0], model.DutyLocation(args[1]), args[2]

			if err := services.AddDuty(app.Ctx, app.Database, app.Cfg, app.Logger, date, location, teacherID); err != nil {
				return err
			}

			fmt.Printf("\n✓ Duty added: %s at %s on %s\n\n", teacherID, location, date)
			return nil
		},
	}
}

func removeDutyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-duty <date> <teacher_id>",
		Short: "Remove a teacher's duty from a confirmed roster day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, teacherID := args[0], args[1]

			if err := services.RemoveDuty(app.Ctx, app.Database, app.Logger, date, teacherID); err != nil {
				return err
			}

			fmt.Printf("\n✓ Duty removed: %s on %s\n\n", teacherID, date)
			return nil
		},
	}
}
