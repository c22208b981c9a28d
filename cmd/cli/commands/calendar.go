package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
)

// CalendarCmd creates the calendar command
func CalendarCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <year> <month>",
		Short: "Show the work-day classification for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			first := calendar.Date(year, time.Month(month+1), 1)
			workDays := 0

			fmt.Printf("\n%s %d\n\n", time.Month(month+1), year)
			for date := first; date.Month() == first.Month(); date = date.AddDate(0, 0, 1) {
				var kind string
				switch {
				case app.Cal.IsWorkDay(date):
					kind = "work day"
					workDays++
				case date.Weekday() == time.Saturday || date.Weekday() == time.Sunday:
					kind = "weekend"
				default:
					kind = "holiday"
				}
				fmt.Printf("%s  %-10s %s\n", date.Format(calendar.DateFormat), date.Weekday(), kind)
			}
			fmt.Printf("\n%d work days\n\n", workDays)

			return nil
		},
	}
}
