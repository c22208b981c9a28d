package calendar

import (
	"fmt"
	"time"
)

// WeekID returns a stable identifier for the ISO-8601 week containing the
// date, formatted as "YYYY-Www". A week belongs to the year containing its
// Thursday, so the identifier stays consistent across month and year
// boundaries: the last days of December and the first days of January can
// share an id, and either may be numbered in the other's year.
func WeekID(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
