// Package calendar classifies calendar days as duty days or not, based on a
// static academic calendar: a set of holiday dates plus inclusive date ranges
// during which no instruction takes place. All dates are handled as
// timezone-naive calendar days (UTC midnight), never as timestamps.
package calendar

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-day string format used throughout the roster.
const DateFormat = "2006-01-02"

// Period is an inclusive date range with no instruction (recess, term break).
type Period struct {
	Start time.Time
	End   time.Time
}

// Calendar holds the static exclusion data the classifier runs against.
type Calendar struct {
	holidays map[string]struct{}
	periods  []Period
}

// New builds a Calendar from holiday date strings (YYYY-MM-DD) and inclusive
// start/end date string pairs.
func New(holidays []string, periods [][2]string) (*Calendar, error) {
	c := &Calendar{
		holidays: make(map[string]struct{}, len(holidays)),
	}

	for _, h := range holidays {
		if _, err := ParseDate(h); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h, err)
		}
		c.holidays[h] = struct{}{}
	}

	for _, p := range periods {
		start, err := ParseDate(p[0])
		if err != nil {
			return nil, fmt.Errorf("invalid period start %q: %w", p[0], err)
		}
		end, err := ParseDate(p[1])
		if err != nil {
			return nil, fmt.Errorf("invalid period end %q: %w", p[1], err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("period end %s before start %s", p[1], p[0])
		}
		c.periods = append(c.periods, Period{Start: start, End: end})
	}

	return c, nil
}

// IsHoliday reports whether the date is excluded by the academic calendar,
// either as a listed holiday or by falling inside a recess period. Weekends
// are not considered here.
func (c *Calendar) IsHoliday(date time.Time) bool {
	if _, ok := c.holidays[date.Format(DateFormat)]; ok {
		return true
	}

	day := Midnight(date)
	for _, p := range c.periods {
		// Inclusive on both ends
		if !day.Before(p.Start) && !day.After(p.End) {
			return true
		}
	}
	return false
}

// IsWorkDay reports whether duties are assigned on the date: weekdays that
// are not excluded by the academic calendar.
func (c *Calendar) IsWorkDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(date)
}

// ParseDate parses a YYYY-MM-DD calendar-day string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// Date returns the UTC midnight time for a calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight strips any time-of-day component, keeping only the calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
