// Package scheduler implements the monthly duty assignment engine: a greedy
// day-by-day scheduler that fills each duty location from the eligible pool
// under fairness ordering, carrying workload history across months. The
// engine is pure: all counters live for a single Generate call and it never
// returns an error — when the eligible pool runs dry it simply assigns fewer
// locations.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// Options tunes a Generate run.
type Options struct {
	// Locations is the ordered duty location set; the order defines
	// assignment priority within a day. Defaults to model.DefaultLocations.
	Locations []model.DutyLocation

	// Deterministic replaces the final random tie-break with a stable
	// ordering by teacher ID, making output reproducible.
	Deterministic bool

	// Rand is the source for the fairness coin flip among equally ranked
	// candidates. A time-seeded source is used when nil. Ignored when
	// Deterministic is set.
	Rand *rand.Rand
}

// Generate computes the duty plan for one month. The month is zero-based
// (January = 0). History contributes per-teacher running totals; overrides
// map calendar-day strings to a forced duty-day determination, taking
// precedence over the classifier. The returned roster contains one entry per
// duty day in ascending date order; non-duty days are omitted.
func Generate(
	year, month int,
	teachers []model.Teacher,
	history []model.RosterMonth,
	overrides map[string]bool,
	cal *calendar.Calendar,
	opts Options,
) model.RosterMonth {
	locations := opts.Locations
	if len(locations) == 0 {
		locations = model.DefaultLocations()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	st := newRunState(teachers, history)
	out := model.NewRosterMonth(year, month)

	first := calendar.Date(year, time.Month(month+1), 1)
	for date := first; date.Month() == first.Month(); date = date.AddDate(0, 0, 1) {
		dateStr := date.Format(calendar.DateFormat)

		dutyDay := cal.IsWorkDay(date)
		if forced, ok := overrides[dateStr]; ok {
			dutyDay = forced
		}
		if !dutyDay {
			continue
		}

		// Weekly location memory must not leak across ISO week boundaries.
		if weekID := calendar.WeekID(date); weekID != st.weekID {
			st.weekID = weekID
			clear(st.weekFirstLocation)
		}

		dayOfMonth := date.Day()
		weekday := date.Weekday()

		eligible := make([]model.Teacher, 0, len(teachers))
		for _, t := range teachers {
			if !t.IsAvailableOn(weekday) {
				continue
			}
			// No back-to-back duties. Compared by day of month, so the
			// first of the month is never penalized by the prior month.
			if last, ok := st.lastDutyDay[t.ID]; ok && last == dayOfMonth-1 {
				continue
			}
			eligible = append(eligible, t)
		}

		day := model.RosterDay{Date: dateStr, Duties: []model.Duty{}}
		assigned := make(map[string]bool, len(locations))

		for _, loc := range locations {
			candidates := make([]model.Teacher, 0, len(eligible))
			for _, t := range eligible {
				if !assigned[t.ID] {
					candidates = append(candidates, t)
				}
			}
			if len(candidates) == 0 {
				continue
			}

			chosen := st.pick(candidates, loc, locations[0], opts.Deterministic, rng)

			day.Duties = append(day.Duties, model.Duty{TeacherID: chosen.ID, Location: loc})
			assigned[chosen.ID] = true
			st.recordDuty(chosen.ID, loc, dayOfMonth)
		}

		out.Days = append(out.Days, day)
	}

	return out
}
