package model

import (
	"fmt"
	"time"
)

// DutyLocation identifies one of the fixed supervision posts that needs a
// daily assignee. The configured order of locations defines assignment
// priority within a day.
type DutyLocation string

const (
	LocationFloor  DutyLocation = "Floor"
	LocationGarden DutyLocation = "Garden"
)

// DefaultLocations returns the built-in location set in priority order.
func DefaultLocations() []DutyLocation {
	return []DutyLocation{LocationFloor, LocationGarden}
}

// Teacher represents a staff member eligible for duty assignments
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// AvailableDays lists the weekdays on which the teacher can take a duty
	// (time.Weekday numbering, Sunday = 0)
	AvailableDays []time.Weekday `json:"availableDays"`
}

// IsAvailableOn reports whether the teacher can take a duty on the given weekday.
func (t Teacher) IsAvailableOn(day time.Weekday) bool {
	for _, d := range t.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

// Duty is one teacher covering one location on one day
type Duty struct {
	TeacherID string       `json:"teacherId"`
	Location  DutyLocation `json:"location"`
}

// RosterDay holds the duties assigned for a single calendar day.
// Within a day, locations are distinct and teachers are distinct.
type RosterDay struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Duties []Duty `json:"duties"`
}

// HasLocation reports whether a duty is already recorded for the location.
func (d RosterDay) HasLocation(loc DutyLocation) bool {
	for _, duty := range d.Duties {
		if duty.Location == loc {
			return true
		}
	}
	return false
}

// HasTeacher reports whether the teacher already holds a duty on this day.
func (d RosterDay) HasTeacher(teacherID string) bool {
	for _, duty := range d.Duties {
		if duty.TeacherID == teacherID {
			return true
		}
	}
	return false
}

// RosterMonth is one month's duty plan. A generated month is a draft until
// the caller confirms it into the application state.
type RosterMonth struct {
	ID   string `json:"id"`
	Year int    `json:"year"`
	// Month is zero-based (January = 0) to keep the identity key and the
	// export format compatible with previously exported state.
	Month int         `json:"month"`
	Days  []RosterDay `json:"days"`
}

// RosterMonthID derives the identity key for a (year, zero-based month) pair.
func RosterMonthID(year, month int) string {
	return fmt.Sprintf("%d-%d", year, month)
}

// NewRosterMonth creates an empty roster for the given month.
func NewRosterMonth(year, month int) RosterMonth {
	return RosterMonth{
		ID:    RosterMonthID(year, month),
		Year:  year,
		Month: month,
		Days:  []RosterDay{},
	}
}

// AppState is the full persisted application state: the teacher roster and
// all confirmed monthly rosters.
type AppState struct {
	Teachers []Teacher     `json:"teachers"`
	Rosters  []RosterMonth `json:"rosters"`
}
