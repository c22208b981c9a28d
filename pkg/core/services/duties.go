package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/internal/config"
	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/model"
	"github.com/emrekaraca/duty-roster/pkg/store"
)

// DutyStore defines the database operations needed for manual duty edits
type DutyStore interface {
	GetTeachers(ctx context.Context) ([]model.Teacher, error)
	GetRoster(ctx context.Context, id string) (model.RosterMonth, error)
	UpsertRoster(ctx context.Context, roster model.RosterMonth) error
}

// AddDuty manually records a duty on a confirmed roster. The day-level
// invariants are enforced here: one duty per location, one duty per teacher.
// The teacher must be registered and the location must be configured.
func AddDuty(
	ctx context.Context,
	database DutyStore,
	cfg *config.Config,
	logger *zap.Logger,
	date string,
	location model.DutyLocation,
	teacherID string,
) error {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	known := false
	for _, loc := range cfg.LocationList() {
		if loc == location {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown duty location %q", location)
	}

	teachers, err := database.GetTeachers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch teachers: %w", err)
	}
	registered := false
	for _, t := range teachers {
		if t.ID == teacherID {
			registered = true
			break
		}
	}
	if !registered {
		return fmt.Errorf("teacher %s is not registered", teacherID)
	}

	rosterID := model.RosterMonthID(day.Year(), int(day.Month())-1)
	roster, err := database.GetRoster(ctx, rosterID)
	if err != nil {
		if errors.Is(err, store.ErrRosterNotFound) {
			return fmt.Errorf("no confirmed roster for %s", rosterID)
		}
		return fmt.Errorf("failed to fetch roster: %w", err)
	}

	dateStr := day.Format(calendar.DateFormat)
	dayIndex := -1
	for i := range roster.Days {
		if roster.Days[i].Date == dateStr {
			dayIndex = i
			break
		}
	}

	duty := model.Duty{TeacherID: teacherID, Location: location}
	if dayIndex > -1 {
		if roster.Days[dayIndex].HasLocation(location) {
			return fmt.Errorf("location %s is already covered on %s", location, dateStr)
		}
		if roster.Days[dayIndex].HasTeacher(teacherID) {
			return fmt.Errorf("teacher %s already has a duty on %s", teacherID, dateStr)
		}
		roster.Days[dayIndex].Duties = append(roster.Days[dayIndex].Duties, duty)
	} else {
		roster.Days = append(roster.Days, model.RosterDay{
			Date:   dateStr,
			Duties: []model.Duty{duty},
		})
		sort.Slice(roster.Days, func(i, j int) bool {
			return roster.Days[i].Date < roster.Days[j].Date
		})
	}

	if err := database.UpsertRoster(ctx, roster); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	logger.Info("Duty added",
		zap.String("roster_id", rosterID),
		zap.String("date", dateStr),
		zap.String("location", string(location)),
		zap.String("teacher_id", teacherID))

	return nil
}

// RemoveDuty removes a teacher's duty from a confirmed roster day.
func RemoveDuty(
	ctx context.Context,
	database DutyStore,
	logger *zap.Logger,
	date string,
	teacherID string,
) error {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	rosterID := model.RosterMonthID(day.Year(), int(day.Month())-1)
	roster, err := database.GetRoster(ctx, rosterID)
	if err != nil {
		if errors.Is(err, store.ErrRosterNotFound) {
			return fmt.Errorf("no confirmed roster for %s", rosterID)
		}
		return fmt.Errorf("failed to fetch roster: %w", err)
	}

	dateStr := day.Format(calendar.DateFormat)
	removed := false
	for i := range roster.Days {
		if roster.Days[i].Date != dateStr {
			continue
		}
		duties := roster.Days[i].Duties[:0]
		for _, duty := range roster.Days[i].Duties {
			if duty.TeacherID == teacherID {
				removed = true
				continue
			}
			duties = append(duties, duty)
		}
		roster.Days[i].Duties = duties
		break
	}
	if !removed {
		return fmt.Errorf("teacher %s has no duty on %s", teacherID, dateStr)
	}

	if err := database.UpsertRoster(ctx, roster); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	logger.Info("Duty removed",
		zap.String("roster_id", rosterID),
		zap.String("date", dateStr),
		zap.String("teacher_id", teacherID))

	return nil
}
