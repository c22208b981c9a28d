package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/internal/config"
	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/model"
	"github.com/emrekaraca/duty-roster/pkg/core/scheduler"
)

// ErrNotEnoughTeachers is returned when generation is requested with fewer
// than two registered teachers. This is shell policy: the engine itself
// accepts any roster and just produces sparser output.
var ErrNotEnoughTeachers = errors.New("at least 2 teachers are required to generate a roster")

// GenerateRosterStore defines the database operations needed for generating a roster
type GenerateRosterStore interface {
	GetTeachers(ctx context.Context) ([]model.Teacher, error)
	GetRosters(ctx context.Context) ([]model.RosterMonth, error)
	UpsertRoster(ctx context.Context, roster model.RosterMonth) error
}

// GenerateRosterParams identifies the month to generate and how.
type GenerateRosterParams struct {
	Year int
	// Month is zero-based (January = 0)
	Month int
	// Overrides force the duty-day determination for specific dates
	// (YYYY-MM-DD), taking precedence over both the classifier and any
	// configured recurring overrides. Scoped to this generation only.
	Overrides map[string]bool
	// Save confirms the generated roster into state, replacing any
	// existing roster for the same month. When false this is a dry run.
	Save bool
	// Seed fixes the random source for the fairness coin flip.
	Seed *int64
}

// GenerateRosterResult contains the generated plan and context for display.
type GenerateRosterResult struct {
	Roster   model.RosterMonth
	Teachers []model.Teacher
	Saved    bool
}

// GenerateRoster computes one month's duty plan from the registered teachers
// and the confirmed history, and optionally confirms it into state.
func GenerateRoster(
	ctx context.Context,
	database GenerateRosterStore,
	cal *calendar.Calendar,
	cfg *config.Config,
	logger *zap.Logger,
	params GenerateRosterParams,
) (*GenerateRosterResult, error) {
	if params.Month < 0 || params.Month > 11 {
		return nil, fmt.Errorf("month must be between 0 and 11, got %d", params.Month)
	}

	logger.Debug("Starting roster generation",
		zap.Int("year", params.Year),
		zap.Int("month", params.Month),
		zap.Bool("save", params.Save))

	teachers, err := database.GetTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teachers: %w", err)
	}
	if len(teachers) < 2 {
		return nil, ErrNotEnoughTeachers
	}
	logger.Debug("Found teachers", zap.Int("count", len(teachers)))

	rosters, err := database.GetRosters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rosters: %w", err)
	}

	// History is the previously confirmed months. A roster already
	// confirmed for the target month is being regenerated, so its counts
	// must not feed back in.
	targetID := model.RosterMonthID(params.Year, params.Month)
	history := make([]model.RosterMonth, 0, len(rosters))
	for _, r := range rosters {
		if r.ID != targetID {
			history = append(history, r)
		}
	}
	logger.Debug("Built history", zap.Int("months", len(history)))

	overrides, err := expandDayOverrides(cfg.DayOverrides, params.Year, params.Month, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to expand day overrides: %w", err)
	}
	for date, dutyDay := range params.Overrides {
		if _, parseErr := calendar.ParseDate(date); parseErr != nil {
			return nil, fmt.Errorf("invalid override date %q: %w", date, parseErr)
		}
		overrides[date] = dutyDay
	}
	logger.Debug("Effective day overrides", zap.Int("count", len(overrides)))

	opts := scheduler.Options{
		Locations:     cfg.LocationList(),
		Deterministic: cfg.DeterministicTieBreak,
	}
	if params.Seed != nil {
		opts.Rand = rand.New(rand.NewSource(*params.Seed))
	}

	logger.Info("Generating duty roster",
		zap.String("roster_id", targetID),
		zap.Int("teachers", len(teachers)),
		zap.Bool("deterministic", opts.Deterministic))

	roster := scheduler.Generate(params.Year, params.Month, teachers, history, overrides, cal, opts)

	logger.Info("Roster generated",
		zap.String("roster_id", roster.ID),
		zap.Int("duty_days", len(roster.Days)))

	saved := false
	if params.Save {
		if err := database.UpsertRoster(ctx, roster); err != nil {
			return nil, fmt.Errorf("failed to save roster: %w", err)
		}
		saved = true
		logger.Info("Roster confirmed and saved", zap.String("roster_id", roster.ID))
	} else {
		logger.Info("Dry run mode - roster not saved")
	}

	return &GenerateRosterResult{
		Roster:   roster,
		Teachers: teachers,
		Saved:    saved,
	}, nil
}
