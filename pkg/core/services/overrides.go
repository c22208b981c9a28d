package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/internal/config"
	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
)

// expandDayOverrides evaluates the configured recurring overrides over the
// target month and returns the per-date override map the engine consumes.
// Later entries win when rules overlap.
func expandDayOverrides(overrides []config.DayOverride, year, month int, logger *zap.Logger) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(overrides) == 0 {
		return result, nil
	}

	monthStart := calendar.Date(year, time.Month(month+1), 1)
	monthEnd := monthStart.AddDate(0, 1, -1)

	for i, override := range overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}

		// Anchor the rule just before the month so patterns like "every
		// second week" land on the right occurrences.
		rule.DTStart(monthStart.AddDate(0, 0, -7))

		occurrences := rule.Between(monthStart, monthEnd, true)
		for _, occurrence := range occurrences {
			result[occurrence.Format(calendar.DateFormat)] = override.DutyDay
		}

		logger.Debug("Expanded day override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.Bool("duty_day", override.DutyDay),
			zap.Int("occurrences", len(occurrences)))
	}

	return result, nil
}
