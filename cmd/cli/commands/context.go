package commands

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/internal/config"
	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/model"
	"github.com/emrekaraca/duty-roster/pkg/store"
)

// AppContext holds the application dependencies shared by all commands.
// It is constructed empty in main and populated by the root command's
// PersistentPreRunE before any subcommand runs.
type AppContext struct {
	Ctx      context.Context
	Cfg      *config.Config
	Env      *config.Env
	Cal      *calendar.Calendar
	Database store.Store
	Logger   *zap.Logger
}

// parseMonthArgs parses <year> <month> command arguments. The CLI takes the
// calendar month (1-12); the zero-based month the engine uses is returned.
func parseMonthArgs(args []string) (year, month int, err error) {
	year, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number: %w", err)
	}
	m, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("month must be a number: %w", err)
	}
	if m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %d", m)
	}
	return year, m - 1, nil
}

// teacherNames builds an id-to-name lookup, falling back to the raw id for
// teachers no longer on the roster.
func teacherNames(teachers []model.Teacher) map[string]string {
	names := make(map[string]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}
	return names
}

func nameOf(names map[string]string, teacherID string) string {
	if name, ok := names[teacherID]; ok {
		return name
	}
	return teacherID
}
