package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// SummaryStore defines the database operations needed for the duty summary
type SummaryStore interface {
	GetTeachers(ctx context.Context) ([]model.Teacher, error)
	GetRosters(ctx context.Context) ([]model.RosterMonth, error)
}

// SummaryRow aggregates one teacher's duties across the confirmed rosters.
type SummaryRow struct {
	TeacherID  string
	Name       string
	Total      int
	ByLocation map[model.DutyLocation]int
	// ByMonth maps roster ids to the teacher's duty count in that month.
	ByMonth map[string]int
}

// Summarize computes per-teacher duty totals over the given rosters, split
// by location and by month. Duties of unregistered teachers are ignored.
func Summarize(rosters []model.RosterMonth, teachers []model.Teacher) []SummaryRow {
	rows := make([]SummaryRow, len(teachers))
	index := make(map[string]*SummaryRow, len(teachers))
	for i, t := range teachers {
		rows[i] = SummaryRow{
			TeacherID:  t.ID,
			Name:       t.Name,
			ByLocation: make(map[model.DutyLocation]int),
			ByMonth:    make(map[string]int),
		}
		index[t.ID] = &rows[i]
	}

	for _, roster := range rosters {
		for _, day := range roster.Days {
			for _, duty := range day.Duties {
				row, ok := index[duty.TeacherID]
				if !ok {
					continue
				}
				row.Total++
				row.ByLocation[duty.Location]++
				row.ByMonth[roster.ID]++
			}
		}
	}

	return rows
}

// Summary fetches the confirmed state and aggregates duty totals per teacher.
func Summary(ctx context.Context, database SummaryStore, logger *zap.Logger) ([]SummaryRow, []model.RosterMonth, error) {
	teachers, err := database.GetTeachers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch teachers: %w", err)
	}
	rosters, err := database.GetRosters(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch rosters: %w", err)
	}

	rows := Summarize(rosters, teachers)
	logger.Debug("Summary computed",
		zap.Int("teachers", len(rows)),
		zap.Int("rosters", len(rosters)))

	return rows, rosters, nil
}
