package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// mockSummaryStore implements SummaryStore for testing
type mockSummaryStore struct {
	teachers []model.Teacher
	rosters  []model.RosterMonth
}

func (m *mockSummaryStore) GetTeachers(ctx context.Context) ([]model.Teacher, error) {
	return m.teachers, nil
}

func (m *mockSummaryStore) GetRosters(ctx context.Context) ([]model.RosterMonth, error) {
	return m.rosters, nil
}

func summaryFixture() ([]model.RosterMonth, []model.Teacher) {
	rosters := []model.RosterMonth{
		{
			ID: "2025-8", Year: 2025, Month: 8,
			Days: []model.RosterDay{
				{Date: "2025-09-01", Duties: []model.Duty{
					{TeacherID: "t1", Location: model.LocationFloor},
					{TeacherID: "t2", Location: model.LocationGarden},
				}},
				{Date: "2025-09-03", Duties: []model.Duty{
					{TeacherID: "t1", Location: model.LocationGarden},
				}},
			},
		},
		{
			ID: "2025-9", Year: 2025, Month: 9,
			Days: []model.RosterDay{
				{Date: "2025-10-01", Duties: []model.Duty{
					{TeacherID: "t2", Location: model.LocationFloor},
					{TeacherID: "gone", Location: model.LocationGarden},
				}},
			},
		},
	}
	teachers := []model.Teacher{
		{ID: "t1", Name: "Ayşe"},
		{ID: "t2", Name: "Mehmet"},
		{ID: "t3", Name: "Zeynep"},
	}
	return rosters, teachers
}

func TestSummarize_TotalsAndSplits(t *testing.T) {
	rosters, teachers := summaryFixture()

	rows := Summarize(rosters, teachers)
	require.Len(t, rows, 3)

	byID := make(map[string]SummaryRow, len(rows))
	for _, row := range rows {
		byID[row.TeacherID] = row
	}

	t1 := byID["t1"]
	assert.Equal(t, 2, t1.Total)
	assert.Equal(t, 1, t1.ByLocation[model.LocationFloor])
	assert.Equal(t, 1, t1.ByLocation[model.LocationGarden])
	assert.Equal(t, 2, t1.ByMonth["2025-8"])
	assert.Equal(t, 0, t1.ByMonth["2025-9"])

	t2 := byID["t2"]
	assert.Equal(t, 2, t2.Total)
	assert.Equal(t, 1, t2.ByMonth["2025-8"])
	assert.Equal(t, 1, t2.ByMonth["2025-9"])

	// Never assigned, still listed
	assert.Equal(t, 0, byID["t3"].Total)
}

func TestSummarize_IgnoresUnregisteredTeachers(t *testing.T) {
	rosters, teachers := summaryFixture()

	rows := Summarize(rosters, teachers)
	for _, row := range rows {
		assert.NotEqual(t, "gone", row.TeacherID)
	}
}

func TestSummarize_KeepsTeacherOrder(t *testing.T) {
	rosters, teachers := summaryFixture()

	rows := Summarize(rosters, teachers)
	require.Len(t, rows, 3)
	assert.Equal(t, "t1", rows[0].TeacherID)
	assert.Equal(t, "t2", rows[1].TeacherID)
	assert.Equal(t, "t3", rows[2].TeacherID)
}

func TestSummary_FetchesStateAndAggregates(t *testing.T) {
	rosters, teachers := summaryFixture()
	summaryStore := &mockSummaryStore{teachers: teachers, rosters: rosters}

	rows, gotRosters, err := Summary(context.Background(), summaryStore, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, rosters, gotRosters)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Total)
}
