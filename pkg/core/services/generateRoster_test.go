package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/internal/config"
	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// mockGenerateRosterStore implements GenerateRosterStore for testing
type mockGenerateRosterStore struct {
	teachers        []model.Teacher
	rosters         []model.RosterMonth
	upsertedRosters []model.RosterMonth
	getTeachersErr  error
	getRostersErr   error
	upsertErr       error
}

func (m *mockGenerateRosterStore) GetTeachers(ctx context.Context) ([]model.Teacher, error) {
	if m.getTeachersErr != nil {
		return nil, m.getTeachersErr
	}
	return m.teachers, nil
}

func (m *mockGenerateRosterStore) GetRosters(ctx context.Context) ([]model.RosterMonth, error) {
	if m.getRostersErr != nil {
		return nil, m.getRostersErr
	}
	return m.rosters, nil
}

func (m *mockGenerateRosterStore) UpsertRoster(ctx context.Context, roster model.RosterMonth) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedRosters = append(m.upsertedRosters, roster)
	return nil
}

var allWeekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

func testCalendar(t *testing.T) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New(nil, nil)
	require.NoError(t, err)
	return cal
}

func testTeachers() []model.Teacher {
	return []model.Teacher{
		{ID: "t1", Name: "Ayşe", AvailableDays: allWeekdays},
		{ID: "t2", Name: "Mehmet", AvailableDays: allWeekdays},
		{ID: "t3", Name: "Zeynep", AvailableDays: allWeekdays},
	}
}

func TestGenerateRoster_DryRunDoesNotSave(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}
	cfg := &config.Config{}

	result, err := GenerateRoster(context.Background(), store, testCalendar(t), cfg, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2})
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Empty(t, store.upsertedRosters)
	assert.Equal(t, "2026-2", result.Roster.ID)
	assert.Len(t, result.Roster.Days, 22) // March 2026 has 22 weekdays
	assert.Len(t, result.Teachers, 3)
}

func TestGenerateRoster_SavePersistsRoster(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}
	cfg := &config.Config{}

	result, err := GenerateRoster(context.Background(), store, testCalendar(t), cfg, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2, Save: true})
	require.NoError(t, err)

	assert.True(t, result.Saved)
	require.Len(t, store.upsertedRosters, 1)
	assert.Equal(t, result.Roster, store.upsertedRosters[0])
}

func TestGenerateRoster_RequiresTwoTeachers(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()[:1]}

	_, err := GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2})

	assert.ErrorIs(t, err, ErrNotEnoughTeachers)
	assert.Empty(t, store.upsertedRosters)
}

func TestGenerateRoster_RejectsMonthOutOfRange(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}

	_, err := GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 12})
	assert.Error(t, err)

	_, err = GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: -1})
	assert.Error(t, err)
}

func TestGenerateRoster_RegenerationIgnoresOwnHistory(t *testing.T) {
	// t2 already worked a prior month; an old draft of the target month
	// loaded t1 heavily. Only the prior month may count.
	previous := model.RosterMonth{
		ID: "2026-1", Year: 2026, Month: 1,
		Days: []model.RosterDay{
			{Date: "2026-02-02", Duties: []model.Duty{{TeacherID: "t2", Location: model.LocationFloor}}},
			{Date: "2026-02-04", Duties: []model.Duty{{TeacherID: "t2", Location: model.LocationFloor}}},
		},
	}
	existingTarget := model.RosterMonth{
		ID: "2026-2", Year: 2026, Month: 2,
		Days: []model.RosterDay{
			{Date: "2026-03-02", Duties: []model.Duty{{TeacherID: "t1", Location: model.LocationFloor}}},
			{Date: "2026-03-04", Duties: []model.Duty{{TeacherID: "t1", Location: model.LocationFloor}}},
			{Date: "2026-03-06", Duties: []model.Duty{{TeacherID: "t1", Location: model.LocationFloor}}},
			{Date: "2026-03-09", Duties: []model.Duty{{TeacherID: "t1", Location: model.LocationFloor}}},
		},
	}

	store := &mockGenerateRosterStore{
		teachers: []model.Teacher{
			{ID: "t1", Name: "Ayşe", AvailableDays: allWeekdays},
			{ID: "t2", Name: "Mehmet", AvailableDays: allWeekdays},
		},
		rosters: []model.RosterMonth{previous, existingTarget},
	}
	cfg := &config.Config{Locations: []string{"Floor"}, DeterministicTieBreak: true}

	result, err := GenerateRoster(context.Background(), store, testCalendar(t), cfg, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2})
	require.NoError(t, err)

	// With only the prior month counted, t1 starts at 0 and t2 at 2, so t1
	// opens the month. If the stale target roster leaked in, t2 would.
	require.NotEmpty(t, result.Roster.Days)
	require.Len(t, result.Roster.Days[0].Duties, 1)
	assert.Equal(t, "t1", result.Roster.Days[0].Duties[0].TeacherID)
}

func TestGenerateRoster_AdHocOverrideSkipsDay(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}

	result, err := GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{
			Year:      2026,
			Month:     2,
			Overrides: map[string]bool{"2026-03-03": false},
		})
	require.NoError(t, err)

	assert.Len(t, result.Roster.Days, 21)
	for _, day := range result.Roster.Days {
		assert.NotEqual(t, "2026-03-03", day.Date)
	}
}

func TestGenerateRoster_RejectsMalformedOverrideDate(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}

	_, err := GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{
			Year:      2026,
			Month:     2,
			Overrides: map[string]bool{"03/03/2026": false},
		})

	assert.Error(t, err)
}

func TestGenerateRoster_ConfiguredRecurringOverride(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}
	cfg := &config.Config{
		DayOverrides: []config.DayOverride{
			{RRule: "FREQ=WEEKLY;BYDAY=TU", DutyDay: false},
		},
	}

	result, err := GenerateRoster(context.Background(), store, testCalendar(t), cfg, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2})
	require.NoError(t, err)

	// March 2026 has five Tuesdays
	assert.Len(t, result.Roster.Days, 17)
	for _, day := range result.Roster.Days {
		date, parseErr := calendar.ParseDate(day.Date)
		require.NoError(t, parseErr)
		assert.NotEqual(t, time.Tuesday, date.Weekday())
	}
}

func TestGenerateRoster_AdHocOverrideBeatsConfigured(t *testing.T) {
	store := &mockGenerateRosterStore{teachers: testTeachers()}
	cfg := &config.Config{
		DayOverrides: []config.DayOverride{
			{RRule: "FREQ=WEEKLY;BYDAY=TU", DutyDay: false},
		},
	}

	result, err := GenerateRoster(context.Background(), store, testCalendar(t), cfg, zap.NewNop(),
		GenerateRosterParams{
			Year:      2026,
			Month:     2,
			Overrides: map[string]bool{"2026-03-03": true},
		})
	require.NoError(t, err)

	found := false
	for _, day := range result.Roster.Days {
		if day.Date == "2026-03-03" {
			found = true
		}
	}
	assert.True(t, found, "ad-hoc override should restore the configured skip day")
	assert.Len(t, result.Roster.Days, 18)
}

func TestGenerateRoster_SeededRunsAreReproducible(t *testing.T) {
	seed := int64(1234)
	params := GenerateRosterParams{Year: 2026, Month: 2, Seed: &seed}

	store := &mockGenerateRosterStore{teachers: testTeachers()}
	first, err := GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(), params)
	require.NoError(t, err)

	second, err := GenerateRoster(context.Background(), store, testCalendar(t), &config.Config{}, zap.NewNop(), params)
	require.NoError(t, err)

	assert.Equal(t, first.Roster, second.Roster)
}

func TestGenerateRoster_StoreErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")

	_, err := GenerateRoster(context.Background(),
		&mockGenerateRosterStore{getTeachersErr: boom},
		testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2})
	assert.ErrorIs(t, err, boom)

	_, err = GenerateRoster(context.Background(),
		&mockGenerateRosterStore{teachers: testTeachers(), getRostersErr: boom},
		testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2})
	assert.ErrorIs(t, err, boom)

	_, err = GenerateRoster(context.Background(),
		&mockGenerateRosterStore{teachers: testTeachers(), upsertErr: boom},
		testCalendar(t), &config.Config{}, zap.NewNop(),
		GenerateRosterParams{Year: 2026, Month: 2, Save: true})
	assert.ErrorIs(t, err, boom)
}
