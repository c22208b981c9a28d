package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidHolidayDate(t *testing.T) {
	_, err := New([]string{"not-a-date"}, nil)
	assert.Error(t, err)
}

func TestNew_RejectsInvalidPeriodDates(t *testing.T) {
	_, err := New(nil, [][2]string{{"2026-01-01", "bogus"}})
	assert.Error(t, err)

	_, err = New(nil, [][2]string{{"bogus", "2026-01-01"}})
	assert.Error(t, err)
}

func TestNew_RejectsReversedPeriod(t *testing.T) {
	_, err := New(nil, [][2]string{{"2026-02-10", "2026-02-01"}})
	assert.Error(t, err)
}

func TestIsWorkDay_Weekends(t *testing.T) {
	cal, err := New(nil, nil)
	require.NoError(t, err)

	// 2026-03-07 is a Saturday, 2026-03-08 a Sunday
	assert.False(t, cal.IsWorkDay(Date(2026, time.March, 7)))
	assert.False(t, cal.IsWorkDay(Date(2026, time.March, 8)))
	// 2026-03-09 is a Monday
	assert.True(t, cal.IsWorkDay(Date(2026, time.March, 9)))
}

func TestIsWorkDay_ListedHoliday(t *testing.T) {
	cal, err := New([]string{"2026-04-23"}, nil)
	require.NoError(t, err)

	// 2026-04-23 is a Thursday but a listed holiday
	assert.False(t, cal.IsWorkDay(Date(2026, time.April, 23)))
	assert.True(t, cal.IsWorkDay(Date(2026, time.April, 22)))
	assert.True(t, cal.IsWorkDay(Date(2026, time.April, 24)))
}

func TestIsHoliday_PeriodBoundsInclusive(t *testing.T) {
	cal, err := New(nil, [][2]string{{"2026-01-26", "2026-02-06"}})
	require.NoError(t, err)

	// Both ends of the period are excluded
	assert.True(t, cal.IsHoliday(Date(2026, time.January, 26)))
	assert.True(t, cal.IsHoliday(Date(2026, time.February, 6)))
	assert.True(t, cal.IsHoliday(Date(2026, time.February, 2)))

	// The days just outside are not
	assert.False(t, cal.IsHoliday(Date(2026, time.January, 25)))
	assert.False(t, cal.IsHoliday(Date(2026, time.February, 7)))
}

func TestIsHoliday_IgnoresTimeOfDay(t *testing.T) {
	cal, err := New(nil, [][2]string{{"2026-01-26", "2026-02-06"}})
	require.NoError(t, err)

	// A timestamp late on the last period day still falls inside it
	late := time.Date(2026, time.February, 6, 23, 30, 0, 0, time.UTC)
	assert.True(t, cal.IsHoliday(late))
}

func TestIsWorkDay_WeekendInsidePeriodStaysNonWork(t *testing.T) {
	cal, err := New(nil, [][2]string{{"2026-01-26", "2026-02-06"}})
	require.NoError(t, err)

	// 2026-01-31 is a Saturday inside the recess
	assert.False(t, cal.IsWorkDay(Date(2026, time.January, 31)))
}

func TestDefault_KnownDates(t *testing.T) {
	cal := Default()

	// Republic Day 2025 falls on a Wednesday
	assert.False(t, cal.IsWorkDay(Date(2025, time.October, 29)))
	// Semester break
	assert.False(t, cal.IsWorkDay(Date(2026, time.January, 28)))
	// A plain Tuesday mid-term
	assert.True(t, cal.IsWorkDay(Date(2025, time.October, 7)))
	// Summer is out of term
	assert.False(t, cal.IsWorkDay(Date(2026, time.July, 15)))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, Date(2026, time.March, 2), date)

	_, err = ParseDate("02/03/2026")
	assert.Error(t, err)
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2026, time.March, 2, 14, 45, 12, 99, time.UTC)
	assert.Equal(t, Date(2026, time.March, 2), Midnight(ts))
}
