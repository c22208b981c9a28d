package calendar

// Built-in academic calendar for the 2025-2026 school year. Holiday dates
// for the religious holidays are estimates and shift with the lunar
// calendar; override them in configuration once the official calendar is
// published.
var (
	defaultHolidays = []string{
		// National holidays
		"2025-10-29",
		"2026-01-01",
		"2026-04-23",
		"2026-05-01",
		"2026-05-19",
		// Ramadan feast (estimated, eve included)
		"2026-03-20",
		"2026-03-21",
		"2026-03-22",
		"2026-03-23",
		// Sacrifice feast (estimated, eve included)
		"2026-05-28",
		"2026-05-29",
		"2026-05-30",
		"2026-05-31",
		"2026-06-01",
	}

	defaultPeriods = [][2]string{
		{"2025-01-01", "2025-09-07"}, // pre-term
		{"2025-11-10", "2025-11-14"}, // first mid-term break
		{"2026-01-26", "2026-02-06"}, // semester break
		{"2026-04-06", "2026-04-10"}, // second mid-term break
		{"2026-06-15", "2026-12-31"}, // summer break
	}
)

// Default returns the built-in 2025-2026 academic calendar.
func Default() *Calendar {
	c, err := New(defaultHolidays, defaultPeriods)
	if err != nil {
		// The built-in data is literal and validated by tests.
		panic(err)
	}
	return c
}
