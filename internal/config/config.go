package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/emrekaraca/duty-roster/pkg/core/calendar"
	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

const configFileName = "duty_roster.yaml"

// PeriodConfig is an inclusive date range with no instruction.
type PeriodConfig struct {
	Start string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End   string `yaml:"end" validate:"required,datetime=2006-01-02"`
}

// CalendarConfig overrides the built-in academic calendar.
type CalendarConfig struct {
	Holidays []string       `yaml:"holidays,omitempty" validate:"dive,datetime=2006-01-02"`
	Periods  []PeriodConfig `yaml:"periods,omitempty" validate:"dive"`
}

// DayOverride forces the duty-day determination for every date matched by
// the recurrence rule, e.g. "FREQ=WEEKLY;BYDAY=WE" with dutyDay false keeps
// Wednesdays duty-free.
type DayOverride struct {
	RRule   string `yaml:"rrule" validate:"required"`
	DutyDay bool   `yaml:"dutyDay"`
}

// Config represents the application configuration
type Config struct {
	Locations             []string        `yaml:"locations,omitempty" validate:"omitempty,min=1,unique"`
	Calendar              *CalendarConfig `yaml:"calendar,omitempty"`
	DayOverrides          []DayOverride   `yaml:"dayOverrides,omitempty" validate:"dive"`
	DeterministicTieBreak bool            `yaml:"deterministicTieBreak,omitempty"`
	StatePath             string          `yaml:"statePath,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from duty_roster.yaml, looking
// in the current directory first, then in the user's home directory. A
// missing file is not an error; every setting has a default.
func Load() (*Config, error) {
	configPath, found := findConfigFile()
	if !found {
		return &Config{}, nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.DayOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in dayOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// LocationList returns the configured duty locations in priority order,
// falling back to the built-in set.
func (c *Config) LocationList() []model.DutyLocation {
	if len(c.Locations) == 0 {
		return model.DefaultLocations()
	}
	locations := make([]model.DutyLocation, len(c.Locations))
	for i, l := range c.Locations {
		locations[i] = model.DutyLocation(l)
	}
	return locations
}

// BuildCalendar constructs the work-day classifier from the configured
// academic calendar, or the built-in one when none is configured.
func (c *Config) BuildCalendar() (*calendar.Calendar, error) {
	if c.Calendar == nil {
		return calendar.Default(), nil
	}

	periods := make([][2]string, len(c.Calendar.Periods))
	for i, p := range c.Calendar.Periods {
		periods[i] = [2]string{p.Start, p.End}
	}

	cal, err := calendar.New(c.Calendar.Holidays, periods)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar configuration: %w", err)
	}
	return cal, nil
}

// StateFilePath returns the JSON state file path for the file-backed store.
func (c *Config) StateFilePath() string {
	if c.StatePath != "" {
		return c.StatePath
	}
	return "duty_roster_state.json"
}

// findConfigFile searches for duty_roster.yaml in the current directory and
// the home directory.
func findConfigFile() (string, bool) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, true
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, true
	}

	return "", false
}
