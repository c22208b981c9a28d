package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
	"github.com/emrekaraca/duty-roster/pkg/core/services"
)

// TeachersCmd creates the teachers command group
func TeachersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "Manage the teacher roster",
	}

	cmd.AddCommand(listTeachersCmd(app))
	cmd.AddCommand(addTeacherCmd(app))
	cmd.AddCommand(updateTeacherCmd(app))
	cmd.AddCommand(removeTeacherCmd(app))

	return cmd
}

func listTeachersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered teachers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			teachers, err := services.ListTeachers(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d teachers:\n\n", len(teachers))
			for _, t := range teachers {
				fmt.Printf("- %s (%s) - available: %s\n", t.Name, t.ID, formatWeekdays(t.AvailableDays))
			}
			fmt.Println()

			return nil
		},
	}
}

func addTeacherCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a new teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			daysFlag, _ := cmd.Flags().GetString("days")
			days, err := parseWeekdays(daysFlag)
			if err != nil {
				return err
			}

			teacher, err := services.AddTeacher(app.Ctx, app.Database, app.Logger, args[0], days)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Teacher added: %s (%s)\n", teacher.Name, teacher.ID)
			fmt.Printf("Available days: %s\n\n", formatWeekdays(teacher.AvailableDays))

			return nil
		},
	}

	cmd.Flags().String("days", "1,2,3,4,5", "Available weekdays as numbers (0=Sunday .. 6=Saturday)")

	return cmd
}

func updateTeacherCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a teacher's name or availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teachers, err := services.ListTeachers(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			var current *model.Teacher
			for i := range teachers {
				if teachers[i].ID == args[0] {
					current = &teachers[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("teacher %s is not registered", args[0])
			}

			updated := *current
			if cmd.Flags().Changed("name") {
				updated.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("days") {
				daysFlag, _ := cmd.Flags().GetString("days")
				days, err := parseWeekdays(daysFlag)
				if err != nil {
					return err
				}
				updated.AvailableDays = days
			}

			if err := services.UpdateTeacher(app.Ctx, app.Database, app.Logger, updated); err != nil {
				return err
			}

			fmt.Printf("\n✓ Teacher updated: %s (%s)\n\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "New display name")
	cmd.Flags().String("days", "", "New available weekdays as numbers (0=Sunday .. 6=Saturday)")

	return cmd
}

func removeTeacherCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a teacher from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.RemoveTeacher(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Teacher removed: %s\n\n", args[0])
			return nil
		},
	}
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("days must not be empty")
	}

	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q: %w", part, err)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}

func formatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "none"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
