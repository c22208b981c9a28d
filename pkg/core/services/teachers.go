package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// TeacherStore defines the database operations needed for teacher CRUD
type TeacherStore interface {
	GetTeachers(ctx context.Context) ([]model.Teacher, error)
	InsertTeacher(ctx context.Context, teacher model.Teacher) error
	UpdateTeacher(ctx context.Context, teacher model.Teacher) error
	DeleteTeacher(ctx context.Context, id string) error
}

// ListTeachers returns all registered teachers.
func ListTeachers(ctx context.Context, database TeacherStore, logger *zap.Logger) ([]model.Teacher, error) {
	teachers, err := database.GetTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teachers: %w", err)
	}
	logger.Debug("Fetched teachers", zap.Int("count", len(teachers)))
	return teachers, nil
}

// AddTeacher registers a new teacher with a fresh id.
func AddTeacher(
	ctx context.Context,
	database TeacherStore,
	logger *zap.Logger,
	name string,
	availableDays []time.Weekday,
) (model.Teacher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Teacher{}, fmt.Errorf("teacher name must not be empty")
	}
	if err := validateWeekdays(availableDays); err != nil {
		return model.Teacher{}, err
	}

	teacher := model.Teacher{
		ID:            uuid.New().String(),
		Name:          name,
		AvailableDays: availableDays,
	}

	if err := database.InsertTeacher(ctx, teacher); err != nil {
		return model.Teacher{}, fmt.Errorf("failed to insert teacher: %w", err)
	}

	logger.Info("Teacher added",
		zap.String("teacher_id", teacher.ID),
		zap.String("name", teacher.Name),
		zap.Int("available_days", len(teacher.AvailableDays)))

	return teacher, nil
}

// UpdateTeacher replaces a teacher's name and availability.
func UpdateTeacher(ctx context.Context, database TeacherStore, logger *zap.Logger, teacher model.Teacher) error {
	teacher.Name = strings.TrimSpace(teacher.Name)
	if teacher.Name == "" {
		return fmt.Errorf("teacher name must not be empty")
	}
	if err := validateWeekdays(teacher.AvailableDays); err != nil {
		return err
	}

	if err := database.UpdateTeacher(ctx, teacher); err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}

	logger.Info("Teacher updated", zap.String("teacher_id", teacher.ID))
	return nil
}

// RemoveTeacher deletes a teacher from the roster. Confirmed rosters are
// left untouched; historical duties keep the teacher's id.
func RemoveTeacher(ctx context.Context, database TeacherStore, logger *zap.Logger, id string) error {
	if err := database.DeleteTeacher(ctx, id); err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	logger.Info("Teacher removed", zap.String("teacher_id", id))
	return nil
}

func validateWeekdays(days []time.Weekday) error {
	seen := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday %d", d)
		}
		if seen[d] {
			return fmt.Errorf("duplicate weekday %s", d)
		}
		seen[d] = true
	}
	return nil
}
