// Package store defines the persistence boundary for application state: the
// teacher roster and the confirmed monthly duty rosters. Backends implement
// Store; the generation engine itself never touches persistence.
package store

import (
	"context"
	"errors"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

var (
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrRosterNotFound  = errors.New("roster not found")
)

// Store is the full persistence surface. Services depend on narrower
// interfaces declared next to each service.
type Store interface {
	GetTeachers(ctx context.Context) ([]model.Teacher, error)
	InsertTeacher(ctx context.Context, teacher model.Teacher) error
	UpdateTeacher(ctx context.Context, teacher model.Teacher) error
	DeleteTeacher(ctx context.Context, id string) error

	GetRosters(ctx context.Context) ([]model.RosterMonth, error)
	GetRoster(ctx context.Context, id string) (model.RosterMonth, error)
	UpsertRoster(ctx context.Context, roster model.RosterMonth) error

	GetState(ctx context.Context) (model.AppState, error)
	ReplaceState(ctx context.Context, state model.AppState) error
}
