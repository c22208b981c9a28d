package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
)

// FileStore persists the whole application state as one JSON document on
// disk, the same document shape the export/import format uses. Writes are
// atomic (temp file + rename). Not safe for concurrent use; the CLI is a
// single-threaded, single-caller shell.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path. The file is
// created on first save; a missing file reads as empty state.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (model.AppState, error) {
	state := model.AppState{
		Teachers: []model.Teacher{},
		Rosters:  []model.RosterMonth{},
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to parse state file %s: %w", s.path, err)
	}

	return state, nil
}

func (s *FileStore) save(state model.AppState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".duty_roster_state_*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

func (s *FileStore) GetTeachers(ctx context.Context) ([]model.Teacher, error) {
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return state.Teachers, nil
}

func (s *FileStore) InsertTeacher(ctx context.Context, teacher model.Teacher) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	state.Teachers = append(state.Teachers, teacher)
	return s.save(state)
}

func (s *FileStore) UpdateTeacher(ctx context.Context, teacher model.Teacher) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	for i := range state.Teachers {
		if state.Teachers[i].ID == teacher.ID {
			state.Teachers[i] = teacher
			return s.save(state)
		}
	}
	return ErrTeacherNotFound
}

func (s *FileStore) DeleteTeacher(ctx context.Context, id string) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	for i := range state.Teachers {
		if state.Teachers[i].ID == id {
			state.Teachers = append(state.Teachers[:i], state.Teachers[i+1:]...)
			return s.save(state)
		}
	}
	return ErrTeacherNotFound
}

func (s *FileStore) GetRosters(ctx context.Context) ([]model.RosterMonth, error) {
	state, err := s.load()
	if err != nil {
		return nil, err
	}
	return state.Rosters, nil
}

func (s *FileStore) GetRoster(ctx context.Context, id string) (model.RosterMonth, error) {
	state, err := s.load()
	if err != nil {
		return model.RosterMonth{}, err
	}
	for _, roster := range state.Rosters {
		if roster.ID == id {
			return roster, nil
		}
	}
	return model.RosterMonth{}, ErrRosterNotFound
}

func (s *FileStore) UpsertRoster(ctx context.Context, roster model.RosterMonth) error {
	state, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range state.Rosters {
		if state.Rosters[i].ID == roster.ID {
			state.Rosters[i] = roster
			replaced = true
			break
		}
	}
	if !replaced {
		state.Rosters = append(state.Rosters, roster)
	}

	// Confirmed rosters are kept in chronological order.
	sort.Slice(state.Rosters, func(i, j int) bool {
		if state.Rosters[i].Year != state.Rosters[j].Year {
			return state.Rosters[i].Year < state.Rosters[j].Year
		}
		return state.Rosters[i].Month < state.Rosters[j].Month
	})

	return s.save(state)
}

func (s *FileStore) GetState(ctx context.Context) (model.AppState, error) {
	return s.load()
}

func (s *FileStore) ReplaceState(ctx context.Context, state model.AppState) error {
	return s.save(state)
}
