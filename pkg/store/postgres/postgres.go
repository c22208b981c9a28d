// Package postgres implements the state store on PostgreSQL. Teachers and
// rosters live in their own tables; a roster's day collection is stored as a
// JSONB document in the export format, so the database rows and the JSON
// export stay interchangeable.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekaraca/duty-roster/pkg/core/model"
	"github.com/emrekaraca/duty-roster/pkg/store"
)

// Store is a PostgreSQL-backed implementation of store.Store.
type Store struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// New connects to the database and verifies the connection.
func New(ctx context.Context, dsn string, connectTimeout, queryTimeout time.Duration) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Store{pool: pool, queryTimeout: queryTimeout}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS teachers (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			available_days INT[] NOT NULL DEFAULT '{}'
		);
		CREATE TABLE IF NOT EXISTS rosters (
			id    TEXT PRIMARY KEY,
			year  INT NOT NULL,
			month INT NOT NULL,
			days  JSONB NOT NULL DEFAULT '[]'
		);
	`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (s *Store) GetTeachers(ctx context.Context) ([]model.Teacher, error) {
	query := `SELECT id, name, available_days FROM teachers ORDER BY name, id`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teachers: %w", err)
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		var t model.Teacher
		var days []int32
		if err := rows.Scan(&t.ID, &t.Name, &days); err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		t.AvailableDays = toWeekdays(days)
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teachers: %w", err)
	}

	return teachers, nil
}

func (s *Store) InsertTeacher(ctx context.Context, teacher model.Teacher) error {
	query := `INSERT INTO teachers (id, name, available_days) VALUES ($1, $2, $3)`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, query, teacher.ID, teacher.Name, fromWeekdays(teacher.AvailableDays)); err != nil {
		return fmt.Errorf("failed to insert teacher: %w", err)
	}
	return nil
}

func (s *Store) UpdateTeacher(ctx context.Context, teacher model.Teacher) error {
	query := `UPDATE teachers SET name = $1, available_days = $2 WHERE id = $3`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx, query, teacher.Name, fromWeekdays(teacher.AvailableDays), teacher.ID)
	if err != nil {
		return fmt.Errorf("failed to update teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrTeacherNotFound
	}
	return nil
}

func (s *Store) DeleteTeacher(ctx context.Context, id string) error {
	query := `DELETE FROM teachers WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrTeacherNotFound
	}
	return nil
}

func (s *Store) GetRosters(ctx context.Context) ([]model.RosterMonth, error) {
	query := `SELECT id, year, month, days FROM rosters ORDER BY year, month`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	rosters := []model.RosterMonth{}
	for rows.Next() {
		roster, err := scanRoster(rows)
		if err != nil {
			return nil, err
		}
		rosters = append(rosters, roster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rosters: %w", err)
	}

	return rosters, nil
}

func (s *Store) GetRoster(ctx context.Context, id string) (model.RosterMonth, error) {
	query := `SELECT id, year, month, days FROM rosters WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return model.RosterMonth{}, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.RosterMonth{}, fmt.Errorf("failed to read roster: %w", err)
		}
		return model.RosterMonth{}, store.ErrRosterNotFound
	}

	return scanRoster(rows)
}

func (s *Store) UpsertRoster(ctx context.Context, roster model.RosterMonth) error {
	query := `
		INSERT INTO rosters (id, year, month, days) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET year = $2, month = $3, days = $4
	`

	days, err := json.Marshal(roster.Days)
	if err != nil {
		return fmt.Errorf("failed to serialize roster days: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, query, roster.ID, roster.Year, roster.Month, days); err != nil {
		return fmt.Errorf("failed to upsert roster: %w", err)
	}
	return nil
}

func (s *Store) GetState(ctx context.Context) (model.AppState, error) {
	teachers, err := s.GetTeachers(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	rosters, err := s.GetRosters(ctx)
	if err != nil {
		return model.AppState{}, err
	}
	return model.AppState{Teachers: teachers, Rosters: rosters}, nil
}

// ReplaceState swaps the entire state in one transaction; nothing is
// mutated if any step fails.
func (s *Store) ReplaceState(ctx context.Context, state model.AppState) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE teachers, rosters`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}

	for _, t := range state.Teachers {
		query := `INSERT INTO teachers (id, name, available_days) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, query, t.ID, t.Name, fromWeekdays(t.AvailableDays)); err != nil {
			return fmt.Errorf("failed to insert teacher %s: %w", t.ID, err)
		}
	}

	rosters := append([]model.RosterMonth(nil), state.Rosters...)
	sort.Slice(rosters, func(i, j int) bool {
		if rosters[i].Year != rosters[j].Year {
			return rosters[i].Year < rosters[j].Year
		}
		return rosters[i].Month < rosters[j].Month
	})
	for _, r := range rosters {
		days, err := json.Marshal(r.Days)
		if err != nil {
			return fmt.Errorf("failed to serialize roster %s: %w", r.ID, err)
		}
		query := `INSERT INTO rosters (id, year, month, days) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, query, r.ID, r.Year, r.Month, days); err != nil {
			return fmt.Errorf("failed to insert roster %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

func scanRoster(rows pgx.Rows) (model.RosterMonth, error) {
	var roster model.RosterMonth
	var days []byte
	if err := rows.Scan(&roster.ID, &roster.Year, &roster.Month, &days); err != nil {
		return model.RosterMonth{}, fmt.Errorf("failed to scan roster: %w", err)
	}
	if err := json.Unmarshal(days, &roster.Days); err != nil {
		return model.RosterMonth{}, fmt.Errorf("failed to parse roster days: %w", err)
	}
	return roster, nil
}

func toWeekdays(days []int32) []time.Weekday {
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}

func fromWeekdays(days []time.Weekday) []int32 {
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}
