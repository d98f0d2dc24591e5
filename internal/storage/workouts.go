// ABOUTME: Workout CRUD operations for SQLite storage.
// ABOUTME: Exercises and sets are stored as a JSON column guarded by a version counter.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/fitnotes/internal/models"
)

const workoutColumns = `id, date, exercises, version, created_at`

// maxMutateAttempts bounds the optimistic retry loop in MutateWorkout.
const maxMutateAttempts = 8

// AddWorkout stores a new workout, stamping CreatedAt, and sets w.ID.
// It returns ErrDuplicateDate if a workout already exists for w.Date.
func (c *Conn) AddWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	if w.Exercises == nil {
		w.Exercises = []models.WorkoutExercise{}
	}
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return 0, fmt.Errorf("encode workout exercises: %w", err)
	}

	w.CreatedAt = now()
	w.Version = 0
	res, err := c.q.ExecContext(ctx, `
		INSERT INTO workouts (date, exercises, version, created_at)
		VALUES (?, ?, 0, ?)
	`, w.Date, string(exercises), formatTime(w.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("add workout %s: %w", w.Date, ErrDuplicateDate)
		}
		return 0, fmt.Errorf("add workout: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add workout: %w", err)
	}
	w.ID = id
	return id, nil
}

// GetWorkout retrieves a workout by ID.
func (c *Conn) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return w, err
}

// GetWorkoutByDate retrieves the workout for a YYYY-MM-DD date.
func (c *Conn) GetWorkoutByDate(ctx context.Context, date string) (*models.Workout, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE date = ?`, date)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workout on %s: %w", date, ErrNotFound)
	}
	return w, err
}

// ListWorkouts returns all workouts, most recent date first.
func (c *Conn) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	return c.queryWorkouts(ctx, `SELECT `+workoutColumns+` FROM workouts ORDER BY date DESC`)
}

// ListWorkoutsBetween returns workouts with from <= date <= to in date order.
// An empty bound is open.
func (c *Conn) ListWorkoutsBetween(ctx context.Context, from, to string) ([]models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE 1 = 1`
	var args []any
	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date ASC`
	return c.queryWorkouts(ctx, query, args...)
}

// UpdateWorkoutExercises replaces a workout's exercise list if its version
// still equals expectedVersion. It returns ErrConflict when another writer
// got there first and ErrNotFound when the workout is gone.
func (c *Conn) UpdateWorkoutExercises(ctx context.Context, id int64, exercises []models.WorkoutExercise, expectedVersion int64) error {
	if exercises == nil {
		exercises = []models.WorkoutExercise{}
	}
	data, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("encode workout exercises: %w", err)
	}

	res, err := c.q.ExecContext(ctx, `
		UPDATE workouts SET exercises = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, string(data), id, expectedVersion)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	if _, err := c.GetWorkout(ctx, id); err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	return fmt.Errorf("update workout %d: %w", id, ErrConflict)
}

// DeleteWorkout removes a workout and every set it holds.
func (c *Conn) DeleteWorkout(ctx context.Context, id int64) error {
	return c.deleteByID(ctx, "workouts", id)
}

// BulkAddWorkouts inserts workouts as given, keeping IDs and timestamps.
func (c *Conn) BulkAddWorkouts(ctx context.Context, workouts []models.Workout) error {
	for i := range workouts {
		w := &workouts[i]
		if w.Exercises == nil {
			w.Exercises = []models.WorkoutExercise{}
		}
		if w.CreatedAt.IsZero() {
			w.CreatedAt = now()
		}
		data, err := json.Marshal(w.Exercises)
		if err != nil {
			return fmt.Errorf("encode workout exercises: %w", err)
		}
		res, err := c.q.ExecContext(ctx, `
			INSERT INTO workouts (id, date, exercises, version, created_at)
			VALUES (?, ?, ?, 0, ?)
		`, nullID(w.ID), w.Date, string(data), formatTime(w.CreatedAt))
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("bulk add workout %s: %w", w.Date, ErrDuplicateDate)
			}
			return fmt.Errorf("bulk add workout %s: %w", w.Date, err)
		}
		if w.ID == 0 {
			if w.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("bulk add workout %s: %w", w.Date, err)
			}
		}
	}
	return nil
}

// ClearWorkouts removes every workout.
func (c *Conn) ClearWorkouts(ctx context.Context) error {
	return c.clear(ctx, "workouts")
}

// CountWorkouts returns the number of workouts.
func (c *Conn) CountWorkouts(ctx context.Context) (int, error) {
	return c.count(ctx, "workouts")
}

// MutateWorkout runs a read-modify-write cycle on one workout. fn edits the
// workout in place and reports whether anything changed; unchanged workouts
// are not written. When a concurrent writer bumps the version between read
// and write the cycle is retried with fresh data.
func (d *DB) MutateWorkout(ctx context.Context, id int64, fn func(w *models.Workout) (bool, error)) (*models.Workout, error) {
	c := d.Conn()
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		w, err := c.GetWorkout(ctx, id)
		if err != nil {
			return nil, err
		}

		changed, err := fn(w)
		if err != nil {
			return nil, err
		}
		if !changed {
			return w, nil
		}

		err = c.UpdateWorkoutExercises(ctx, id, w.Exercises, w.Version)
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		w.Version++
		return w, nil
	}
	return nil, fmt.Errorf("mutate workout %d after %d attempts: %w", id, maxMutateAttempts, ErrConflict)
}

func (c *Conn) queryWorkouts(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	var out []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var exercises, createdAt string

	if err := row.Scan(&w.ID, &w.Date, &exercises, &w.Version, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}
	if err := json.Unmarshal([]byte(exercises), &w.Exercises); err != nil {
		return nil, fmt.Errorf("decode workout %d exercises: %w", w.ID, err)
	}
	if w.Exercises == nil {
		w.Exercises = []models.WorkoutExercise{}
	}
	for i := range w.Exercises {
		if w.Exercises[i].Sets == nil {
			w.Exercises[i].Sets = []models.Set{}
		}
	}
	w.CreatedAt = parseTime(createdAt)
	return &w, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
