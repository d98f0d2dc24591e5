// ABOUTME: Routine CRUD operations for SQLite storage.
// ABOUTME: Routine exercises and set templates are stored as a JSON column.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/fitnotes/internal/models"
)

const routineColumns = `id, name, description, color, exercises, created_at`

// AddRoutine stores a new routine, stamping CreatedAt, and sets r.ID.
func (c *Conn) AddRoutine(ctx context.Context, r *models.Routine) (int64, error) {
	data, err := encodeRoutineExercises(r)
	if err != nil {
		return 0, err
	}
	r.CreatedAt = now()
	res, err := c.q.ExecContext(ctx, `
		INSERT INTO routines (name, description, color, exercises, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.Name, nullString(r.Description), r.Color, data, formatTime(r.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("add routine: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add routine: %w", err)
	}
	r.ID = id
	return id, nil
}

// GetRoutine retrieves a routine by ID.
func (c *Conn) GetRoutine(ctx context.Context, id int64) (*models.Routine, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+routineColumns+` FROM routines WHERE id = ?`, id)
	r, err := scanRoutine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("routine %d: %w", id, ErrNotFound)
	}
	return r, err
}

// ListRoutines returns all routines, newest first.
func (c *Conn) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT `+routineColumns+` FROM routines ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var out []models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// UpdateRoutine applies patch to an existing routine.
func (c *Conn) UpdateRoutine(ctx context.Context, id int64, patch models.RoutinePatch) error {
	r, err := c.GetRoutine(ctx, id)
	if err != nil {
		return fmt.Errorf("update routine: %w", err)
	}
	patch.Apply(r)
	data, err := encodeRoutineExercises(r)
	if err != nil {
		return err
	}
	_, err = c.q.ExecContext(ctx, `
		UPDATE routines SET name = ?, description = ?, color = ?, exercises = ? WHERE id = ?
	`, r.Name, nullString(r.Description), r.Color, data, id)
	if err != nil {
		return fmt.Errorf("update routine: %w", err)
	}
	return nil
}

// DeleteRoutine removes a routine.
func (c *Conn) DeleteRoutine(ctx context.Context, id int64) error {
	return c.deleteByID(ctx, "routines", id)
}

// BulkAddRoutines inserts routines as given, keeping IDs and timestamps.
func (c *Conn) BulkAddRoutines(ctx context.Context, routines []models.Routine) error {
	for i := range routines {
		r := &routines[i]
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now()
		}
		data, err := encodeRoutineExercises(r)
		if err != nil {
			return err
		}
		res, err := c.q.ExecContext(ctx, `
			INSERT INTO routines (id, name, description, color, exercises, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, nullID(r.ID), r.Name, nullString(r.Description), r.Color, data, formatTime(r.CreatedAt))
		if err != nil {
			return fmt.Errorf("bulk add routine %q: %w", r.Name, err)
		}
		if r.ID == 0 {
			if r.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("bulk add routine %q: %w", r.Name, err)
			}
		}
	}
	return nil
}

// ClearRoutines removes every routine.
func (c *Conn) ClearRoutines(ctx context.Context) error {
	return c.clear(ctx, "routines")
}

// CountRoutines returns the number of routines.
func (c *Conn) CountRoutines(ctx context.Context) (int, error) {
	return c.count(ctx, "routines")
}

func encodeRoutineExercises(r *models.Routine) (string, error) {
	if r.Exercises == nil {
		r.Exercises = []models.RoutineExercise{}
	}
	data, err := json.Marshal(r.Exercises)
	if err != nil {
		return "", fmt.Errorf("encode routine exercises: %w", err)
	}
	return string(data), nil
}

func scanRoutine(row rowScanner) (*models.Routine, error) {
	var r models.Routine
	var exercises, createdAt string
	var description sql.NullString

	if err := row.Scan(&r.ID, &r.Name, &description, &r.Color, &exercises, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan routine: %w", err)
	}
	if err := json.Unmarshal([]byte(exercises), &r.Exercises); err != nil {
		return nil, fmt.Errorf("decode routine %d exercises: %w", r.ID, err)
	}
	if r.Exercises == nil {
		r.Exercises = []models.RoutineExercise{}
	}
	r.Description = description.String
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}
