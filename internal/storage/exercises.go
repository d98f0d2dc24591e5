// ABOUTME: Exercise catalog CRUD operations for SQLite storage.
// ABOUTME: Supports case-insensitive name lookup used by CSV import.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fitnotes/internal/models"
)

const exerciseColumns = `id, name, category, type, notes, custom, created_at`

// now is the clock used to stamp created_at on add.
var now = func() time.Time { return time.Now().UTC() }

// AddExercise stores a new exercise, stamping CreatedAt, and sets e.ID.
func (c *Conn) AddExercise(ctx context.Context, e *models.Exercise) (int64, error) {
	e.CreatedAt = now()
	res, err := c.q.ExecContext(ctx, `
		INSERT INTO exercises (name, category, type, notes, custom, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Name, e.Category, string(e.Type), nullString(e.Notes), e.Custom, formatTime(e.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("add exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add exercise: %w", err)
	}
	e.ID = id
	return id, nil
}

// GetExercise retrieves an exercise by ID.
func (c *Conn) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id)
	e, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	return e, err
}

// FindExerciseByName looks an exercise up by name, ignoring case with the
// same folding as models.ExerciseNameKey. The earliest-created match wins.
func (c *Conn) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT `+exerciseColumns+` FROM exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	defer rows.Close()

	key := models.ExerciseNameKey(name)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		if models.ExerciseNameKey(e.Name) == key {
			return e, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find exercise: %w", err)
	}
	return nil, fmt.Errorf("exercise %q: %w", name, ErrNotFound)
}

// ListExercises returns all exercises ordered by name.
func (c *Conn) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := c.q.QueryContext(ctx, `SELECT `+exerciseColumns+` FROM exercises ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// UpdateExercise applies patch to an existing exercise.
func (c *Conn) UpdateExercise(ctx context.Context, id int64, patch models.ExercisePatch) error {
	e, err := c.GetExercise(ctx, id)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	patch.Apply(e)
	_, err = c.q.ExecContext(ctx, `
		UPDATE exercises SET name = ?, category = ?, type = ?, notes = ? WHERE id = ?
	`, e.Name, e.Category, string(e.Type), nullString(e.Notes), id)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return nil
}

// DeleteExercise removes an exercise. Workouts referencing it keep the ID.
func (c *Conn) DeleteExercise(ctx context.Context, id int64) error {
	return c.deleteByID(ctx, "exercises", id)
}

// BulkAddExercises inserts exercises as given, keeping IDs and timestamps.
// A zero ID is assigned by the database and a zero CreatedAt is stamped.
func (c *Conn) BulkAddExercises(ctx context.Context, exercises []models.Exercise) error {
	for i := range exercises {
		e := &exercises[i]
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now()
		}
		res, err := c.q.ExecContext(ctx, `
			INSERT INTO exercises (id, name, category, type, notes, custom, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, nullID(e.ID), e.Name, e.Category, string(e.Type), nullString(e.Notes), e.Custom, formatTime(e.CreatedAt))
		if err != nil {
			return fmt.Errorf("bulk add exercise %q: %w", e.Name, err)
		}
		if e.ID == 0 {
			if e.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("bulk add exercise %q: %w", e.Name, err)
			}
		}
	}
	return nil
}

// ClearExercises removes every exercise.
func (c *Conn) ClearExercises(ctx context.Context) error {
	return c.clear(ctx, "exercises")
}

// CountExercises returns the number of exercises.
func (c *Conn) CountExercises(ctx context.Context) (int, error) {
	return c.count(ctx, "exercises")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var typ, createdAt string
	var notes sql.NullString

	if err := row.Scan(&e.ID, &e.Name, &e.Category, &typ, &notes, &e.Custom, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	e.Type = models.ExerciseType(typ)
	e.Notes = notes.String
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}
