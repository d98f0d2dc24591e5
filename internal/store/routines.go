// ABOUTME: Routine operations and starting a workout from a routine.
// ABOUTME: Starting a routine merges its exercises into the date's workout.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
)

// AddRoutine saves a routine.
func (s *Store) AddRoutine(ctx context.Context, r *models.Routine) (int64, error) {
	if strings.TrimSpace(r.Name) == "" {
		return 0, fmt.Errorf("%w: routine name is required", ErrInvalid)
	}
	if r.Color == "" {
		r.Color = models.DefaultRoutineColor
	}
	return s.repo.Conn().AddRoutine(ctx, r)
}

// GetRoutine reads a routine by ID.
func (s *Store) GetRoutine(ctx context.Context, id int64) (*models.Routine, error) {
	return s.repo.Conn().GetRoutine(ctx, id)
}

// ListRoutines returns routines, newest first.
func (s *Store) ListRoutines(ctx context.Context) ([]models.Routine, error) {
	return s.repo.Conn().ListRoutines(ctx)
}

// UpdateRoutine applies patch to a routine.
func (s *Store) UpdateRoutine(ctx context.Context, id int64, patch models.RoutinePatch) error {
	return s.repo.Conn().UpdateRoutine(ctx, id, patch)
}

// DeleteRoutine removes a routine.
func (s *Store) DeleteRoutine(ctx context.Context, id int64) error {
	return s.repo.Conn().DeleteRoutine(ctx, id)
}

// StartRoutine puts the routine's exercises, with no sets, into the workout
// for date. A new workout is created when the date has none; otherwise
// exercises it already holds are left alone.
func (s *Store) StartRoutine(ctx context.Context, routineID int64, date string) (*models.Workout, error) {
	r, err := s.repo.Conn().GetRoutine(ctx, routineID)
	if err != nil {
		return nil, err
	}

	id, err := s.CreateWorkout(ctx, date, r.WorkoutExercises()...)
	if err == nil {
		return s.repo.Conn().GetWorkout(ctx, id)
	}
	if !errors.Is(err, storage.ErrDuplicateDate) {
		return nil, err
	}

	existing, err := s.LoadWorkoutByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	err = s.mutate(ctx, existing.ID, func(w *models.Workout) (bool, error) {
		changed := false
		for _, we := range r.WorkoutExercises() {
			if !w.HasExercise(we.ExerciseID) {
				w.Exercises = append(w.Exercises, we)
				changed = true
			}
		}
		return changed, nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.Conn().GetWorkout(ctx, existing.ID)
}
