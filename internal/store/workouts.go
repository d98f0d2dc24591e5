// ABOUTME: Workout operations: creation, nested exercise and set mutation, date lookups.
// ABOUTME: Nested writes go through storage.MutateWorkout so concurrent callers keep every update.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
)

// CreateWorkout inserts a workout for date with optional initial exercises.
// Only one workout may exist per date; a second returns storage.ErrDuplicateDate.
func (s *Store) CreateWorkout(ctx context.Context, date string, exercises ...models.WorkoutExercise) (int64, error) {
	if !models.ValidDate(date) {
		return 0, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, date)
	}

	w := models.NewWorkout(date, dedupeExercises(exercises)...)
	id, err := s.repo.Conn().AddWorkout(ctx, w)
	if err != nil {
		return 0, err
	}
	s.upsertWorkout(*w)
	s.log.Debug("workout created", "id", id, "date", date)
	return id, nil
}

// GetOrCreateWorkout returns the workout for date, creating an empty one if
// none exists.
func (s *Store) GetOrCreateWorkout(ctx context.Context, date string) (*models.Workout, error) {
	w, err := s.LoadWorkoutByDate(ctx, date)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	id, err := s.CreateWorkout(ctx, date)
	if errors.Is(err, storage.ErrDuplicateDate) {
		return s.LoadWorkoutByDate(ctx, date)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Conn().GetWorkout(ctx, id)
}

// LoadWorkoutByDate reads the workout for date from storage.
func (s *Store) LoadWorkoutByDate(ctx context.Context, date string) (*models.Workout, error) {
	return s.repo.Conn().GetWorkoutByDate(ctx, date)
}

// GetWorkout reads a workout by ID from storage.
func (s *Store) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	w, err := s.repo.Conn().GetWorkout(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("get workout %d: %w", id, ErrWorkoutNotFound)
	}
	return w, err
}

// GetWorkoutByDate returns the replica's workout for date.
func (s *Store) GetWorkoutByDate(date string) (models.Workout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workouts {
		if w.Date == date {
			return w.Clone(), true
		}
	}
	return models.Workout{}, false
}

// GetWorkoutDates returns every distinct workout date in ascending order.
func (s *Store) GetWorkoutDates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool, len(s.workouts))
	dates := make([]string, 0, len(s.workouts))
	for _, w := range s.workouts {
		if !seen[w.Date] {
			seen[w.Date] = true
			dates = append(dates, w.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// WorkoutsBetween returns stored workouts in [from, to] by date ascending.
func (s *Store) WorkoutsBetween(ctx context.Context, from, to string) ([]models.Workout, error) {
	return s.repo.Conn().ListWorkoutsBetween(ctx, from, to)
}

// DeleteWorkout removes a workout with all of its sets.
func (s *Store) DeleteWorkout(ctx context.Context, id int64) error {
	if err := s.repo.Conn().DeleteWorkout(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("delete workout %d: %w", id, ErrWorkoutNotFound)
		}
		return err
	}
	s.dropWorkout(id)
	return nil
}

// UpdateWorkoutExercises replaces a workout's exercise list. Repeated
// exercise IDs are collapsed to their first entry.
func (s *Store) UpdateWorkoutExercises(ctx context.Context, workoutID int64, exercises []models.WorkoutExercise) error {
	return s.mutate(ctx, workoutID, func(w *models.Workout) (bool, error) {
		w.Exercises = dedupeExercises(exercises)
		return true, nil
	})
}

// AddExerciseToWorkout appends an empty entry for exerciseID. It is a no-op
// if the workout already contains the exercise.
func (s *Store) AddExerciseToWorkout(ctx context.Context, workoutID, exerciseID int64) error {
	return s.mutate(ctx, workoutID, func(w *models.Workout) (bool, error) {
		if w.HasExercise(exerciseID) {
			return false, nil
		}
		w.Exercises = append(w.Exercises, models.WorkoutExercise{ExerciseID: exerciseID, Sets: []models.Set{}})
		return true, nil
	})
}

// RemoveExerciseFromWorkout drops the exercise entry and its sets. The
// catalog exercise itself is kept.
func (s *Store) RemoveExerciseFromWorkout(ctx context.Context, workoutID, exerciseID int64) error {
	return s.mutate(ctx, workoutID, func(w *models.Workout) (bool, error) {
		kept := w.Exercises[:0]
		for _, we := range w.Exercises {
			if we.ExerciseID != exerciseID {
				kept = append(kept, we)
			}
		}
		changed := len(kept) != len(w.Exercises)
		w.Exercises = kept
		return changed, nil
	})
}

// AddSetToExercise records a new set with a fresh ID on the workout's entry
// for exerciseID, creating the entry when the workout does not have one yet.
// If the exercise is in the catalog, the values must match its type.
func (s *Store) AddSetToExercise(ctx context.Context, workoutID, exerciseID int64, v models.SetValues, note string) (models.Set, error) {
	if ex, ok := s.Exercise(exerciseID); ok && v != nil && v.Kind() != ex.Type {
		return models.Set{}, fmt.Errorf("%w: %s is %s, got %s", ErrSetTypeMismatch, ex.Name, ex.Type, v.Kind())
	}
	set, err := models.NewSet(v, note)
	if err != nil {
		return models.Set{}, err
	}

	err = s.mutate(ctx, workoutID, func(w *models.Workout) (bool, error) {
		if we := w.Exercise(exerciseID); we != nil {
			we.Sets = append(we.Sets, set)
			return true, nil
		}
		w.Exercises = append(w.Exercises, models.WorkoutExercise{ExerciseID: exerciseID, Sets: []models.Set{set}})
		return true, nil
	})
	if err != nil {
		return models.Set{}, err
	}
	return set, nil
}

// UpdateSet applies patch to the set identified by the triple. A triple that
// matches no set is a no-op.
func (s *Store) UpdateSet(ctx context.Context, workoutID, exerciseID int64, setID string, patch models.SetPatch) error {
	return s.mutate(ctx, workoutID, func(w *models.Workout) (bool, error) {
		we := w.Exercise(exerciseID)
		if we == nil {
			return false, nil
		}
		for i := range we.Sets {
			if we.Sets[i].ID == setID {
				patch.Apply(&we.Sets[i])
				return true, nil
			}
		}
		return false, nil
	})
}

// DeleteSet removes the set identified by the triple. A triple that matches
// no set is a no-op.
func (s *Store) DeleteSet(ctx context.Context, workoutID, exerciseID int64, setID string) error {
	return s.mutate(ctx, workoutID, func(w *models.Workout) (bool, error) {
		we := w.Exercise(exerciseID)
		if we == nil {
			return false, nil
		}
		for i := range we.Sets {
			if we.Sets[i].ID == setID {
				we.Sets = append(we.Sets[:i], we.Sets[i+1:]...)
				return true, nil
			}
		}
		return false, nil
	})
}

// mutate runs fn through the optimistic read-modify-write protocol and
// refreshes the replica with the result.
func (s *Store) mutate(ctx context.Context, workoutID int64, fn func(w *models.Workout) (bool, error)) error {
	var fnErr error
	w, err := s.repo.MutateWorkout(ctx, workoutID, func(w *models.Workout) (bool, error) {
		changed, err := fn(w)
		fnErr = err
		return changed, err
	})
	if fnErr != nil {
		return fnErr
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("workout %d: %w", workoutID, ErrWorkoutNotFound)
	}
	if err != nil {
		return err
	}
	s.upsertWorkout(*w)
	return nil
}

func dedupeExercises(in []models.WorkoutExercise) []models.WorkoutExercise {
	out := make([]models.WorkoutExercise, 0, len(in))
	seen := make(map[int64]bool, len(in))
	for _, we := range in {
		if seen[we.ExerciseID] {
			continue
		}
		seen[we.ExerciseID] = true
		if we.Sets == nil {
			we.Sets = []models.Set{}
		}
		out = append(out, we)
	}
	return out
}
