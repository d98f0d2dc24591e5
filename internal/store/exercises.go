// ABOUTME: Exercise catalog operations, category filters and personal bests.
// ABOUTME: Reads are served from the in-memory replica.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/fitnotes/internal/models"
)

// UnknownExerciseName is shown for workout entries whose catalog exercise
// was deleted.
const UnknownExerciseName = "Unknown Exercise"

// Pseudo-categories accepted by FilterExercises.
const (
	CategoryAll    = "All"
	CategoryCustom = "Custom"
)

// AddExercise adds a catalog exercise and returns its ID.
func (s *Store) AddExercise(ctx context.Context, e *models.Exercise) (int64, error) {
	if strings.TrimSpace(e.Name) == "" {
		return 0, fmt.Errorf("%w: exercise name is required", ErrInvalid)
	}
	if !models.IsValidExerciseType(string(e.Type)) {
		return 0, fmt.Errorf("%w: exercise type %q", ErrInvalid, e.Type)
	}
	id, err := s.repo.Conn().AddExercise(ctx, e)
	if err != nil {
		return 0, err
	}
	return id, s.LoadExercises(ctx)
}

// UpdateExercise applies patch to a catalog exercise.
func (s *Store) UpdateExercise(ctx context.Context, id int64, patch models.ExercisePatch) error {
	if patch.Type != nil && !models.IsValidExerciseType(string(*patch.Type)) {
		return fmt.Errorf("%w: exercise type %q", ErrInvalid, *patch.Type)
	}
	if err := s.repo.Conn().UpdateExercise(ctx, id, patch); err != nil {
		return err
	}
	return s.LoadExercises(ctx)
}

// DeleteExercise removes a catalog exercise. Workouts keep their entries,
// which then render as UnknownExerciseName.
func (s *Store) DeleteExercise(ctx context.Context, id int64) error {
	if err := s.repo.Conn().DeleteExercise(ctx, id); err != nil {
		return err
	}
	return s.LoadExercises(ctx)
}

// Exercise returns the replica's exercise with the given ID.
func (s *Store) Exercise(id int64) (models.Exercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exercise{}, false
}

// ExerciseName returns the exercise's name or UnknownExerciseName.
func (s *Store) ExerciseName(id int64) string {
	if e, ok := s.Exercise(id); ok {
		return e.Name
	}
	return UnknownExerciseName
}

// Categories returns the distinct categories in the catalog, sorted.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, e := range s.exercises {
		if e.Category != "" && !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}

// FilterExercises returns catalog exercises whose name contains query
// (ignoring case) within category. An empty category or CategoryAll matches
// everything; CategoryCustom matches user-created exercises.
func (s *Store) FilterExercises(query, category string) []models.Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := models.NormalizeCategory(category)

	var out []models.Exercise
	for _, e := range s.Exercises() {
		switch cat {
		case "", strings.ToLower(CategoryAll):
		case strings.ToLower(CategoryCustom):
			if !e.Custom {
				continue
			}
		default:
			if models.NormalizeCategory(e.Category) != cat {
				continue
			}
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Bests are an exercise's personal records across all workouts.
type Bests struct {
	OneRepMax     float64 `json:"oneRepMax"`
	OneRepMaxDate string  `json:"oneRepMaxDate,omitempty"`
	Reps          int     `json:"reps"`
	RepsDate      string  `json:"repsDate,omitempty"`
}

// PersonalBests scans the replica for the best estimated one-rep max and
// the most reps recorded for exerciseID.
func (s *Store) PersonalBests(exerciseID int64) Bests {
	var b Bests
	workouts := s.Workouts()
	// Oldest first so that ties keep the date the record was first set.
	for i := len(workouts) - 1; i >= 0; i-- {
		w := workouts[i]
		we := w.Exercise(exerciseID)
		if we == nil {
			continue
		}
		for _, set := range we.Sets {
			if models.IsWeightRepsPR(b.OneRepMax, set) {
				b.OneRepMax = models.Epley1RM(*set.Weight, *set.Reps)
				b.OneRepMaxDate = w.Date
			}
			if models.IsRepsPR(b.Reps, set) {
				b.Reps = *set.Reps
				b.RepsDate = w.Date
			}
		}
	}
	return b
}
