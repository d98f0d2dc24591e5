// ABOUTME: Entity store operations over the storage engine with an in-memory replica.
// ABOUTME: Every mutation writes through storage first and then refreshes the replica.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitnotes/internal/kvstore"
	"github.com/harperreed/fitnotes/internal/logger"
	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
)

var (
	// ErrWorkoutNotFound is returned when a workout ID does not resolve.
	ErrWorkoutNotFound = fmt.Errorf("workout %w", storage.ErrNotFound)

	// ErrSetTypeMismatch is returned when set values do not fit the
	// exercise's type.
	ErrSetTypeMismatch = errors.New("set values do not match exercise type")

	// ErrInvalid is returned for malformed input such as a bad date.
	ErrInvalid = errors.New("invalid input")
)

// Store is the entry point for reading and mutating fitness data. Construct
// one per database with New.
type Store struct {
	repo storage.Repository
	kv   *kvstore.Store
	log  *log.Logger

	mu        sync.RWMutex
	workouts  []models.Workout  // date descending
	exercises []models.Exercise // name ascending
	settings  models.Settings
}

// New creates a store. Settings start from the side-store mirror when one
// is present, so they can be read before Load; Load then replaces them with
// the settings row. kv may be nil, in which case the mirror is not used.
func New(repo storage.Repository, kv *kvstore.Store, l *log.Logger) *Store {
	s := &Store{
		repo:     repo,
		kv:       kv,
		log:      logger.OrDiscard(l),
		settings: models.DefaultSettings(),
	}
	if kv != nil {
		mirror, err := kv.LoadSettings()
		switch {
		case err != nil:
			s.log.Warn("read settings mirror", "err", err)
		case mirror != nil:
			s.settings = *mirror
		}
	}
	return s
}

// Repository returns the underlying storage.
func (s *Store) Repository() storage.Repository {
	return s.repo
}

// Load fills the replica from storage, repairing a missing settings row and
// refreshing the settings mirror.
func (s *Store) Load(ctx context.Context) error {
	if _, err := s.LoadSettings(ctx); err != nil {
		return err
	}
	if err := s.LoadExercises(ctx); err != nil {
		return err
	}
	return s.LoadWorkouts(ctx)
}

// LoadWorkouts replaces the workout replica with the stored workouts.
func (s *Store) LoadWorkouts(ctx context.Context) error {
	workouts, err := s.repo.Conn().ListWorkouts(ctx)
	if err != nil {
		return fmt.Errorf("load workouts: %w", err)
	}
	s.mu.Lock()
	s.workouts = workouts
	s.mu.Unlock()
	return nil
}

// LoadExercises replaces the exercise replica with the stored catalog.
func (s *Store) LoadExercises(ctx context.Context) error {
	exercises, err := s.repo.Conn().ListExercises(ctx)
	if err != nil {
		return fmt.Errorf("load exercises: %w", err)
	}
	s.mu.Lock()
	s.exercises = exercises
	s.mu.Unlock()
	return nil
}

// Workouts returns a copy of all workouts, most recent first.
func (s *Store) Workouts() []models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Workout, len(s.workouts))
	for i, w := range s.workouts {
		out[i] = w.Clone()
	}
	return out
}

// Exercises returns a copy of the exercise catalog ordered by name.
func (s *Store) Exercises() []models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Exercise(nil), s.exercises...)
}

// Counts returns the number of stored records per collection.
func (s *Store) Counts(ctx context.Context) (storage.Counts, error) {
	return s.repo.Conn().Counts(ctx)
}

func (s *Store) upsertWorkout(w models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workouts {
		if s.workouts[i].ID == w.ID {
			s.workouts[i] = w
			return
		}
	}
	s.workouts = append(s.workouts, w)
	sort.SliceStable(s.workouts, func(i, j int) bool {
		return s.workouts[i].Date > s.workouts[j].Date
	})
}

func (s *Store) dropWorkout(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.workouts {
		if s.workouts[i].ID == id {
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			return
		}
	}
}
