// ABOUTME: Repository interface over the fitnotes storage engine.
// ABOUTME: Codecs and the seeder depend on it rather than on *DB directly.
package storage

import (
	"context"

	"github.com/harperreed/fitnotes/internal/models"
)

// Repository is the storage surface used above the engine: a plain handle
// for reads, atomic transactions for multi-collection writes, the
// optimistic workout mutation protocol and serialized settings updates.
type Repository interface {
	Conn() *Conn
	InTx(ctx context.Context, fn func(c *Conn) error) error
	MutateWorkout(ctx context.Context, id int64, fn func(w *models.Workout) (bool, error)) (*models.Workout, error)
	UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
	Close() error
}

var _ Repository = (*DB)(nil)

// Counts holds the number of records per collection.
type Counts struct {
	Exercises    int `json:"exercises"`
	Workouts     int `json:"workouts"`
	Measurements int `json:"measurements"`
	Routines     int `json:"routines"`
}

// Counts returns record counts for the four content collections.
func (c *Conn) Counts(ctx context.Context) (Counts, error) {
	var out Counts
	var err error
	if out.Exercises, err = c.CountExercises(ctx); err != nil {
		return out, err
	}
	if out.Workouts, err = c.CountWorkouts(ctx); err != nil {
		return out, err
	}
	if out.Measurements, err = c.CountMeasurements(ctx); err != nil {
		return out, err
	}
	if out.Routines, err = c.CountRoutines(ctx); err != nil {
		return out, err
	}
	return out, nil
}

// ClearAll empties every collection including settings. Call it inside InTx.
func (c *Conn) ClearAll(ctx context.Context) error {
	clears := []func(context.Context) error{
		c.ClearWorkouts, c.ClearExercises, c.ClearMeasurements, c.ClearRoutines, c.ClearSettings,
	}
	for _, fn := range clears {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}
