// ABOUTME: Workout model with embedded exercises and their sets.
// ABOUTME: A workout is keyed by calendar date and mutated in place.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for workouts and measurements.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Workout is one training session, at most one per date.
type Workout struct {
	ID        int64             `json:"id" yaml:"id"`
	Date      string            `json:"date" yaml:"date"`
	Exercises []WorkoutExercise `json:"exercises" yaml:"exercises"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt"`

	// Version is the optimistic concurrency counter; it is not part of backups.
	Version int64 `json:"-" yaml:"-"`
}

// WorkoutExercise is an exercise performed within a workout.
type WorkoutExercise struct {
	ExerciseID int64 `json:"exerciseId" yaml:"exerciseId"`
	Sets       []Set `json:"sets" yaml:"sets"`
}

// NewWorkout creates a workout for the given date.
func NewWorkout(date string, exercises ...WorkoutExercise) *Workout {
	if exercises == nil {
		exercises = []WorkoutExercise{}
	}
	return &Workout{Date: date, Exercises: exercises}
}

// Exercise returns the entry for exerciseID, or nil.
func (w *Workout) Exercise(exerciseID int64) *WorkoutExercise {
	for i := range w.Exercises {
		if w.Exercises[i].ExerciseID == exerciseID {
			return &w.Exercises[i]
		}
	}
	return nil
}

// HasExercise reports whether exerciseID is already part of the workout.
func (w *Workout) HasExercise(exerciseID int64) bool {
	return w.Exercise(exerciseID) != nil
}

// SetCount returns the total number of sets across all exercises.
func (w *Workout) SetCount() int {
	n := 0
	for _, we := range w.Exercises {
		n += len(we.Sets)
	}
	return n
}

// Clone returns a deep copy of w.
func (w Workout) Clone() Workout {
	out := w
	out.Exercises = make([]WorkoutExercise, len(w.Exercises))
	for i, we := range w.Exercises {
		out.Exercises[i] = WorkoutExercise{
			ExerciseID: we.ExerciseID,
			Sets:       append([]Set(nil), we.Sets...),
		}
		if out.Exercises[i].Sets == nil {
			out.Exercises[i].Sets = []Set{}
		}
	}
	return out
}

// Set is a single recorded set. Which optional fields carry values depends on
// the owning exercise's type; Values interprets them.
type Set struct {
	ID        string    `json:"id" yaml:"id"`
	Weight    *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Reps      *int      `json:"reps,omitempty" yaml:"reps,omitempty"`
	Distance  *float64  `json:"distance,omitempty" yaml:"distance,omitempty"`
	TimeSec   *int      `json:"timeSec,omitempty" yaml:"timeSec,omitempty"`
	Note      string    `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// SameValues reports whether two sets carry identical weight, reps, distance
// and time. Notes are ignored.
func (s Set) SameValues(o Set) bool {
	return eqFloat(s.Weight, o.Weight) && eqInt(s.Reps, o.Reps) &&
		eqFloat(s.Distance, o.Distance) && eqInt(s.TimeSec, o.TimeSec)
}

// String renders the populated values, e.g. "80kg x 8".
func (s Set) String() string {
	switch {
	case s.Weight != nil && s.Reps != nil:
		return fmt.Sprintf("%gkg x %d", *s.Weight, *s.Reps)
	case s.Distance != nil && s.TimeSec != nil:
		return fmt.Sprintf("%gm in %s", *s.Distance, formatSeconds(*s.TimeSec))
	case s.TimeSec != nil:
		return formatSeconds(*s.TimeSec)
	case s.Reps != nil:
		return fmt.Sprintf("%d reps", *s.Reps)
	case s.Distance != nil:
		return fmt.Sprintf("%gm", *s.Distance)
	case s.Weight != nil:
		return fmt.Sprintf("%gkg", *s.Weight)
	}
	return "-"
}

// SetPatch holds optional field changes for a set update.
type SetPatch struct {
	Weight   *float64
	Reps     *int
	Distance *float64
	TimeSec  *int
	Note     *string
}

// Apply copies the set fields of the patch onto s.
func (p SetPatch) Apply(s *Set) {
	if p.Weight != nil {
		s.Weight = p.Weight
	}
	if p.Reps != nil {
		s.Reps = p.Reps
	}
	if p.Distance != nil {
		s.Distance = p.Distance
	}
	if p.TimeSec != nil {
		s.TimeSec = p.TimeSec
	}
	if p.Note != nil {
		s.Note = *p.Note
	}
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func formatSeconds(sec int) string {
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec%3600/60, sec%60)
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
