// ABOUTME: Routine model, a reusable ordered list of exercises.
// ABOUTME: Starting a routine turns it into the exercises of a workout.
package models

import "time"

// DefaultRoutineColor is used when a routine is created without a color.
const DefaultRoutineColor = "#3b82f6"

// Routine is a named workout template.
type Routine struct {
	ID          int64             `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string            `json:"color" yaml:"color"`
	Exercises   []RoutineExercise `json:"exercises" yaml:"exercises"`
	CreatedAt   time.Time         `json:"createdAt" yaml:"createdAt"`
}

// RoutineExercise references a catalog exercise with an optional set template.
type RoutineExercise struct {
	ExerciseID int64        `json:"exerciseId" yaml:"exerciseId"`
	Template   *SetTemplate `json:"template,omitempty" yaml:"template,omitempty"`
}

// SetTemplate holds the target values of a planned set.
type SetTemplate struct {
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Reps     *int     `json:"reps,omitempty" yaml:"reps,omitempty"`
	Distance *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	TimeSec  *int     `json:"timeSec,omitempty" yaml:"timeSec,omitempty"`
	Note     string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewRoutine creates a routine over the given exercise IDs.
func NewRoutine(name string, exerciseIDs ...int64) *Routine {
	r := &Routine{Name: name, Color: DefaultRoutineColor, Exercises: []RoutineExercise{}}
	for _, id := range exerciseIDs {
		r.Exercises = append(r.Exercises, RoutineExercise{ExerciseID: id})
	}
	return r
}

// WithDescription sets the routine description.
func (r *Routine) WithDescription(d string) *Routine {
	r.Description = d
	return r
}

// WithColor sets the display color.
func (r *Routine) WithColor(c string) *Routine {
	r.Color = c
	return r
}

// WorkoutExercises returns the routine's exercises as empty workout entries,
// skipping repeated exercise IDs.
func (r *Routine) WorkoutExercises() []WorkoutExercise {
	out := make([]WorkoutExercise, 0, len(r.Exercises))
	seen := make(map[int64]bool)
	for _, re := range r.Exercises {
		if seen[re.ExerciseID] {
			continue
		}
		seen[re.ExerciseID] = true
		out = append(out, WorkoutExercise{ExerciseID: re.ExerciseID, Sets: []Set{}})
	}
	return out
}

// RoutinePatch holds optional field changes for a routine update.
type RoutinePatch struct {
	Name        *string
	Description *string
	Color       *string
	Exercises   []RoutineExercise
}

// Apply copies the set fields of the patch onto r.
func (p RoutinePatch) Apply(r *Routine) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Color != nil {
		r.Color = *p.Color
	}
	if p.Exercises != nil {
		r.Exercises = p.Exercises
	}
}
