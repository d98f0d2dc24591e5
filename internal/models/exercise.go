// ABOUTME: Exercise catalog model and the ExerciseType enum.
// ABOUTME: Exercise type decides which set fields are meaningful for a set.
package models

import (
	"strings"
	"time"
)

// ExerciseType describes how sets of an exercise are recorded.
type ExerciseType string

const (
	TypeWeightReps   ExerciseType = "weight_reps"
	TypeDistanceTime ExerciseType = "distance_time"
	TypeTimeOnly     ExerciseType = "time_only"
	TypeRepsOnly     ExerciseType = "reps_only"
	TypeBodyweight   ExerciseType = "bodyweight"
)

// AllExerciseTypes lists every valid exercise type.
var AllExerciseTypes = []ExerciseType{
	TypeWeightReps, TypeDistanceTime, TypeTimeOnly, TypeRepsOnly, TypeBodyweight,
}

// IsValidExerciseType checks if a string is a valid exercise type.
func IsValidExerciseType(s string) bool {
	for _, et := range AllExerciseTypes {
		if string(et) == s {
			return true
		}
	}
	return false
}

// Exercise is a catalog entry that workouts reference by ID.
type Exercise struct {
	ID        int64        `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Category  string       `json:"category" yaml:"category"`
	Type      ExerciseType `json:"type" yaml:"type"`
	Notes     string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Custom    bool         `json:"custom" yaml:"custom"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
}

// NewExercise creates a catalog exercise. CreatedAt is stamped by storage.
func NewExercise(name, category string, t ExerciseType) *Exercise {
	return &Exercise{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Type:     t,
	}
}

// WithNotes sets notes on the exercise.
func (e *Exercise) WithNotes(notes string) *Exercise {
	e.Notes = notes
	return e
}

// AsCustom marks the exercise as user-created.
func (e *Exercise) AsCustom() *Exercise {
	e.Custom = true
	return e
}

// ExercisePatch holds optional field changes for an exercise update.
type ExercisePatch struct {
	Name     *string
	Category *string
	Type     *ExerciseType
	Notes    *string
}

// Apply copies the set fields of the patch onto e.
func (p ExercisePatch) Apply(e *Exercise) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
}

// NormalizeCategory trims, collapses inner whitespace and lowercases a
// category name so that "  upper   BODY " and "Upper Body" compare equal.
func NormalizeCategory(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ExerciseNameKey folds an exercise name for case-insensitive matching.
// Every name lookup compares keys built here.
func ExerciseNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CategoryDisplayName title-cases each word of a normalized category.
func CategoryDisplayName(s string) string {
	words := strings.Fields(NormalizeCategory(s))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
