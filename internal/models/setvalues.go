// ABOUTME: Typed set values, one variant per exercise type.
// ABOUTME: Converts between the variants and the flat Set fields and validates ranges.
package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Value limits accepted when recording a set by hand.
const (
	MinWeight   = 0.1
	MaxWeight   = 1000.0
	MinReps     = 1
	MaxReps     = 1000
	MinTimeSec  = 1
	MaxTimeSec  = 86400
	MinDistance = 0.1
	MaxDistance = 999.9
)

// ErrSetValues is returned when a set's fields do not fit its exercise type.
var ErrSetValues = errors.New("invalid set values")

// SetValues is the closed set of value shapes a set can hold. The concrete
// type matches the exercise type it belongs to.
type SetValues interface {
	Kind() ExerciseType
	Validate() error
	apply(s *Set)
}

// WeightReps is a loaded set, e.g. 80 kg for 8 reps.
type WeightReps struct {
	Weight float64
	Reps   int
}

// Bodyweight is a bodyweight set with optional added load.
type Bodyweight struct {
	Reps        int
	AddedWeight *float64
}

// TimeOnly is a timed hold or effort.
type TimeOnly struct {
	TimeSec int
}

// RepsOnly counts repetitions without load.
type RepsOnly struct {
	Reps int
}

// DistanceTime is a cardio effort over a distance in meters.
type DistanceTime struct {
	Distance float64
	TimeSec  int
}

func (WeightReps) Kind() ExerciseType   { return TypeWeightReps }
func (Bodyweight) Kind() ExerciseType   { return TypeBodyweight }
func (TimeOnly) Kind() ExerciseType     { return TypeTimeOnly }
func (RepsOnly) Kind() ExerciseType     { return TypeRepsOnly }
func (DistanceTime) Kind() ExerciseType { return TypeDistanceTime }

func (v WeightReps) Validate() error {
	if err := checkWeight(v.Weight); err != nil {
		return err
	}
	return checkReps(v.Reps)
}

func (v Bodyweight) Validate() error {
	if v.AddedWeight != nil {
		if err := checkWeight(*v.AddedWeight); err != nil {
			return err
		}
	}
	return checkReps(v.Reps)
}

func (v TimeOnly) Validate() error { return checkTime(v.TimeSec) }

func (v RepsOnly) Validate() error { return checkReps(v.Reps) }

func (v DistanceTime) Validate() error {
	if v.Distance < MinDistance || v.Distance > MaxDistance {
		return fmt.Errorf("%w: distance must be between %g and %g", ErrSetValues, MinDistance, MaxDistance)
	}
	return checkTime(v.TimeSec)
}

func (v WeightReps) apply(s *Set) {
	s.Weight = &v.Weight
	s.Reps = &v.Reps
}

func (v Bodyweight) apply(s *Set) {
	s.Reps = &v.Reps
	s.Weight = v.AddedWeight
}

func (v TimeOnly) apply(s *Set) { s.TimeSec = &v.TimeSec }

func (v RepsOnly) apply(s *Set) { s.Reps = &v.Reps }

func (v DistanceTime) apply(s *Set) {
	s.Distance = &v.Distance
	s.TimeSec = &v.TimeSec
}

// NewSet validates v and builds a set with a fresh globally unique ID.
func NewSet(v SetValues, note string) (Set, error) {
	if v == nil {
		return Set{}, fmt.Errorf("%w: no values", ErrSetValues)
	}
	if err := v.Validate(); err != nil {
		return Set{}, err
	}
	s := Set{
		ID:        uuid.NewString(),
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	v.apply(&s)
	return s, nil
}

// Values interprets the flat fields of s for an exercise of type t.
func (s Set) Values(t ExerciseType) (SetValues, error) {
	switch t {
	case TypeWeightReps:
		if s.Weight == nil || s.Reps == nil {
			return nil, fmt.Errorf("%w: %s needs weight and reps", ErrSetValues, t)
		}
		return WeightReps{Weight: *s.Weight, Reps: *s.Reps}, nil
	case TypeBodyweight:
		if s.Reps == nil {
			return nil, fmt.Errorf("%w: %s needs reps", ErrSetValues, t)
		}
		return Bodyweight{Reps: *s.Reps, AddedWeight: s.Weight}, nil
	case TypeTimeOnly:
		if s.TimeSec == nil {
			return nil, fmt.Errorf("%w: %s needs time", ErrSetValues, t)
		}
		return TimeOnly{TimeSec: *s.TimeSec}, nil
	case TypeRepsOnly:
		if s.Reps == nil {
			return nil, fmt.Errorf("%w: %s needs reps", ErrSetValues, t)
		}
		return RepsOnly{Reps: *s.Reps}, nil
	case TypeDistanceTime:
		if s.Distance == nil || s.TimeSec == nil {
			return nil, fmt.Errorf("%w: %s needs distance and time", ErrSetValues, t)
		}
		return DistanceTime{Distance: *s.Distance, TimeSec: *s.TimeSec}, nil
	}
	return nil, fmt.Errorf("%w: unknown exercise type %q", ErrSetValues, t)
}

// ParseSetValues builds the variant for t from loosely supplied fields, as
// entered on the command line or through a tool call.
func ParseSetValues(t ExerciseType, weight, distance *float64, reps, timeSec *int) (SetValues, error) {
	s := Set{Weight: weight, Reps: reps, Distance: distance, TimeSec: timeSec}
	return s.Values(t)
}

func checkWeight(w float64) error {
	if w < MinWeight || w > MaxWeight {
		return fmt.Errorf("%w: weight must be between %g and %g", ErrSetValues, MinWeight, MaxWeight)
	}
	if math.Abs(w*10-math.Round(w*10)) > 1e-9 {
		return fmt.Errorf("%w: weight allows one decimal place", ErrSetValues)
	}
	return nil
}

func checkReps(r int) error {
	if r < MinReps || r > MaxReps {
		return fmt.Errorf("%w: reps must be between %d and %d", ErrSetValues, MinReps, MaxReps)
	}
	return nil
}

func checkTime(sec int) error {
	if sec < MinTimeSec || sec > MaxTimeSec {
		return fmt.Errorf("%w: time must be between %d and %d seconds", ErrSetValues, MinTimeSec, MaxTimeSec)
	}
	return nil
}
