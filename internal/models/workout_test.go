// ABOUTME: Tests for Workout and Set models.
// ABOUTME: Validates lookups, cloning, duplicate comparison and patches.
package models

import "testing"

func fp(f float64) *float64 { return &f }
func ip(i int) *int         { return &i }

func TestNewWorkout(t *testing.T) {
	w := NewWorkout("2024-03-01")

	if w.Date != "2024-03-01" {
		t.Errorf("Date = %s, want 2024-03-01", w.Date)
	}
	if w.Exercises == nil {
		t.Error("expected empty, non-nil exercise list")
	}
}

func TestWorkoutExerciseLookup(t *testing.T) {
	w := NewWorkout("2024-03-01", WorkoutExercise{ExerciseID: 3, Sets: []Set{{ID: "a"}, {ID: "b"}}})

	if !w.HasExercise(3) {
		t.Error("expected exercise 3 to be present")
	}
	if w.HasExercise(4) {
		t.Error("expected exercise 4 to be absent")
	}
	if got := w.SetCount(); got != 2 {
		t.Errorf("SetCount() = %d, want 2", got)
	}
}

func TestWorkoutCloneIsDeep(t *testing.T) {
	w := NewWorkout("2024-03-01", WorkoutExercise{ExerciseID: 1, Sets: []Set{{ID: "a"}}})
	c := w.Clone()
	c.Exercises[0].Sets[0].ID = "changed"
	c.Exercises = append(c.Exercises, WorkoutExercise{ExerciseID: 2})

	if w.Exercises[0].Sets[0].ID != "a" {
		t.Error("clone shares set storage with original")
	}
	if len(w.Exercises) != 1 {
		t.Error("clone shares exercise storage with original")
	}
}

func TestSetSameValuesIgnoresNote(t *testing.T) {
	a := Set{Weight: fp(80), Reps: ip(8), Note: "easy"}
	b := Set{Weight: fp(80), Reps: ip(8), Note: "hard"}
	c := Set{Weight: fp(80), Reps: ip(9)}
	d := Set{Weight: fp(80)}

	if !a.SameValues(b) {
		t.Error("expected sets differing only by note to match")
	}
	if a.SameValues(c) {
		t.Error("expected different reps to differ")
	}
	if a.SameValues(d) {
		t.Error("expected unset reps to differ from set reps")
	}
}

func TestSetString(t *testing.T) {
	tests := []struct {
		set  Set
		want string
	}{
		{Set{Weight: fp(80), Reps: ip(8)}, "80kg x 8"},
		{Set{Distance: fp(5000), TimeSec: ip(1500)}, "5000m in 25:00"},
		{Set{TimeSec: ip(3725)}, "1:02:05"},
		{Set{Reps: ip(12)}, "12 reps"},
		{Set{}, "-"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSetPatch(t *testing.T) {
	s := Set{ID: "x", Weight: fp(80), Reps: ip(8)}
	note := "paused"
	SetPatch{Reps: ip(10), Note: &note}.Apply(&s)

	if *s.Reps != 10 || *s.Weight != 80 || s.Note != "paused" || s.ID != "x" {
		t.Errorf("patched set = %+v", s)
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2024-02-29") {
		t.Error("expected leap day to be valid")
	}
	for _, bad := range []string{"", "2024-2-1", "03/01/2024", "2023-02-29"} {
		if ValidDate(bad) {
			t.Errorf("ValidDate(%q) = true", bad)
		}
	}
}
