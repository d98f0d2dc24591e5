// ABOUTME: Tests for the Exercise model and category normalization.
// ABOUTME: Validates constructors, patches and case-insensitive category forms.
package models

import "testing"

func TestNewExercise(t *testing.T) {
	e := NewExercise("  Bench Press ", "Chest", TypeWeightReps).WithNotes("flat")

	if e.Name != "Bench Press" {
		t.Errorf("Name = %q, want %q", e.Name, "Bench Press")
	}
	if e.Custom {
		t.Error("expected catalog exercise to not be custom")
	}
	if e.Notes != "flat" {
		t.Errorf("Notes = %q, want flat", e.Notes)
	}
	if !e.AsCustom().Custom {
		t.Error("expected AsCustom to mark exercise custom")
	}
}

func TestIsValidExerciseType(t *testing.T) {
	for _, et := range AllExerciseTypes {
		if !IsValidExerciseType(string(et)) {
			t.Errorf("IsValidExerciseType(%q) = false", et)
		}
	}
	if IsValidExerciseType("cardio") {
		t.Error("IsValidExerciseType(cardio) = true")
	}
}

func TestExercisePatch(t *testing.T) {
	e := NewExercise("Row", "Back", TypeWeightReps)
	name := "Barbell Row"
	ExercisePatch{Name: &name}.Apply(e)

	if e.Name != name || e.Category != "Back" {
		t.Errorf("patched exercise = %+v", e)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in, normalized, display string
	}{
		{"Legs", "legs", "Legs"},
		{"  upper   BODY ", "upper body", "Upper Body"},
		{"LEGS", "legs", "Legs"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeCategory(tt.in); got != tt.normalized {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.normalized)
			}
			if got := CategoryDisplayName(tt.in); got != tt.display {
				t.Errorf("CategoryDisplayName(%q) = %q, want %q", tt.in, got, tt.display)
			}
		})
	}
}
