// ABOUTME: Default exercise catalog installed by first-run seeding.
// ABOUTME: Seven categories covering common barbell, dumbbell, bodyweight and cardio work.
package seed

import "github.com/harperreed/fitnotes/internal/models"

type catalogEntry struct {
	Name     string
	Category string
	Type     models.ExerciseType
}

// Catalog is the list of exercises a fresh install starts with.
var Catalog = []catalogEntry{
	{"Flat Barbell Bench Press", "Chest", models.TypeWeightReps},
	{"Incline Barbell Bench Press", "Chest", models.TypeWeightReps},
	{"Flat Dumbbell Bench Press", "Chest", models.TypeWeightReps},
	{"Incline Dumbbell Bench Press", "Chest", models.TypeWeightReps},
	{"Dumbbell Flyes", "Chest", models.TypeWeightReps},
	{"Push-ups", "Chest", models.TypeBodyweight},

	{"Deadlifts", "Back", models.TypeWeightReps},
	{"Pull-ups", "Back", models.TypeBodyweight},
	{"Barbell Rows", "Back", models.TypeWeightReps},
	{"Dumbbell Rows", "Back", models.TypeWeightReps},
	{"Lat Pulldowns", "Back", models.TypeWeightReps},
	{"T-Bar Rows", "Back", models.TypeWeightReps},

	{"Overhead Press", "Shoulders", models.TypeWeightReps},
	{"Dumbbell Shoulder Press", "Shoulders", models.TypeWeightReps},
	{"Lateral Raises", "Shoulders", models.TypeWeightReps},
	{"Front Raises", "Shoulders", models.TypeWeightReps},
	{"Rear Delt Flyes", "Shoulders", models.TypeWeightReps},

	{"Barbell Curls", "Arms", models.TypeWeightReps},
	{"Dumbbell Curls", "Arms", models.TypeWeightReps},
	{"Hammer Curls", "Arms", models.TypeWeightReps},
	{"Tricep Dips", "Arms", models.TypeBodyweight},
	{"Close-Grip Bench Press", "Arms", models.TypeWeightReps},
	{"Tricep Extensions", "Arms", models.TypeWeightReps},

	{"Squats", "Legs", models.TypeWeightReps},
	{"Romanian Deadlifts", "Legs", models.TypeWeightReps},
	{"Leg Press", "Legs", models.TypeWeightReps},
	{"Leg Curls", "Legs", models.TypeWeightReps},
	{"Leg Extensions", "Legs", models.TypeWeightReps},
	{"Calf Raises", "Legs", models.TypeWeightReps},
	{"Lunges", "Legs", models.TypeBodyweight},

	{"Planks", "Core", models.TypeTimeOnly},
	{"Crunches", "Core", models.TypeRepsOnly},
	{"Russian Twists", "Core", models.TypeRepsOnly},
	{"Hanging Leg Raises", "Core", models.TypeRepsOnly},

	{"Running", "Cardio", models.TypeDistanceTime},
	{"Cycling", "Cardio", models.TypeDistanceTime},
	{"Walking", "Cardio", models.TypeDistanceTime},
	{"Elliptical", "Cardio", models.TypeTimeOnly},
}

// CatalogExercises returns fresh, unsaved exercise records for Catalog.
func CatalogExercises() []models.Exercise {
	out := make([]models.Exercise, len(Catalog))
	for i, c := range Catalog {
		out[i] = *models.NewExercise(c.Name, c.Category, c.Type)
	}
	return out
}
