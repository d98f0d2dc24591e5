// ABOUTME: Demo workout and body weight generator for first-run seeding.
// ABOUTME: Randomness comes from an injectable source so tests are deterministic.
package seed

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitnotes/internal/models"
)

// Demo history shape.
const (
	WindowDays      = 30
	WorkoutChance   = 0.7
	StartBodyweight = 75.0
)

// generator builds demo history relative to today.
type generator struct {
	rng   *rand.Rand
	today time.Time
}

// workouts returns demo workouts over the trailing window for exercises,
// whose IDs must already be assigned.
func (g generator) workouts(exercises []models.Exercise) []models.Workout {
	var out []models.Workout
	for i := 0; i < WindowDays; i++ {
		if g.rng.Float64() >= WorkoutChance {
			continue
		}
		day := g.today.AddDate(0, 0, -i)

		n := 3 + g.rng.IntN(4) // 3-6 exercises
		picks := g.rng.Perm(len(exercises))[:n]

		w := models.Workout{
			Date:      day.Format(models.DateLayout),
			CreatedAt: day,
			Exercises: make([]models.WorkoutExercise, 0, n),
		}
		for _, p := range picks {
			e := exercises[p]
			w.Exercises = append(w.Exercises, models.WorkoutExercise{
				ExerciseID: e.ID,
				Sets:       g.sets(e, i, day),
			})
		}
		out = append(out, w)
	}
	return out
}

// sets returns 2-4 plausible sets for e, daysAgo days before today.
func (g generator) sets(e models.Exercise, daysAgo int, day time.Time) []models.Set {
	n := 2 + g.rng.IntN(3)
	out := make([]models.Set, 0, n)
	for j := 0; j < n; j++ {
		s := models.Set{ID: uuid.NewString(), CreatedAt: day}
		switch e.Type {
		case models.TypeWeightReps:
			w := baseWeight(e.Name) + float64(daysAgo)*2.5 + (g.rng.Float64()*10 - 5)
			w = math.Round(w*10) / 10
			r := 6 + g.rng.IntN(5)
			s.Weight, s.Reps = &w, &r
		case models.TypeBodyweight:
			r := 10 + g.rng.IntN(10)
			s.Reps = &r
		case models.TypeTimeOnly:
			t := 30 + g.rng.IntN(120)
			s.TimeSec = &t
		case models.TypeRepsOnly:
			r := 15 + g.rng.IntN(20)
			s.Reps = &r
		case models.TypeDistanceTime:
			d := float64(1000 + g.rng.IntN(5000))
			t := 600 + g.rng.IntN(1800)
			s.Distance, s.TimeSec = &d, &t
		}
		out = append(out, s)
	}
	return out
}

// measurements returns bodyweight entries every 2-3 days with a small
// random drift.
func (g generator) measurements() []models.Measurement {
	var out []models.Measurement
	weight := StartBodyweight
	for i := 0; i < WindowDays; i += 2 + g.rng.IntN(2) {
		day := g.today.AddDate(0, 0, -i)
		weight += (g.rng.Float64() - 0.5) * 0.5
		out = append(out, models.Measurement{
			Type:      models.MeasureWeight,
			Value:     math.Round(weight*10) / 10,
			Date:      day.Format(models.DateLayout),
			CreatedAt: day,
		})
	}
	return out
}

func baseWeight(name string) float64 {
	switch {
	case strings.Contains(name, "Bench"):
		return 80
	case strings.Contains(name, "Squat"):
		return 100
	case strings.Contains(name, "Deadlift"):
		return 120
	case strings.Contains(name, "Row"):
		return 70
	}
	return 50
}
