// ABOUTME: Personal record helpers based on the Epley one-rep-max estimate.
// ABOUTME: Used to flag sets that beat an exercise's previous best.
package models

import "math"

// Epley1RM estimates a one-rep max, rounded to the nearest unit.
func Epley1RM(weight float64, reps int) float64 {
	if weight == 0 || reps == 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Round(weight * (1 + float64(reps)/30))
}

// Best1RM returns the highest estimated one-rep max among sets.
func Best1RM(sets []Set) float64 {
	best := 0.0
	for _, s := range sets {
		if s.Weight != nil && s.Reps != nil {
			best = math.Max(best, Epley1RM(*s.Weight, *s.Reps))
		}
	}
	return best
}

// IsWeightRepsPR reports whether the set's estimate beats prevBest.
func IsWeightRepsPR(prevBest float64, s Set) bool {
	if s.Weight == nil || s.Reps == nil {
		return false
	}
	return Epley1RM(*s.Weight, *s.Reps) > prevBest
}

// IsRepsPR reports whether the set's reps beat prevBest.
func IsRepsPR(prevBest int, s Set) bool {
	return s.Reps != nil && *s.Reps > prevBest
}
