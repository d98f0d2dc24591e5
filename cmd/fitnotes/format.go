// ABOUTME: Shared parsing and output helpers for CLI commands.
// ABOUTME: Resolves workout, exercise and set references typed by the user.
package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitnotes/internal/models"
)

var (
	faint = color.New(color.Faint)
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	cyan  = color.New(color.FgCyan)
)

func today() string {
	return time.Now().Format(models.DateLayout)
}

// parseDate accepts YYYY-MM-DD, "today" and "yesterday".
func parseDate(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", "today":
		return today(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(models.DateLayout), nil
	}
	if !models.ValidDate(s) {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return s, nil
}

// parseDuration accepts plain seconds, mm:ss or h:mm:ss.
func parseDuration(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (i > 0 && n >= 60) {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		total = total*60 + n
	}
	return total, nil
}

// resolveWorkout finds a workout by date or numeric ID.
func resolveWorkout(ctx context.Context, ref string) (*models.Workout, error) {
	if date, err := parseDate(ref); err == nil {
		return fitApp.Store.LoadWorkoutByDate(ctx, date)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not a workout date or ID: %s", ref)
	}
	return fitApp.Store.GetWorkout(ctx, id)
}

// resolveExercise finds a catalog exercise by ID or case-insensitive name.
func resolveExercise(ref string) (models.Exercise, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if e, ok := fitApp.Store.Exercise(id); ok {
			return e, nil
		}
	}
	want := models.ExerciseNameKey(ref)
	for _, e := range fitApp.Store.Exercises() {
		if models.ExerciseNameKey(e.Name) == want {
			return e, nil
		}
	}
	return models.Exercise{}, fmt.Errorf("unknown exercise: %s", ref)
}

// resolveSetID expands a set ID prefix within one workout exercise.
func resolveSetID(w *models.Workout, exerciseID int64, prefix string) (string, error) {
	we := w.Exercise(exerciseID)
	if we == nil {
		return "", fmt.Errorf("exercise not in workout %s", w.Date)
	}
	var match string
	for _, s := range we.Sets {
		if strings.HasPrefix(s.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("set ID prefix %s is ambiguous", prefix)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no set with ID %s", prefix)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
