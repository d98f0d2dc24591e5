// ABOUTME: CLI commands for logging sets within a workout.
// ABOUTME: Set values are checked against the exercise type before saving.
package main

import (
	"fmt"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/spf13/cobra"
)

var (
	setWeight   float64
	setReps     int
	setDistance float64
	setTime     string
	setNote     string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Log, edit and delete sets",
	Long: `Sets belong to an exercise within a workout. The values a set needs depend
on the exercise type:

  weight_reps     --weight and --reps
  bodyweight      --reps (optionally --weight for added weight)
  reps_only       --reps
  time_only       --time
  distance_time   --distance (meters) and --time

--time takes seconds, mm:ss or h:mm:ss.`,
}

var setAddCmd = &cobra.Command{
	Use:   "add <workout> <exercise>",
	Short: "Add a set; the exercise is added to the workout if needed",
	Long: `Add a set. The workout is a date or ID and is created if the date has
no workout yet. The exercise is an ID or name.

Examples:
  fitnotes set add today "Bench Press" --weight 80 --reps 8
  fitnotes set add 2024-01-15 Running --distance 5000 --time 25:00
  fitnotes set add today Plank --time 90 --note "felt strong"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := resolveExercise(args[1])
		if err != nil {
			return err
		}
		weight, reps, distance, timeSec, err := setFlagValues(cmd)
		if err != nil {
			return err
		}
		values, err := models.ParseSetValues(e.Type, weight, distance, reps, timeSec)
		if err != nil {
			return err
		}

		w, err := resolveWorkout(ctx, args[0])
		if err != nil {
			date, derr := parseDate(args[0])
			if derr != nil {
				return fmt.Errorf("workout not found: %w", err)
			}
			if w, err = fitApp.Store.GetOrCreateWorkout(ctx, date); err != nil {
				return fmt.Errorf("failed to create workout: %w", err)
			}
		}
		prev := fitApp.Store.PersonalBests(e.ID)
		set, err := fitApp.Store.AddSetToExercise(ctx, w.ID, e.ID, values, setNote)
		if err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		out := cmd.OutOrStdout()
		green.Fprintf(out, "✓ Added %s: %s\n", e.Name, set.String())
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(shortID(set.ID)), w.Date)
		if prev.OneRepMax > 0 && models.IsWeightRepsPR(prev.OneRepMax, set) {
			bold.Fprintf(out, "  New personal best! Estimated 1RM %g kg\n", models.Epley1RM(*set.Weight, *set.Reps))
		}
		return nil
	},
}

var setUpdateCmd = &cobra.Command{
	Use:   "update <workout> <exercise> <set-id>",
	Short: "Change values of a set",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w, e, setID, err := resolveSet(cmd, args)
		if err != nil {
			return err
		}
		weight, reps, distance, timeSec, err := setFlagValues(cmd)
		if err != nil {
			return err
		}
		patch := models.SetPatch{Weight: weight, Reps: reps, Distance: distance, TimeSec: timeSec}
		if cmd.Flags().Changed("note") {
			patch.Note = &setNote
		}

		if err := fitApp.Store.UpdateSet(ctx, w.ID, e.ID, setID, patch); err != nil {
			return fmt.Errorf("failed to update set: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Updated set %s\n", shortID(setID))
		return nil
	},
}

var setDeleteCmd = &cobra.Command{
	Use:     "delete <workout> <exercise> <set-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a set",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, e, setID, err := resolveSet(cmd, args)
		if err != nil {
			return err
		}
		if err := fitApp.Store.DeleteSet(cmd.Context(), w.ID, e.ID, setID); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Deleted set %s\n", shortID(setID))
		return nil
	},
}

func resolveSet(cmd *cobra.Command, args []string) (*models.Workout, models.Exercise, string, error) {
	w, err := resolveWorkout(cmd.Context(), args[0])
	if err != nil {
		return nil, models.Exercise{}, "", fmt.Errorf("workout not found: %w", err)
	}
	e, err := resolveExercise(args[1])
	if err != nil {
		return nil, models.Exercise{}, "", err
	}
	setID, err := resolveSetID(w, e.ID, args[2])
	if err != nil {
		return nil, models.Exercise{}, "", err
	}
	return w, e, setID, nil
}

// setFlagValues returns the set values whose flags were given.
func setFlagValues(cmd *cobra.Command) (weight *float64, reps *int, distance *float64, timeSec *int, err error) {
	flags := cmd.Flags()
	if flags.Changed("weight") {
		weight = &setWeight
	}
	if flags.Changed("reps") {
		reps = &setReps
	}
	if flags.Changed("distance") {
		distance = &setDistance
	}
	if flags.Changed("time") {
		secs, perr := parseDuration(setTime)
		if perr != nil {
			return nil, nil, nil, nil, perr
		}
		timeSec = &secs
	}
	return weight, reps, distance, timeSec, nil
}

func init() {
	for _, c := range []*cobra.Command{setAddCmd, setUpdateCmd} {
		c.Flags().Float64Var(&setWeight, "weight", 0, "weight in kg")
		c.Flags().IntVar(&setReps, "reps", 0, "repetitions")
		c.Flags().Float64Var(&setDistance, "distance", 0, "distance in meters")
		c.Flags().StringVar(&setTime, "time", "", "duration (seconds, mm:ss or h:mm:ss)")
		c.Flags().StringVar(&setNote, "note", "", "note for the set")
	}

	setCmd.AddCommand(setAddCmd, setUpdateCmd, setDeleteCmd)
	rootCmd.AddCommand(setCmd)
}
