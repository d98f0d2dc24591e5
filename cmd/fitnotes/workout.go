// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, show, and delete subcommands.
package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutFrom  string
	workoutTo    string
	workoutLimit int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workouts. There is at most one workout per date; it holds the
exercises you did that day and the sets for each.

WORKFLOW:

  1. Start a workout:   fitnotes workout add 2024-01-15
  2. Log sets:          fitnotes set add 2024-01-15 "Bench Press" --weight 80 --reps 8
  3. View it:           fitnotes workout show 2024-01-15

Workouts can be referred to by date (YYYY-MM-DD, today, yesterday) or ID.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add [date]",
	Short: "Add a workout for a date (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}
		date, err := parseDate(ref)
		if err != nil {
			return err
		}

		id, err := fitApp.Store.CreateWorkout(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		green.Fprintf(cmd.OutOrStdout(), "✓ Added workout for %s\n", date)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint.Sprintf("ID %d", id))
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var workouts []models.Workout
		if workoutFrom != "" || workoutTo != "" {
			ws, err := fitApp.Store.WorkoutsBetween(cmd.Context(), workoutFrom, workoutTo)
			if err != nil {
				return fmt.Errorf("failed to list workouts: %w", err)
			}
			for i := len(ws) - 1; i >= 0; i-- {
				workouts = append(workouts, ws[i])
			}
		} else {
			workouts = fitApp.Store.Workouts()
		}
		if workoutLimit > 0 && len(workouts) > workoutLimit {
			workouts = workouts[:workoutLimit]
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}
		for _, w := range workouts {
			fmt.Fprintf(out, "%s %s %d exercises, %d sets\n",
				faint.Sprint(padRight(strconv.FormatInt(w.ID, 10), 5)),
				bold.Sprint(w.Date),
				len(w.Exercises),
				w.SetCount())
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <date|id>",
	Short: "Show a workout with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %w", err)
		}
		printWorkout(cmd.OutOrStdout(), w)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <date|id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout and all its sets",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := resolveWorkout(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %w", err)
		}
		if err := fitApp.Store.DeleteWorkout(cmd.Context(), w.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Deleted workout for %s\n", w.Date)
		return nil
	},
}

func printWorkout(out io.Writer, w *models.Workout) {
	fmt.Fprintf(out, "%s %s\n", bold.Sprint(w.Date), faint.Sprintf("(ID %d)", w.ID))
	if len(w.Exercises) == 0 {
		fmt.Fprintln(out, "  No exercises yet.")
		return
	}
	for _, we := range w.Exercises {
		fmt.Fprintf(out, "  %s\n", cyan.Sprint(fitApp.Store.ExerciseName(we.ExerciseID)))
		for i, s := range we.Sets {
			note := ""
			if s.Note != "" {
				note = faint.Sprintf(" (%s)", truncate(s.Note, 30))
			}
			fmt.Fprintf(out, "    %d. %s %s%s\n", i+1, faint.Sprint(shortID(s.ID)), s.String(), note)
		}
	}
}

func init() {
	workoutListCmd.Flags().StringVar(&workoutFrom, "from", "", "earliest date (YYYY-MM-DD)")
	workoutListCmd.Flags().StringVar(&workoutTo, "to", "", "latest date (YYYY-MM-DD)")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutCmd.AddCommand(workoutAddCmd, workoutListCmd, workoutShowCmd, workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
