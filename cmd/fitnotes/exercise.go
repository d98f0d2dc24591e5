// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Supports add, list, delete and personal records.
package main

import (
	"fmt"
	"strconv"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseCategory string
	exerciseType     string
	exerciseNotes    string
	exerciseQuery    string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Long: `Add a custom exercise to the catalog.

TYPES:

  weight_reps (default), bodyweight, reps_only, time_only, distance_time

Examples:
  fitnotes exercise add "Cable Fly" --category Chest
  fitnotes exercise add Rowing --category Cardio --type distance_time`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidExerciseType(exerciseType) {
			return fmt.Errorf("unknown exercise type: %s", exerciseType)
		}
		e := models.NewExercise(args[0], exerciseCategory, models.ExerciseType(exerciseType)).
			WithNotes(exerciseNotes).
			AsCustom()
		id, err := fitApp.Store.AddExercise(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Added %s\n", e.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint.Sprintf("ID %d", id))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises, optionally filtered",
	Long: `List catalog exercises.

Use --category with a category name, All, or Custom (user-created only).
Use --query to match part of the name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		exercises := fitApp.Store.FilterExercises(exerciseQuery, exerciseCategory)
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}
		for _, e := range exercises {
			custom := ""
			if e.Custom {
				custom = faint.Sprint(" (custom)")
			}
			fmt.Fprintf(out, "%s %s %s %s%s\n",
				faint.Sprint(padRight(strconv.FormatInt(e.ID, 10), 5)),
				padRight(e.Name, 28),
				padRight(e.Category, 12),
				faint.Sprint(e.Type),
				custom)
		}
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <exercise>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise from the catalog",
	Long: `Delete an exercise. Workouts that used it keep their sets, which then
show as "Unknown Exercise".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		if err := fitApp.Store.DeleteExercise(cmd.Context(), e.ID); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", e.Name)
		return nil
	},
}

var exerciseRecordsCmd = &cobra.Command{
	Use:     "records <exercise>",
	Aliases: []string{"pr"},
	Short:   "Show personal records for an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := resolveExercise(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		b := fitApp.Store.PersonalBests(e.ID)
		fmt.Fprintln(out, bold.Sprint(e.Name))
		if b.OneRepMax == 0 && b.Reps == 0 {
			fmt.Fprintln(out, "  No records yet.")
			return nil
		}
		if b.OneRepMax > 0 {
			fmt.Fprintf(out, "  Estimated 1RM  %g kg %s\n", b.OneRepMax, faint.Sprint(b.OneRepMaxDate))
		}
		if b.Reps > 0 {
			fmt.Fprintf(out, "  Most reps      %d %s\n", b.Reps, faint.Sprint(b.RepsDate))
		}
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "category, e.g. Chest")
	exerciseAddCmd.Flags().StringVarP(&exerciseType, "type", "t", string(models.TypeWeightReps), "exercise type")
	exerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "notes")
	exerciseListCmd.Flags().StringVarP(&exerciseCategory, "category", "c", "", "category, All or Custom")
	exerciseListCmd.Flags().StringVarP(&exerciseQuery, "query", "q", "", "name filter")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd, exerciseRecordsCmd)
	rootCmd.AddCommand(exerciseCmd)
}
