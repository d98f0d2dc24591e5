// ABOUTME: CLI commands for routines, reusable lists of exercises.
// ABOUTME: Starting a routine fills the workout for a date with its exercises.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/spf13/cobra"
)

var (
	routineDescription string
	routineColor       string
	routineDate        string
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Manage routines",
}

var routineAddCmd = &cobra.Command{
	Use:   "add <name> <exercise>...",
	Short: "Create a routine from exercises",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args)-1)
		for _, ref := range args[1:] {
			e, err := resolveExercise(ref)
			if err != nil {
				return err
			}
			ids = append(ids, e.ID)
		}

		r := models.NewRoutine(args[0], ids...).WithDescription(routineDescription)
		if routineColor != "" {
			r.WithColor(routineColor)
		}
		id, err := fitApp.Store.AddRoutine(cmd.Context(), r)
		if err != nil {
			return fmt.Errorf("failed to add routine: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Added routine %s\n", r.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint.Sprintf("ID %d", id))
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		routines, err := fitApp.Store.ListRoutines(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list routines: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(routines) == 0 {
			fmt.Fprintln(out, "No routines found.")
			return nil
		}
		for _, r := range routines {
			names := make([]string, 0, len(r.Exercises))
			for _, re := range r.Exercises {
				names = append(names, fitApp.Store.ExerciseName(re.ExerciseID))
			}
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(padRight(strconv.FormatInt(r.ID, 10), 5)),
				bold.Sprint(r.Name),
				faint.Sprint(strings.Join(names, ", ")))
		}
		return nil
	},
}

var routineStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start a routine for a date (default today)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID: %s", args[0])
		}
		date, err := parseDate(routineDate)
		if err != nil {
			return err
		}
		w, err := fitApp.Store.StartRoutine(cmd.Context(), id, date)
		if err != nil {
			return fmt.Errorf("failed to start routine: %w", err)
		}
		printWorkout(cmd.OutOrStdout(), w)
		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a routine",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID: %s", args[0])
		}
		if err := fitApp.Store.DeleteRoutine(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Deleted routine %d\n", id)
		return nil
	},
}

func init() {
	routineAddCmd.Flags().StringVar(&routineDescription, "description", "", "description")
	routineAddCmd.Flags().StringVar(&routineColor, "color", "", "display color (default "+models.DefaultRoutineColor+")")
	routineStartCmd.Flags().StringVar(&routineDate, "date", "", "workout date (YYYY-MM-DD, default today)")

	routineCmd.AddCommand(routineAddCmd, routineListCmd, routineStartCmd, routineDeleteCmd)
	rootCmd.AddCommand(routineCmd)
}
