// ABOUTME: CLI commands that manage the whole data set: reset and seed.
// ABOUTME: Reset never re-enables first-run seeding.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitnotes/internal/seed"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all workouts, exercises, measurements and routines",
	Long: `Delete every workout, exercise, measurement and routine, and restore
default settings. Demo data is not re-created afterwards.

This cannot be undone. Take a backup first:

  fitnotes export json -o backup.json
  fitnotes reset --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "This deletes all data. Re-run with --yes to confirm.")
			return nil
		}
		if err := fitApp.Store.ResetData(cmd.Context()); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		green.Fprintln(cmd.OutOrStdout(), "✓ All data deleted")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into an empty, never-seeded store",
	Long: `Load the exercise catalog and 30 days of generated workouts and body
weight measurements.

Seeding happens automatically on first run (disable with "seed_demo": false
or FITNOTES_SEED_DEMO=false). It runs at most once per data directory, and
never after a reset or a restore.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		outcome, err := seed.New(fitApp.DB, fitApp.KV, fitApp.Log).Seed(ctx)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		out := cmd.OutOrStdout()
		switch outcome {
		case seed.Seeded:
			if err := fitApp.Reload(ctx); err != nil {
				return err
			}
			counts, err := fitApp.Store.Counts(ctx)
			if err != nil {
				return err
			}
			green.Fprintln(out, "✓ Demo data loaded")
			fmt.Fprintf(out, "  %d exercises, %d workouts, %d measurements\n",
				counts.Exercises, counts.Workouts, counts.Measurements)
		default:
			fmt.Fprintf(out, "Nothing to do: %s\n", outcome)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deleting all data")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(seedCmd)
}
