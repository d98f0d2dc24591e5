// ABOUTME: Root Cobra command for fitnotes CLI.
// ABOUTME: Opens the App in PersistentPreRunE and closes it in PersistentPostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/fitnotes/internal/app"
	"github.com/harperreed/fitnotes/internal/config"
	"github.com/spf13/cobra"
)

var (
	fitApp *app.App

	flagDataDir string
	flagDBPath  string
	flagDebug   bool
)

// commands that manage seeding themselves
var noAutoSeed = map[string]bool{
	"seed":  true,
	"reset": true,
}

var rootCmd = &cobra.Command{
	Use:   "fitnotes",
	Short: "Local workout log",
	Long: `Fitnotes is a local workout log: workouts by date, sets per exercise,
body measurements, routines, and JSON/CSV backup.

QUICK START:

  $ fitnotes workout add 2024-01-15                     # Start a workout
  $ fitnotes set add 2024-01-15 "Bench Press" --weight 80 --reps 8
  $ fitnotes workout show 2024-01-15                    # See what you did
  $ fitnotes measure add weight 81.4                    # Log body weight

ROUTINES:

  $ fitnotes routine add Push "Bench Press" "Overhead Press"
  $ fitnotes routine start 1                            # Today's workout from a routine

BACKUP:

  $ fitnotes export json -o backup.json                 # Full backup
  $ fitnotes import json backup.json                    # Replace everything with a backup
  $ fitnotes import csv sets.csv                        # Merge sets from a spreadsheet

MCP INTEGRATION:

  Run 'fitnotes mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in ~/.local/share/fitnotes (fitnotes.db, kv/, logs/).
  Override with --data-dir, --db, or FITNOTES_DATA_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "install-skill" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagDBPath != "" {
			cfg.DBPath = flagDBPath
		}
		if flagDebug {
			cfg.Debug = true
		}

		fitApp, err = app.Open(cmd.Context(), cfg, app.Options{SkipSeed: noAutoSeed[cmd.Name()]})
		if err != nil {
			return fmt.Errorf("failed to open fitnotes: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if fitApp != nil {
			err := fitApp.Close()
			fitApp = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/fitnotes)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database path (default <data-dir>/fitnotes.db)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log debug output to stderr")
}
