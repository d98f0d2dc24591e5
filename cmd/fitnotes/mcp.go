// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitnotes/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitnotes": {
        "command": "fitnotes",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_workouts            List workouts, optionally within a date range
  get_workout              Get a workout by ID or date
  create_workout           Create an empty workout for a date
  add_exercise_to_workout  Add an exercise to a workout
  add_set                  Record a set
  delete_set               Delete a set
  list_exercises           List catalog exercises
  add_exercise             Add a custom exercise
  add_measurement          Record a body measurement
  list_measurements        List body measurements
  start_routine            Fill a workout from a routine
  export_backup            Export a JSON backup
  import_csv               Import sets from CSV text

AVAILABLE RESOURCES:

  fitnotes://workouts/recent   Recent workouts with sets
  fitnotes://settings          Settings, record counts and last backup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(fitApp)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
