// ABOUTME: CLI command reporting the database schema version.
// ABOUTME: Migrations run automatically whenever the database is opened.
package main

import (
	"fmt"

	"github.com/harperreed/fitnotes/internal/storage"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Show database schema status",
	Long: `Show the database schema version.

Pending migrations are applied every time fitnotes opens the database, so
this command reports the result. A database written by a newer fitnotes is
refused rather than downgraded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := fitApp.DB.SchemaVersion(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		latest, err := storage.LatestSchemaVersion()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database  %s\n", fitApp.DB.Path())
		fmt.Fprintf(out, "Schema    v%d (latest v%d)\n", current, latest)
		if current == latest {
			green.Fprintln(out, "✓ Up to date")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
