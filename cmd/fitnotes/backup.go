// ABOUTME: CLI command reporting the last backup.
// ABOUTME: Metadata lives in the side store and is cleared by a restore.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup information",
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show when the last JSON backup was taken",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if fitApp.KV.Detached() {
			color.New(color.FgYellow).Fprintln(out, "! Side store is in use by another process; backup history unavailable")
		}

		info, err := fitApp.KV.LastBackup()
		if err != nil {
			return fmt.Errorf("failed to read backup metadata: %w", err)
		}
		if info == nil {
			fmt.Fprintln(out, "No backup recorded. Run 'fitnotes export json -o backup.json'.")
			return nil
		}

		fmt.Fprintf(out, "Last backup %s %s\n", bold.Sprint(info.Age()),
			faint.Sprint(info.Timestamp.Local().Format("Jan 2, 2006 15:04")))
		fmt.Fprintf(out, "  size          %s\n", info.HumanSize())
		fmt.Fprintf(out, "  workouts      %d\n", info.Workouts)
		fmt.Fprintf(out, "  exercises     %d\n", info.Exercises)
		fmt.Fprintf(out, "  measurements  %d\n", info.Measurements)
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupStatusCmd)
	rootCmd.AddCommand(backupCmd)
}
