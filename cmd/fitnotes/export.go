// ABOUTME: CLI commands for exporting and importing fitnotes data.
// ABOUTME: JSON is the full backup format; CSV carries sets only.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitnotes data",
	Long: `Export fitnotes data.

FORMATS:

  json       Full backup (suitable for 'fitnotes import json')
  yaml       The same content as YAML, for reading
  markdown   Workout log and measurement tables (--since YYYY-MM-DD to limit)
  csv        One row per set: Date,ExerciseId,Exercise,Category,Weight,Reps,Distance,TimeSec,Note

A JSON export is recorded as the last backup (see 'fitnotes backup status').

EXAMPLES:

  fitnotes export json -o backup.json
  fitnotes export csv > sets.csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var data []byte
		var err error
		switch args[0] {
		case "json":
			data, err = fitApp.Backup.ExportJSON(ctx)
		case "yaml":
			data, err = fitApp.Backup.ExportYAML(ctx)
		case "markdown", "md":
			var md string
			md, err = fitApp.Backup.ExportMarkdown(ctx, exportSince)
			data = []byte(md)
		case "csv":
			var buf bytes.Buffer
			err = fitApp.CSV.Export(ctx, &buf)
			data = buf.Bytes()
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or csv)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <format> <file>",
	Short: "Import a JSON backup or a CSV of sets",
	Long: `Import data.

  json   Replaces ALL workouts, exercises, measurements and routines with the
         backup's content. Nothing changes if the file does not validate.
  csv    Adds sets row by row. Exercises and categories are matched by name
         (ignoring case) or created; sets already present are skipped.

EXAMPLES:

  fitnotes import json backup.json
  fitnotes import csv sets.csv`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"json", "csv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		switch args[0] {
		case "json":
			res, err := fitApp.Backup.Import(ctx, data)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			if !res.OK() {
				color.New(color.FgRed).Fprintf(out, "✗ Backup rejected, nothing was changed (%d problems)\n", len(res.Errors))
				for _, e := range res.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
				return fmt.Errorf("invalid backup: %s", args[1])
			}
			if err := fitApp.Reload(ctx); err != nil {
				return err
			}
			green.Fprintf(out, "✓ Restored from %s\n", args[1])
			fmt.Fprintf(out, "  %d workouts, %d exercises, %d measurements, %d routines\n",
				res.Counts.Workouts, res.Counts.Exercises, res.Counts.Measurements, res.Counts.Routines)
		case "csv":
			sum, err := fitApp.CSV.Import(ctx, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			if err := fitApp.Reload(ctx); err != nil {
				return err
			}
			green.Fprintf(out, "✓ Imported %s\n", args[1])
			fmt.Fprintf(out, "  %d sets added, %d duplicates skipped\n", sum.SetsAdded, sum.DuplicatesSkipped)
			fmt.Fprintf(out, "  %d exercises created, %d categories matched, %d created\n",
				sum.CreatedExercises, sum.CategoriesMatched, sum.CategoriesCreated)
			if len(sum.Errors) > 0 {
				color.New(color.FgYellow).Fprintf(out, "  %d rows skipped:\n", len(sum.Errors))
				for _, e := range sum.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
			}
		default:
			return fmt.Errorf("unknown format: %s (use json or csv)", args[0])
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "markdown only: skip entries before this date")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
