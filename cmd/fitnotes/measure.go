// ABOUTME: CLI commands for body measurements.
// ABOUTME: Supports add, list and delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/spf13/cobra"
)

var (
	measureDate  string
	measureNotes string
	measureType  string
	measureLimit int
)

var measureCmd = &cobra.Command{
	Use:     "measure",
	Aliases: []string{"m"},
	Short:   "Track body measurements",
	Long: `Track body measurements.

TYPES:

  weight (kg), body_fat (%), muscle_mass (kg),
  waist, chest, arms, thighs (cm)`,
}

var measureAddCmd = &cobra.Command{
	Use:   "add <type> <value>",
	Short: "Record a measurement",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidMeasurementType(args[0]) {
			return fmt.Errorf("unknown measurement type: %s", args[0])
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}
		date, err := parseDate(measureDate)
		if err != nil {
			return err
		}

		m := models.NewMeasurement(models.MeasurementType(args[0]), value).WithDate(date)
		if measureNotes != "" {
			m.WithNotes(measureNotes)
		}
		id, err := fitApp.Store.AddMeasurement(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("failed to add measurement: %w", err)
		}

		green.Fprintf(cmd.OutOrStdout(), "✓ Added %s\n", m.Type)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %g %s on %s\n", faint.Sprintf("ID %d", id), m.Value, m.Unit(), m.Date)
		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List measurements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var mt *models.MeasurementType
		if measureType != "" {
			if !models.IsValidMeasurementType(measureType) {
				return fmt.Errorf("unknown measurement type: %s", measureType)
			}
			t := models.MeasurementType(measureType)
			mt = &t
		}

		ms, err := fitApp.Store.ListMeasurements(cmd.Context(), mt)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}
		if measureLimit > 0 && len(ms) > measureLimit {
			ms = ms[:measureLimit]
		}

		out := cmd.OutOrStdout()
		if len(ms) == 0 {
			fmt.Fprintln(out, "No measurements found.")
			return nil
		}
		for _, m := range ms {
			notes := ""
			if m.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(m.Notes, 30))
			}
			fmt.Fprintf(out, "%s %s %s %g %s%s\n",
				faint.Sprint(padRight(strconv.FormatInt(m.ID, 10), 5)),
				faint.Sprint(m.Date),
				padRight(string(m.Type), 12),
				m.Value,
				m.Unit(),
				notes)
		}
		return nil
	},
}

var measureDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a measurement",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID: %s", args[0])
		}
		if err := fitApp.Store.DeleteMeasurement(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete measurement: %w", err)
		}
		green.Fprintf(cmd.OutOrStdout(), "✓ Deleted measurement %d\n", id)
		return nil
	},
}

func init() {
	measureAddCmd.Flags().StringVar(&measureDate, "date", "", "date (YYYY-MM-DD, default today)")
	measureAddCmd.Flags().StringVar(&measureNotes, "notes", "", "notes")
	measureListCmd.Flags().StringVarP(&measureType, "type", "t", "", "filter by measurement type")
	measureListCmd.Flags().IntVarP(&measureLimit, "limit", "n", 20, "max number of results")

	measureCmd.AddCommand(measureAddCmd, measureListCmd, measureDeleteCmd)
	rootCmd.AddCommand(measureCmd)
}
