// ABOUTME: CLI commands for viewing and changing user settings.
// ABOUTME: Changes are validated and mirrored to the side store.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/spf13/cobra"
)

var (
	settingsTheme      string
	settingsUnits      string
	settingsIncrement  float64
	settingsTimerSound bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(cmd.OutOrStdout(), fitApp.Store.Settings())
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change one or more settings.

Examples:
  fitnotes settings set --theme light
  fitnotes settings set --units imperial --increment 5
  fitnotes settings set --timer-sound=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch models.SettingsPatch
		flags := cmd.Flags()
		if flags.Changed("theme") {
			patch.Theme = &settingsTheme
		}
		if flags.Changed("units") {
			patch.Units = &settingsUnits
		}
		if flags.Changed("increment") {
			patch.WeightIncrement = &settingsIncrement
		}
		if flags.Changed("timer-sound") {
			patch.TimerSound = &settingsTimerSound
		}
		if patch == (models.SettingsPatch{}) {
			return fmt.Errorf("nothing to change; see --help")
		}

		s, err := fitApp.Store.UpdateSettings(cmd.Context(), patch)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
		green.Fprintln(cmd.OutOrStdout(), "✓ Settings updated")
		printSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

func printSettings(out io.Writer, s models.Settings) {
	fmt.Fprintf(out, "  theme        %s\n", s.Theme)
	fmt.Fprintf(out, "  units        %s\n", s.Units)
	fmt.Fprintf(out, "  increment    %g\n", s.WeightIncrement)
	fmt.Fprintf(out, "  timer sound  %t\n", s.TimerSound)
	fmt.Fprintf(out, "  seeded       %t\n", s.SeedingDone)
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "light, dark or auto")
	settingsSetCmd.Flags().StringVar(&settingsUnits, "units", "", "metric or imperial")
	settingsSetCmd.Flags().Float64Var(&settingsIncrement, "increment", 0, "weight increment")
	settingsSetCmd.Flags().BoolVar(&settingsTimerSound, "timer-sound", true, "play a sound when the rest timer ends")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
