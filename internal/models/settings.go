// ABOUTME: Singleton settings model with defaults.
// ABOUTME: SeedingDone gates first-run demo seeding and never reverts to false.
package models

import "fmt"

// SettingsID is the fixed identifier of the settings row.
const SettingsID int64 = 1

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Unit systems.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// Settings holds user preferences.
type Settings struct {
	ID              int64   `json:"id" yaml:"id"`
	Theme           string  `json:"theme" yaml:"theme"`
	Units           string  `json:"units" yaml:"units"`
	WeightIncrement float64 `json:"weightIncrement" yaml:"weightIncrement"`
	TimerSound      bool    `json:"timerSound" yaml:"timerSound"`
	SeedingDone     bool    `json:"seedingDone" yaml:"seedingDone"`
}

// DefaultSettings returns the settings used when no row exists yet.
func DefaultSettings() Settings {
	return Settings{
		ID:              SettingsID,
		Theme:           ThemeDark,
		Units:           UnitsMetric,
		WeightIncrement: 2.5,
		TimerSound:      true,
		SeedingDone:     false,
	}
}

// SettingsPatch holds optional field changes. SeedingDone can only be set
// to true.
type SettingsPatch struct {
	Theme           *string
	Units           *string
	WeightIncrement *float64
	TimerSound      *bool
	MarkSeeded      bool
}

// Apply copies the set fields of the patch onto s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Units != nil {
		s.Units = *p.Units
	}
	if p.WeightIncrement != nil {
		s.WeightIncrement = *p.WeightIncrement
	}
	if p.TimerSound != nil {
		s.TimerSound = *p.TimerSound
	}
	if p.MarkSeeded {
		s.SeedingDone = true
	}
}

// Validate checks the enumerated fields.
func (s Settings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		return fmt.Errorf("invalid theme %q", s.Theme)
	}
	switch s.Units {
	case UnitsMetric, UnitsImperial:
	default:
		return fmt.Errorf("invalid units %q", s.Units)
	}
	if s.WeightIncrement <= 0 {
		return fmt.Errorf("weight increment must be positive")
	}
	return nil
}
