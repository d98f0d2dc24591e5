// ABOUTME: Tests for the Settings model.
// ABOUTME: Validates defaults, patch semantics and enum validation.
package models

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.ID != SettingsID {
		t.Errorf("ID = %d, want %d", s.ID, SettingsID)
	}
	if s.Theme != ThemeDark || s.Units != UnitsMetric || s.WeightIncrement != 2.5 || !s.TimerSound {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.SeedingDone {
		t.Error("expected SeedingDone to default to false")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestSettingsPatchNeverUnseeds(t *testing.T) {
	s := DefaultSettings()
	SettingsPatch{MarkSeeded: true}.Apply(&s)
	if !s.SeedingDone {
		t.Fatal("expected MarkSeeded to set SeedingDone")
	}

	theme := ThemeLight
	SettingsPatch{Theme: &theme}.Apply(&s)
	if !s.SeedingDone {
		t.Error("expected SeedingDone to remain true")
	}
	if s.Theme != ThemeLight {
		t.Errorf("Theme = %s, want light", s.Theme)
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	s.Theme = "neon"
	if err := s.Validate(); err == nil {
		t.Error("expected invalid theme error")
	}

	s = DefaultSettings()
	s.Units = "furlongs"
	if err := s.Validate(); err == nil {
		t.Error("expected invalid units error")
	}
}
