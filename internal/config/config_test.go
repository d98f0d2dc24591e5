// ABOUTME: Tests for fitnotes configuration management.
// ABOUTME: Covers load, save, defaults, environment overrides and path resolution.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/fitnotes-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "fitnotes-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/fitnotes-test"}

	if got := cfg.GetDBPath(); got != "/tmp/fitnotes-test/fitnotes.db" {
		t.Errorf("GetDBPath() = %q", got)
	}
	if got := cfg.KVDir(); got != "/tmp/fitnotes-test/kv" {
		t.Errorf("KVDir() = %q", got)
	}
	if got := cfg.LogDir(); got != "/tmp/fitnotes-test/logs" {
		t.Errorf("LogDir() = %q", got)
	}

	cfg.DBPath = "/elsewhere/workouts.db"
	if got := cfg.GetDBPath(); got != "/elsewhere/workouts.db" {
		t.Errorf("GetDBPath() with override = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/fitnotes", filepath.Join(home, "data/fitnotes")},
		{"data/fitnotes", "data/fitnotes"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.DataDir != "" {
		t.Errorf("Expected empty DataDir, got %q", cfg.DataDir)
	}
	if !cfg.SeedDemo {
		t.Error("Expected SeedDemo to default to true")
	}
	if cfg.Debug {
		t.Error("Expected Debug to default to false")
	}
}

func TestSaveAndLoad(t *testing.T) {
	withConfigHome(t)

	cfg := &Config{DataDir: "/tmp/fitnotes-data", Debug: true, SeedDemo: false}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DataDir != "/tmp/fitnotes-data" {
		t.Errorf("DataDir mismatch: got %q", loaded.DataDir)
	}
	if !loaded.Debug {
		t.Error("Debug should round trip")
	}
	if loaded.SeedDemo {
		t.Error("SeedDemo=false should round trip")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	withConfigHome(t)

	cfg := &Config{DataDir: "/from/file", SeedDemo: true}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("FITNOTES_DATA_DIR", "/from/env")
	t.Setenv("FITNOTES_SEED_DEMO", "false")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, want /from/env", loaded.DataDir)
	}
	if loaded.SeedDemo {
		t.Error("SeedDemo should be overridden by the environment")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := withConfigHome(t)

	configDir := filepath.Join(dir, "fitnotes")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	dir := withConfigHome(t)

	want := filepath.Join(dir, "fitnotes", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{DataDir: dir}

	db, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "fitnotes.db")); os.IsNotExist(err) {
		t.Error("Expected fitnotes.db to be created")
	}
}
