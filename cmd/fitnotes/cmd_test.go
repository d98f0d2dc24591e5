// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Commands run against a fresh data directory per test.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso date", input: "2024-03-01", want: "2024-03-01"},
		{name: "empty means today", input: "", want: today()},
		{name: "today", input: "Today", want: today()},
		{name: "yesterday", input: "yesterday", want: time.Now().AddDate(0, 0, -1).Format("2006-01-02")},
		{name: "wrong order", input: "01-03-2024", wantErr: true},
		{name: "impossible date", input: "2024-02-30", wantErr: true},
		{name: "number", input: "42", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDate(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "90", want: 90},
		{input: "1:30", want: 90},
		{input: "25:00", want: 1500},
		{input: "1:02:03", want: 3723},
		{input: "1:60", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "1:2:3:4", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseDuration(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDuration(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("padRight = %q, want %q", got, "abcdef")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

// setupCLI isolates config and data for command tests.
func setupCLI(t *testing.T) string {
	t.Helper()
	color.NoColor = true
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FITNOTES_SEED_DEMO", "false")
	t.Setenv("FITNOTES_DATA_DIR", "")
	return t.TempDir()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes one CLI invocation and returns its combined output.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := rootCmd.Execute()
	if fitApp != nil {
		_ = fitApp.Close()
		fitApp = nil
	}
	return buf.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := run(t, dataDir, args...)
	if err != nil {
		t.Fatalf("fitnotes %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

func TestWorkoutAndSetCommands(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, dir, "exercise", "add", "Bench Press", "--category", "Chest")

	out := mustRun(t, dir, "set", "add", "2024-03-01", "bench press", "--weight", "100", "--reps", "5")
	assertContains(t, out, "Added Bench Press: 100kg x 5")

	out = mustRun(t, dir, "set", "add", "2024-03-01", "Bench Press", "--weight", "105", "--reps", "5", "--note", "easy")
	assertContains(t, out, "New personal best!")

	out = mustRun(t, dir, "workout", "show", "2024-03-01")
	assertContains(t, out, "Bench Press")
	assertContains(t, out, "100kg x 5")
	assertContains(t, out, "105kg x 5 (easy)")

	out = mustRun(t, dir, "workout", "list")
	assertContains(t, out, "2024-03-01 1 exercises, 2 sets")

	if _, err := run(t, dir, "set", "add", "2024-03-01", "Bench Press"); err == nil {
		t.Error("expected error for set without values")
	}
	if _, err := run(t, dir, "set", "add", "2024-03-01", "Deadlift", "--weight", "100", "--reps", "5"); err == nil {
		t.Error("expected error for unknown exercise")
	}

	out = mustRun(t, dir, "export", "markdown", "--since", "2024-01-01")
	assertContains(t, out, "### 2024-03-01")
	assertContains(t, out, "| Bench Press | 105kg x 5 | easy |")

	mustRun(t, dir, "workout", "delete", "2024-03-01")
	out = mustRun(t, dir, "workout", "list")
	assertContains(t, out, "No workouts found.")
}

func TestWorkoutAddDuplicateDate(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, dir, "workout", "add", "2024-03-01")
	if _, err := run(t, dir, "workout", "add", "2024-03-01"); err == nil {
		t.Error("expected error for second workout on the same date")
	}
}

func TestSettingsCommands(t *testing.T) {
	dir := setupCLI(t)

	out := mustRun(t, dir, "settings", "set", "--theme", "light", "--increment", "1.25")
	assertContains(t, out, "Settings updated")

	out = mustRun(t, dir, "settings", "show")
	assertContains(t, out, "theme        light")
	assertContains(t, out, "increment    1.25")

	if _, err := run(t, dir, "settings", "set"); err == nil {
		t.Error("expected error when no setting is given")
	}
	if _, err := run(t, dir, "settings", "set", "--theme", "neon"); err == nil {
		t.Error("expected error for invalid theme")
	}
}

func TestExportResetImport(t *testing.T) {
	dir := setupCLI(t)
	backupPath := filepath.Join(t.TempDir(), "backup.json")

	mustRun(t, dir, "exercise", "add", "Squat", "--category", "Legs")
	mustRun(t, dir, "set", "add", "2024-03-01", "Squat", "--weight", "120", "--reps", "3")

	out := mustRun(t, dir, "backup", "status")
	assertContains(t, out, "No backup recorded")

	mustRun(t, dir, "export", "json", "-o", backupPath)
	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("backup mode = %o, want 600", info.Mode().Perm())
	}

	out = mustRun(t, dir, "backup", "status")
	assertContains(t, out, "Last backup")
	assertContains(t, out, "workouts      1")

	out = mustRun(t, dir, "reset")
	assertContains(t, out, "--yes")
	out = mustRun(t, dir, "workout", "list")
	assertContains(t, out, "2024-03-01")

	mustRun(t, dir, "reset", "--yes")
	out = mustRun(t, dir, "workout", "list")
	assertContains(t, out, "No workouts found.")

	out = mustRun(t, dir, "import", "json", backupPath)
	assertContains(t, out, "1 workouts, 1 exercises")

	out = mustRun(t, dir, "workout", "show", "2024-03-01")
	assertContains(t, out, "Squat")
	assertContains(t, out, "120kg x 3")

	out = mustRun(t, dir, "backup", "status")
	assertContains(t, out, "No backup recorded")
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	dir := setupCLI(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "workouts": []}`), 0600); err != nil {
		t.Fatal(err)
	}

	mustRun(t, dir, "workout", "add", "2024-03-01")

	out, err := run(t, dir, "import", "json", path)
	if err == nil {
		t.Fatal("expected error for invalid backup")
	}
	assertContains(t, out, "nothing was changed")

	out = mustRun(t, dir, "workout", "list")
	assertContains(t, out, "2024-03-01")
}

func TestCSVImportAndExport(t *testing.T) {
	dir := setupCLI(t)
	path := filepath.Join(t.TempDir(), "sets.csv")
	csvData := "Date,ExerciseId,Exercise,Category,Weight,Reps,Distance,TimeSec,Note\n" +
		"2024-03-01,,Squats,Legs,100,5,,,\n" +
		"2024-03-01,,Squats,Legs,100,5,,,\n" +
		"not-a-date,,Squats,Legs,100,5,,,\n"
	if err := os.WriteFile(path, []byte(csvData), 0600); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, dir, "import", "csv", path)
	assertContains(t, out, "1 sets added, 1 duplicates skipped")
	assertContains(t, out, "1 exercises created")
	assertContains(t, out, "1 rows skipped")

	out = mustRun(t, dir, "export", "csv")
	assertContains(t, out, "Date,ExerciseId,Exercise,Category,Weight,Reps,Distance,TimeSec,Note")
	assertContains(t, out, ",Squats,Legs,100,5,,,")
}

func TestExportUnknownFormat(t *testing.T) {
	dir := setupCLI(t)
	if _, err := run(t, dir, "export", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSeedCommand(t *testing.T) {
	dir := setupCLI(t)

	out := mustRun(t, dir, "seed")
	assertContains(t, out, "Demo data loaded")

	out = mustRun(t, dir, "seed")
	assertContains(t, out, "Nothing to do: already done")

	mustRun(t, dir, "reset", "--yes")
	out = mustRun(t, dir, "seed")
	assertContains(t, out, "Nothing to do")
}

func TestRoutineCommands(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, dir, "exercise", "add", "Bench Press", "--category", "Chest")
	mustRun(t, dir, "exercise", "add", "Overhead Press", "--category", "Shoulders")

	out := mustRun(t, dir, "routine", "add", "Push", "Bench Press", "Overhead Press")
	assertContains(t, out, "Push")

	out = mustRun(t, dir, "routine", "list")
	assertContains(t, out, "Push")

	mustRun(t, dir, "routine", "start", "1", "--date", "2024-03-04")
	out = mustRun(t, dir, "workout", "show", "2024-03-04")
	assertContains(t, out, "Bench Press")
	assertContains(t, out, "Overhead Press")
}

func TestMeasureCommands(t *testing.T) {
	dir := setupCLI(t)

	mustRun(t, dir, "measure", "add", "weight", "81.4", "--date", "2024-03-01")
	out := mustRun(t, dir, "measure", "list")
	assertContains(t, out, "81.4")

	if _, err := run(t, dir, "measure", "add", "weight", "heavy"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestMigrateCommand(t *testing.T) {
	dir := setupCLI(t)

	out := mustRun(t, dir, "migrate")
	assertContains(t, out, "Up to date")
	assertContains(t, out, "fitnotes.db")
}
