// ABOUTME: Integration tests for fitnotes CLI.
// ABOUTME: Builds the binary and drives a full log, backup and restore cycle.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "fitnotes")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/fitnotes")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	dataDir := t.TempDir()
	backupPath := filepath.Join(t.TempDir(), "backup.json")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--data-dir", dataDir}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+t.TempDir(),
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}
	expect := func(output, want string) {
		t.Helper()
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	// First run seeds the demo catalog
	output, err := run("exercise", "list", "--query", "bench")
	if err != nil {
		t.Fatalf("Failed to list exercises: %v\n%s", err, output)
	}
	expect(output, "Flat Barbell Bench Press")

	output, err = run("set", "add", "2020-01-06", "Flat Barbell Bench Press", "--weight", "60", "--reps", "10")
	if err != nil {
		t.Fatalf("Failed to add set: %v\n%s", err, output)
	}
	expect(output, "60kg x 10")

	output, err = run("measure", "add", "weight", "82.5", "--date", "2020-01-06")
	if err != nil {
		t.Fatalf("Failed to add measurement: %v\n%s", err, output)
	}
	expect(output, "Added weight")

	output, err = run("export", "json", "-o", backupPath)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}

	output, err = run("reset", "--yes")
	if err != nil {
		t.Fatalf("Failed to reset: %v\n%s", err, output)
	}

	// Reset must not bring demo data back
	output, err = run("exercise", "list")
	if err != nil {
		t.Fatalf("Failed to list exercises: %v\n%s", err, output)
	}
	expect(output, "No exercises found.")

	output, err = run("import", "json", backupPath)
	if err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}
	expect(output, "Restored")

	output, err = run("workout", "show", "2020-01-06")
	if err != nil {
		t.Fatalf("Failed to show workout: %v\n%s", err, output)
	}
	expect(output, "60kg x 10")
}
