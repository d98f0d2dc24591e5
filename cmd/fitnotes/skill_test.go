// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation, and embedded content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSkillFrontmatter(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	parts := strings.SplitN(string(content), "---", 3)
	if len(parts) != 3 || parts[0] != "" {
		t.Fatal("Expected SKILL.md to start with YAML frontmatter")
	}

	var meta struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		t.Fatalf("frontmatter is not valid YAML: %v", err)
	}
	if meta.Name != "fitnotes" {
		t.Errorf("name = %q, want fitnotes", meta.Name)
	}
	if meta.Description == "" {
		t.Error("description is empty")
	}

	for _, marker := range []string{
		"mcp__fitnotes__add_set",
		"mcp__fitnotes__list_workouts",
		"mcp__fitnotes__add_measurement",
		"## Exercise types",
	} {
		if !strings.Contains(parts[2], marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestInstallSkillWritesFile(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(&out, strings.NewReader(""), home, true); err != nil {
		t.Fatalf("installSkill: %v", err)
	}

	path := filepath.Join(home, ".claude", "skills", "fitnotes", "SKILL.md")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("skill file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("skill file mode = %o, want 600", info.Mode().Perm())
	}
	if !strings.Contains(out.String(), "Installed fitnotes skill") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInstallSkillOverwrites(t *testing.T) {
	home := t.TempDir()
	path := skillPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stale content"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader("y\n"), home, false); err != nil {
		t.Fatalf("installSkill: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("expected overwrite notice")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("old content should have been replaced")
	}
}

func TestInstallSkillCanceled(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(&out, strings.NewReader("n\n"), home, false); err != nil {
		t.Fatalf("installSkill: %v", err)
	}
	if !strings.Contains(out.String(), "Installation canceled.") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if _, err := os.Stat(skillPath(home)); !os.IsNotExist(err) {
		t.Error("skill file should not exist after cancel")
	}
}
