package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, workspace string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	cfg := `config_format_version: "1"
workspace:
  root: ` + workspace + `
summarizer:
  default: offline
  cache: true
  backends:
    - name: offline
      kind: extractive
      min_length: 20
chunking:
  size: 1800
  overlap: 500
history:
  enabled: true
  path: ` + filepath.Join(dir, "history.db") + `
  retention_days: 30
security:
  rules_file: ` + filepath.Join(dir, "guardrail.yaml") + `
`
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestContainerRunsCommandsEndToEnd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	workspace := t.TempDir()

	c, err := BuildContainer(context.Background(), Options{ConfigPath: writeConfig(t, dir, workspace)})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	defer c.Close()

	if err := os.WriteFile(filepath.Join(workspace, "notes.txt"), []byte("First point here. Second point there. Third."), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	steps := []struct {
		line string
		want string
	}{
		{"create folder reports", "Created folder reports"},
		{"copy notes.txt to reports", "Copied notes.txt to reports"},
		{"find notes", "Found 1 files:\nnotes.txt"},
		{"summarize the content of notes.txt and save to summary.txt", "Summary saved to summary.txt"},
		{"delete file .env", "[ERROR] Refusing to modify protected path: .env"},
		{"move notes.txt to .git", "[ERROR] Refusing to modify protected path: .git"},
	}
	for _, step := range steps {
		res, err := c.Session.Run(ctx, step.line)
		if err != nil {
			t.Fatalf("Run(%q): %v", step.line, err)
		}
		if res.Output != step.want {
			t.Fatalf("Run(%q) = %q, want %q", step.line, res.Output, step.want)
		}
	}

	if _, err := os.Stat(filepath.Join(workspace, "reports", "notes.txt")); err != nil {
		t.Fatalf("copy did not land in folder: %v", err)
	}
	summary, err := os.ReadFile(filepath.Join(workspace, "summary.txt"))
	if err != nil || !strings.HasPrefix(string(summary), "First point here.") {
		t.Fatalf("summary = %q, %v", summary, err)
	}

	records, err := c.HistoryStore.Records(10, "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != len(steps) {
		t.Fatalf("history records = %d, want %d", len(records), len(steps))
	}
	if entries, err := c.CacheStore.Entries(); err != nil || len(entries) == 0 {
		t.Fatalf("cache entries = %v, %v", entries, err)
	}
}

func TestContainerWorkspaceOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	override := t.TempDir()

	c, err := BuildContainer(context.Background(), Options{
		ConfigPath: writeConfig(t, dir, "/does/not/matter"),
		Workspace:  override,
	})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	defer c.Close()

	if c.Workspace.Root() != override {
		t.Fatalf("workspace root = %s, want %s", c.Workspace.Root(), override)
	}
	if _, err := c.Pipeline("missing"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
