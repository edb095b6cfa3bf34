package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path).WithEnvFiles()

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	again, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load error: %v", err)
	}
	if diff := cmp.Diff(cfg, again); diff != "" {
		t.Fatalf("reloaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `workspace:
  root: /srv/files
summarizer:
  backends:
    - name: local
      kind: ollama
chunking:
  size: 1000
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := NewFileLoader(path).WithEnvFiles().Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Workspace.Root != "/srv/files" || cfg.Summarizer.Default != "local" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Chunking.Size != 1000 || cfg.Chunking.Overlap != 0 {
		t.Fatalf("chunking = %+v, want explicit size and zero overlap", cfg.Chunking)
	}
	if cfg.Summarizer.TimeoutSeconds != 60 || cfg.Server.Addr != domain.DefaultServerAddr {
		t.Fatalf("defaults not hydrated: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workspace: [unclosed"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := NewFileLoader(path).WithEnvFiles().Load(context.Background()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPathHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "from-env.yaml")
	t.Setenv(EnvConfigPath, path)
	if got := NewFileLoader("").Path(); got != path {
		t.Fatalf("Path() = %q, want %q", got, path)
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("BYTEAGENT_TEST_TOKEN=from-file\nBYTEAGENT_TEST_KEEP=from-file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	t.Setenv("BYTEAGENT_TEST_TOKEN", "")
	os.Unsetenv("BYTEAGENT_TEST_TOKEN")
	t.Setenv("BYTEAGENT_TEST_KEEP", "from-env")

	loaded, err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %v, want only the existing file", loaded)
	}
	if got := os.Getenv("BYTEAGENT_TEST_TOKEN"); got != "from-file" {
		t.Fatalf("token = %q", got)
	}
	if got := os.Getenv("BYTEAGENT_TEST_KEEP"); got != "from-env" {
		t.Fatalf("existing value overwritten: %q", got)
	}
}

func TestSaveBackupReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path).WithEnvFiles()

	cfg := DefaultConfig()
	cfg.Workspace.Root = "/tmp/elsewhere"
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	backup, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup error: %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	reset, err := loader.Reset()
	if err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if reset.Workspace.Root != defaultWorkspaceRoot {
		t.Fatalf("reset root = %q", reset.Workspace.Root)
	}
}
