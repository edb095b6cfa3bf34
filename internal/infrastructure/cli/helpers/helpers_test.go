package helpers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/domain"
	configinfra "github.com/doeshing/byte-agent-go/internal/infrastructure/config"
)

func TestCalculateTopEntries(t *testing.T) {
	freq := map[string]int{"find": 3, "move": 1, "copy": 3, "zip": 2}

	got := CalculateTopEntries(freq, 3)
	want := []Statistic{{"copy", 3}, {"find", 3}, {"zip", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("top entries mismatch (-want +got):\n%s", diff)
	}
	if all := CalculateTopEntries(freq, 0); len(all) != 4 {
		t.Fatalf("limit 0 should return all, got %d", len(all))
	}
}

func TestCalculateSuccessRate(t *testing.T) {
	if got := CalculateSuccessRate(0, 0); got != 0 {
		t.Fatalf("empty rate = %v", got)
	}
	if got := CalculateSuccessRate(3, 4); got != 75 {
		t.Fatalf("rate = %v", got)
	}
}

func TestAssignSetting(t *testing.T) {
	cfg := configinfra.DefaultConfig()

	updated, err := AssignSetting(cfg, "summarizer.default", "gemini")
	if err != nil {
		t.Fatalf("set default: %v", err)
	}
	if updated.Summarizer.Default != "gemini" || cfg.Summarizer.Default != "huggingface" {
		t.Fatalf("default = %q, original = %q", updated.Summarizer.Default, cfg.Summarizer.Default)
	}

	updated, err = AssignSetting(cfg, "chunking", "{size: 2400, overlap: 0}")
	if err != nil {
		t.Fatalf("set chunking: %v", err)
	}
	if diff := cmp.Diff(domain.ChunkingSettings{Size: 2400, Overlap: 0}, updated.Chunking); diff != "" {
		t.Fatalf("chunking mismatch (-want +got):\n%s", diff)
	}

	updated, err = AssignSetting(cfg, "security.protected", "[.git, .ssh]")
	if err != nil {
		t.Fatalf("set protected: %v", err)
	}
	if diff := cmp.Diff([]string{".git", ".ssh"}, updated.Security.Protected); diff != "" {
		t.Fatalf("protected mismatch (-want +got):\n%s", diff)
	}

	for _, key := range []string{"sumarizer.default", "chunking.sizes", "chunking.size.deeper"} {
		if _, err := AssignSetting(cfg, key, "1"); !errors.Is(err, ErrUnknownSetting) {
			t.Errorf("AssignSetting(%q) error = %v, want ErrUnknownSetting", key, err)
		}
	}
	if _, err := AssignSetting(cfg, "chunking.overlap", "5000"); err == nil {
		t.Error("overlap above size should fail validation")
	}
	if _, err := AssignSetting(cfg, "summarizer.default", "missing"); err == nil {
		t.Error("unknown default backend should fail validation")
	}
}

func TestLookupSetting(t *testing.T) {
	value, err := LookupSetting(configinfra.DefaultConfig(), "chunking.size")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if value != 1800 {
		t.Fatalf("chunking.size = %v", value)
	}
	if _, err := LookupSetting(configinfra.DefaultConfig(), "chunking.nope"); !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("error = %v, want ErrUnknownSetting", err)
	}
}

func TestSaveConfigBacksUpPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	container := &app.Container{ConfigLoader: configinfra.NewFileLoader(path).WithEnvFiles()}
	cfg := configinfra.DefaultConfig()

	backup, err := SaveConfig(container, cfg)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if backup != "" {
		t.Fatalf("nothing to back up on first save, got %q", backup)
	}

	cfg.Summarizer.Default = "offline"
	backup, err = SaveConfig(container, cfg)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Fatalf("backup missing: %v", err)
	}

	before, _ := os.ReadFile(path)
	cfg.Chunking.Overlap = cfg.Chunking.Size
	if _, err := SaveConfig(container, cfg); err == nil || !strings.Contains(err.Error(), "chunking.overlap") {
		t.Fatalf("expected the failing setting in the error, got %v", err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatal("invalid config must not be written")
	}
}

func TestAsker(t *testing.T) {
	var out bytes.Buffer
	asker := NewAsker(&out, strings.NewReader("yes\n\nmaybe\nn\nGEMINI\nnope\n\n"))

	if !asker.Confirm("Delete?") {
		t.Fatalf("yes should confirm")
	}
	if asker.Confirm("Delete?") {
		t.Fatalf("empty answer should default to no")
	}
	if asker.YesNo("Cache?", true) {
		t.Fatalf("maybe then n should answer no")
	}
	if got := asker.Pick("Default summarizer", []string{"huggingface", "gemini"}, "huggingface"); got != "gemini" {
		t.Fatalf("pick = %q", got)
	}
	if got := asker.Pick("Default summarizer", []string{"huggingface", "gemini"}, "huggingface"); got != "huggingface" {
		t.Fatalf("pick after bad answer = %q", got)
	}
	if got := asker.Text("Workspace", "~/Desktop"); got != "~/Desktop" {
		t.Fatalf("text at end of input = %q", got)
	}

	text := out.String()
	for _, want := range []string{"Delete? [y/N]: ", "Please answer y or n.", "Default summarizer (huggingface/gemini) [huggingface]: ", "Choose one of: huggingface, gemini"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}
