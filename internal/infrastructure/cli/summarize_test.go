package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/doeshing/byte-agent-go/internal/application/chunking"
	"github.com/doeshing/byte-agent-go/internal/application/summarize"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/pkg/logger"
)

type stubSummarizer struct {
	out string
	err error
}

func (s stubSummarizer) Name() string { return "stub" }
func (s stubSummarizer) Summarize(context.Context, string) (string, error) {
	return s.out, s.err
}

func newTestPipeline(s stubSummarizer) *summarize.Pipeline {
	return summarize.NewPipeline(s, chunking.DefaultOptions(), logger.Discard())
}

func TestSummarizeFileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "notes.txt")
	output := filepath.Join(dir, "summary.txt")
	if err := os.WriteFile(source, []byte("a long story about chunking"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var out bytes.Buffer
	spinner := NewSpinner(io.Discard, "")
	err := summarizeFile(context.Background(), &out, spinner, newTestPipeline(stubSummarizer{out: "short"}), logger.Discard(), source, output)
	if err != nil {
		t.Fatalf("summarizeFile: %v", err)
	}
	if got := out.String(); got != "Summary saved to "+output+"\n" {
		t.Fatalf("output = %q", got)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if string(data) != "short" {
		t.Fatalf("summary = %q", data)
	}
}

func TestSummarizeFileReportsConfigurationError(t *testing.T) {
	source := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(source, []byte("a long story"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	missing := &domain.ConfigurationError{Backend: "huggingface", Setting: "HF_TOKEN", Message: "token missing"}

	var out bytes.Buffer
	err := summarizeFile(context.Background(), &out, NewSpinner(io.Discard, ""), newTestPipeline(stubSummarizer{err: missing}), logger.Discard(), source, "")
	if err == nil || !strings.Contains(err.Error(), "HF_TOKEN") {
		t.Fatalf("expected HF_TOKEN in error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed, got %q", out.String())
	}
}
