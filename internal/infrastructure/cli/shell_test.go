package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/byte-agent-go/internal/application/dispatch"
	"github.com/doeshing/byte-agent-go/internal/domain"
)

type scriptedRunner struct {
	lines   []string
	outputs map[string]string
}

func (s *scriptedRunner) Run(_ context.Context, line string) (dispatch.Result, error) {
	s.lines = append(s.lines, line)
	if strings.TrimSpace(line) == "exit" {
		return dispatch.Result{Intent: domain.ExitIntent{}, Output: dispatch.MsgGoodbye, Exit: true}, nil
	}
	return dispatch.Result{Output: s.outputs[line]}, nil
}

func TestShellStopsOnExit(t *testing.T) {
	runner := &scriptedRunner{outputs: map[string]string{
		"find pdf": "Found 1 files:\nreport.PDF",
	}}
	var out bytes.Buffer
	in := strings.NewReader("find pdf\nexit\nfind never\n")

	if err := runShell(context.Background(), in, &out, runner, "/tmp/ws"); err != nil {
		t.Fatalf("runShell: %v", err)
	}
	if diff := cmp.Diff([]string{"find pdf", "exit"}, runner.lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	text := out.String()
	for _, want := range []string{"Workspace: /tmp/ws", "Found 1 files:\nreport.PDF", "Goodbye!"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestShellEndsOnEOF(t *testing.T) {
	runner := &scriptedRunner{outputs: map[string]string{"bogus": "Sorry, I didn't understand that command."}}
	var out bytes.Buffer

	if err := runShell(context.Background(), strings.NewReader("bogus\r\n"), &out, runner, "/ws"); err != nil {
		t.Fatalf("runShell: %v", err)
	}
	if diff := cmp.Diff([]string{"bogus"}, runner.lines); diff != "" {
		t.Fatalf("lines mismatch:\n%s", diff)
	}
	if !strings.Contains(out.String(), "didn't understand") {
		t.Fatalf("result not printed: %q", out.String())
	}
}

func TestRunOnceJoinsWords(t *testing.T) {
	runner := &scriptedRunner{outputs: map[string]string{"create folder reports": "Created folder reports"}}
	var out bytes.Buffer

	if err := runOnce(context.Background(), &out, runner, []string{"create", "folder", "reports"}); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if got := out.String(); got != "Created folder reports\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRendererPlainOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out)
	r.Result("")
	r.Result("[ERROR] File not found: a.txt")
	r.Result("Moved a to b")

	if got := out.String(); got != "[ERROR] File not found: a.txt\nMoved a to b\n" {
		t.Fatalf("rendered = %q", got)
	}
}
