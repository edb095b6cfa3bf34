package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/byte-agent-go/internal/application/dispatch"
)

// Renderer prints command results. Colors are only emitted when the writer
// is a terminal.
type Renderer struct {
	out    io.Writer
	errors lipgloss.Style
	prompt lipgloss.Style
	banner lipgloss.Style
}

// NewRenderer builds a renderer for out.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:    out,
		errors: r.NewStyle().Foreground(lipgloss.Color("#ff5555")),
		prompt: r.NewStyle().Foreground(lipgloss.Color("#87ceeb")).Bold(true),
		banner: r.NewStyle().Bold(true),
	}
}

// Result prints one ResultText. Empty output prints nothing.
func (r *Renderer) Result(text string) {
	if text == "" {
		return
	}
	if dispatch.IsError(text) {
		fmt.Fprintln(r.out, r.errors.Render(text))
		return
	}
	fmt.Fprintln(r.out, text)
}

// Prompt prints the interactive prompt without a newline.
func (r *Renderer) Prompt() {
	fmt.Fprint(r.out, r.prompt.Render(">")+" ")
}

// Banner prints the interactive greeting.
func (r *Renderer) Banner(workspace string) {
	fmt.Fprintln(r.out, r.banner.Render("byteagent")+" - workspace file assistant")
	fmt.Fprintf(r.out, "Workspace: %s\n", workspace)
	fmt.Fprintln(r.out, `Try: find pdf files | move a.txt to archive | summarize the content of notes.txt | exit`)
}
