package summarizer

import (
	"bytes"
	"strings"
	"text/template"
)

// DefaultPrompt is the instruction sent to chat-style backends.
const DefaultPrompt = "Summarize the following text:\n{{.Text}}"

type templateData struct {
	Text string
}

// renderPrompt expands a backend prompt template around text. A template
// without a {{.Text}} reference gets the text appended on its own line.
func renderPrompt(raw string, text string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultPrompt
	}
	if !strings.Contains(raw, ".Text") {
		raw = strings.TrimRight(raw, "\n") + "\n{{.Text}}"
	}
	tmpl, err := template.New("prompt").Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
