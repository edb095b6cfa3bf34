package summarizer

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

const (
	OllamaHostEnv      = "OLLAMA_HOST"
	OllamaModelEnv     = "OLLAMA_MODEL"
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultOllamaModel = "llama3.2"
)

// Ollama summarizes with a local Ollama server. It needs no credential.
type Ollama struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newOllama(def domain.BackendDefinition, client *http.Client) *Ollama {
	return &Ollama{def: def, httpClient: client}
}

func (o *Ollama) Name() string {
	return backendName(o.def, domain.BackendOllama)
}

func (o *Ollama) Summarize(ctx context.Context, text string) (string, error) {
	name := o.Name()
	host := valueOrDefault(o.def.Endpoint, valueOrDefault(resolveEnv(OllamaHostEnv), DefaultOllamaHost))
	u, err := url.Parse(host)
	if err != nil {
		return "", missingSetting(name, "endpoint", "invalid Ollama host "+host)
	}

	prompt, err := renderPrompt(o.def.Prompt, domain.TruncateRunes(text, valueOrDefaultInt(o.def.MaxInputChars, domain.DefaultMaxInputChars)))
	if err != nil {
		return "", err
	}

	stream := false
	req := &ollama.GenerateRequest{
		Model:  modelFor(o.def, OllamaModelEnv, DefaultOllamaModel),
		Prompt: prompt,
		Stream: &stream,
	}

	var out strings.Builder
	client := ollama.NewClient(u, o.httpClient)
	if err := client.Generate(ctx, req, func(gr ollama.GenerateResponse) error {
		out.WriteString(gr.Response)
		return nil
	}); err != nil {
		status := 0
		var statusErr ollama.StatusError
		if errors.As(err, &statusErr) {
			status = statusErr.StatusCode
		}
		return "", transportFailure(name, status, err)
	}
	return finish(out.String())
}

var _ ports.Summarizer = (*Ollama)(nil)
