// Package summarizer holds the remote summarizer clients. Every backend obeys
// the same contract: truncate input to the backend cap, make exactly one call,
// and report domain.ErrNoOutput, *domain.TransportError or
// *domain.ConfigurationError on failure.
package summarizer

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

type Factory struct {
	httpClient *http.Client
	timeout    time.Duration
}

func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultSummarizerTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

func (f *Factory) ForBackend(def domain.BackendDefinition) (ports.Summarizer, error) {
	kind := InferKind(def)

	switch kind {
	case domain.BackendHuggingFace:
		return newHuggingFace(def, f.httpClient), nil
	case domain.BackendGemini:
		return newGemini(def, f.timeout), nil
	case domain.BackendOpenAI:
		return newOpenAI(def, f.httpClient), nil
	case domain.BackendAnthropic:
		return newAnthropic(def, f.httpClient), nil
	case domain.BackendOllama:
		return newOllama(def, f.httpClient), nil
	case domain.BackendExtractive:
		return newExtractive(def), nil
	default:
		return nil, fmt.Errorf("unsupported backend kind: %s", kind)
	}
}

// InferKind returns the declared kind, or guesses it from the endpoint and name
// when the definition leaves it empty.
func InferKind(def domain.BackendDefinition) domain.BackendKind {
	if def.Kind != "" {
		return def.Kind
	}
	endpoint := strings.ToLower(def.Endpoint)
	name := strings.ToLower(def.Name)

	switch {
	case strings.Contains(endpoint, "huggingface"), strings.Contains(name, "huggingface"), name == "hf":
		return domain.BackendHuggingFace
	case strings.Contains(endpoint, "generativelanguage.googleapis.com"), strings.Contains(name, "gemini"):
		return domain.BackendGemini
	case strings.Contains(endpoint, "anthropic.com"), strings.Contains(name, "claude"):
		return domain.BackendAnthropic
	case strings.Contains(endpoint, "openai.com"):
		return domain.BackendOpenAI
	case strings.Contains(name, "ollama"), strings.Contains(endpoint, "11434"):
		return domain.BackendOllama
	case endpoint == "":
		return domain.BackendExtractive
	default:
		return domain.BackendHuggingFace
	}
}

var _ ports.SummarizerFactory = (*Factory)(nil)
