package summarizer

import (
	"context"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

const (
	GeminiKeyEnv       = "GEMINI_API_KEY"
	GeminiModelEnv     = "GEMINI_MODEL"
	DefaultGeminiModel = "models/gemini-pro"
)

// Gemini summarizes through the Google Generative Language API.
type Gemini struct {
	def     domain.BackendDefinition
	timeout time.Duration
}

func newGemini(def domain.BackendDefinition, timeout time.Duration) *Gemini {
	return &Gemini{def: def, timeout: timeout}
}

func (g *Gemini) Name() string {
	return backendName(g.def, domain.BackendGemini)
}

func (g *Gemini) Summarize(ctx context.Context, text string) (string, error) {
	name := g.Name()
	apiKey := resolveEnv(g.def.AuthEnvVar, GeminiKeyEnv, "GOOGLE_API_KEY")
	if apiKey == "" {
		return "", missingSetting(name, envLabel(g.def.AuthEnvVar, GeminiKeyEnv), "Gemini API key not set")
	}

	prompt, err := renderPrompt(g.def.Prompt, domain.TruncateRunes(text, valueOrDefaultInt(g.def.MaxInputChars, domain.DefaultGeminiMaxInputChars)))
	if err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if g.def.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.def.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", transportFailure(name, 0, err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelFor(g.def, GeminiModelEnv, DefaultGeminiModel))
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", transportFailure(name, 0, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domain.ErrNoOutput
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return finish(b.String())
}

var _ ports.Summarizer = (*Gemini)(nil)
