package summarizer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

const (
	AnthropicKeyEnv       = "ANTHROPIC_API_KEY"
	AnthropicModelEnv     = "ANTHROPIC_MODEL"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	defaultAnthropicMax   = 1024
)

// Anthropic summarizes through the Messages API.
type Anthropic struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newAnthropic(def domain.BackendDefinition, client *http.Client) *Anthropic {
	return &Anthropic{def: def, httpClient: client}
}

func (a *Anthropic) Name() string {
	return backendName(a.def, domain.BackendAnthropic)
}

func (a *Anthropic) Summarize(ctx context.Context, text string) (string, error) {
	name := a.Name()
	apiKey := resolveEnv(a.def.AuthEnvVar, AnthropicKeyEnv)
	if apiKey == "" {
		return "", missingSetting(name, envLabel(a.def.AuthEnvVar, AnthropicKeyEnv), "Anthropic API key not set")
	}

	prompt, err := renderPrompt(a.def.Prompt, domain.TruncateRunes(text, valueOrDefaultInt(a.def.MaxInputChars, domain.DefaultMaxInputChars)))
	if err != nil {
		return "", err
	}

	opts := []anthropicopt.RequestOption{
		anthropicopt.WithAPIKey(apiKey),
		anthropicopt.WithHTTPClient(a.httpClient),
		anthropicopt.WithMaxRetries(0),
	}
	if a.def.Endpoint != "" {
		opts = append(opts, anthropicopt.WithBaseURL(a.def.Endpoint))
	}
	client := anthropic.NewClient(opts...)

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelFor(a.def, AnthropicModelEnv, DefaultAnthropicModel)),
		MaxTokens: int64(valueOrDefaultInt(a.def.MaxLength, defaultAnthropicMax)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		status := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", transportFailure(name, status, err)
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return finish(b.String())
}

var _ ports.Summarizer = (*Anthropic)(nil)
