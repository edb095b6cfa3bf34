package summarizer

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

const (
	OpenAIKeyEnv       = "OPENAI_API_KEY"
	OpenAIModelEnv     = "OPENAI_MODEL"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAI summarizes through any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

func newOpenAI(def domain.BackendDefinition, client *http.Client) *OpenAI {
	return &OpenAI{def: def, httpClient: client}
}

func (o *OpenAI) Name() string {
	return backendName(o.def, domain.BackendOpenAI)
}

func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	name := o.Name()
	apiKey := resolveEnv(o.def.AuthEnvVar, OpenAIKeyEnv)
	if apiKey == "" {
		return "", missingSetting(name, envLabel(o.def.AuthEnvVar, OpenAIKeyEnv), "OpenAI API key not set")
	}

	prompt, err := renderPrompt(o.def.Prompt, domain.TruncateRunes(text, valueOrDefaultInt(o.def.MaxInputChars, domain.DefaultMaxInputChars)))
	if err != nil {
		return "", err
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.def.Endpoint != "" {
		cfg.BaseURL = o.def.Endpoint
	}
	cfg.HTTPClient = o.httpClient
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     modelFor(o.def, OpenAIModelEnv, DefaultOpenAIModel),
		MaxTokens: o.def.MaxLength,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		status := 0
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.HTTPStatusCode
		}
		return "", transportFailure(name, status, err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrNoOutput
	}
	return finish(resp.Choices[0].Message.Content)
}

var _ ports.Summarizer = (*OpenAI)(nil)
