package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Conventional environment variables for the Hugging Face backend.
const (
	HuggingFaceTokenEnv = "HF_TOKEN"
	HuggingFaceModelEnv = "MODEL_ID"
)

// HuggingFace calls the hosted inference API with a bearer token.
type HuggingFace struct {
	def        domain.BackendDefinition
	httpClient *http.Client
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

type hfResult struct {
	SummaryText   *string `json:"summary_text"`
	GeneratedText *string `json:"generated_text"`
}

func newHuggingFace(def domain.BackendDefinition, client *http.Client) *HuggingFace {
	return &HuggingFace{def: def, httpClient: client}
}

func (h *HuggingFace) Name() string {
	return backendName(h.def, domain.BackendHuggingFace)
}

func (h *HuggingFace) Summarize(ctx context.Context, text string) (string, error) {
	name := h.Name()
	token := resolveEnv(h.def.AuthEnvVar, HuggingFaceTokenEnv)
	if token == "" {
		return "", missingSetting(name, envLabel(h.def.AuthEnvVar, HuggingFaceTokenEnv), "Hugging Face API token not set")
	}
	model := modelFor(h.def, HuggingFaceModelEnv, "")
	if model == "" {
		return "", missingSetting(name, envLabel(h.def.ModelEnvVar, HuggingFaceModelEnv), "model id not set")
	}

	payload := hfRequest{
		Inputs: domain.TruncateRunes(text, valueOrDefaultInt(h.def.MaxInputChars, domain.DefaultMaxInputChars)),
		Parameters: hfParameters{
			MaxLength: valueOrDefaultInt(h.def.MaxLength, domain.DefaultSummaryMaxLength),
			MinLength: valueOrDefaultInt(h.def.MinLength, domain.DefaultSummaryMinLength),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(valueOrDefault(h.def.Endpoint, domain.DefaultHuggingFaceEndpoint), "/") + "/" + model
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", transportFailure(name, 0, err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("authorization", "Bearer "+token)

	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		return "", transportFailure(name, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &domain.TransportError{Backend: name, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", transportFailure(name, resp.StatusCode, err)
	}

	summary, err := parseHuggingFaceResponse(responseBody.Bytes())
	if err != nil {
		return "", err
	}
	return finish(summary)
}

// parseHuggingFaceResponse accepts a single object or a list whose first
// element carries summary_text or generated_text.
func parseHuggingFaceResponse(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", domain.ErrNoOutput
	}

	var result hfResult
	switch trimmed[0] {
	case '[':
		var list []hfResult
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrNoOutput, err)
		}
		if len(list) == 0 {
			return "", domain.ErrNoOutput
		}
		result = list[0]
	case '{':
		if err := json.Unmarshal(trimmed, &result); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrNoOutput, err)
		}
	default:
		return "", fmt.Errorf("%w: unexpected response %q", domain.ErrNoOutput, domain.TruncateRunes(string(trimmed), 40))
	}

	switch {
	case result.SummaryText != nil:
		return *result.SummaryText, nil
	case result.GeneratedText != nil:
		return *result.GeneratedText, nil
	default:
		return "", domain.ErrNoOutput
	}
}

var _ ports.Summarizer = (*HuggingFace)(nil)
