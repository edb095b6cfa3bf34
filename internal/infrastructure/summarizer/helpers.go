package summarizer

import (
	"os"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

// resolveEnv reads the primary variable, falling back to the conventional one.
func resolveEnv(primary string, fallbacks ...string) string {
	if primary != "" {
		if value := os.Getenv(primary); value != "" {
			return value
		}
	}
	for _, name := range fallbacks {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// envLabel names the variable a user should set when a credential is missing.
func envLabel(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

func valueOrDefaultInt(value int, def int) int {
	if value <= 0 {
		return def
	}
	return value
}

func backendName(def domain.BackendDefinition, kind domain.BackendKind) string {
	return valueOrDefault(def.Name, string(kind))
}

// modelFor resolves the model identifier: explicit model_id, then the model
// environment variable, then the fallback.
func modelFor(def domain.BackendDefinition, envFallback, fallback string) string {
	if def.ModelID != "" {
		return def.ModelID
	}
	return valueOrDefault(resolveEnv(def.ModelEnvVar, envFallback), fallback)
}

// finish trims a response and maps blank text to ErrNoOutput.
func finish(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrNoOutput
	}
	return text, nil
}

func missingSetting(backend, setting, message string) error {
	return &domain.ConfigurationError{Backend: backend, Setting: setting, Message: message}
}

func transportFailure(backend string, status int, err error) error {
	return &domain.TransportError{Backend: backend, StatusCode: status, Err: err}
}
