package domain

import "fmt"

// BackendKind identifies the remote service family behind a summarizer backend.
type BackendKind string

const (
	BackendHuggingFace BackendKind = "huggingface"
	BackendGemini      BackendKind = "gemini"
	BackendOpenAI      BackendKind = "openai"
	BackendAnthropic   BackendKind = "anthropic"
	BackendOllama      BackendKind = "ollama"
	BackendExtractive  BackendKind = "extractive"
)

// KnownBackendKinds lists every kind the summarizer factory can build.
var KnownBackendKinds = []BackendKind{
	BackendHuggingFace,
	BackendGemini,
	BackendOpenAI,
	BackendAnthropic,
	BackendOllama,
	BackendExtractive,
}

// BackendDefinition describes one summarizer backend declared in the config file.
// Credentials are never stored here; AuthEnvVar and ModelEnvVar name the
// environment variables that hold them.
type BackendDefinition struct {
	Name          string      `yaml:"name"`
	Kind          BackendKind `yaml:"kind"`
	Endpoint      string      `yaml:"endpoint,omitempty"`
	AuthEnvVar    string      `yaml:"auth_env_var,omitempty"`
	ModelEnvVar   string      `yaml:"model_env_var,omitempty"`
	ModelID       string      `yaml:"model_id,omitempty"`
	MaxInputChars int         `yaml:"max_input_chars,omitempty"`
	MaxLength     int         `yaml:"max_length,omitempty"`
	MinLength     int         `yaml:"min_length,omitempty"`
	Prompt        string      `yaml:"prompt,omitempty"`
}

// IsKnownBackendKind reports whether kind names a buildable backend. The empty
// kind is accepted because the factory infers it from the endpoint.
func IsKnownBackendKind(kind BackendKind) bool {
	if kind == "" {
		return true
	}
	for _, known := range KnownBackendKinds {
		if kind == known {
			return true
		}
	}
	return false
}

// DefaultBackend returns the backend named by summarizer.default, or the first
// declared backend when no default is set.
func (c *Config) DefaultBackend() (BackendDefinition, error) {
	name := c.Summarizer.Default
	if name == "" {
		if len(c.Summarizer.Backends) == 0 {
			return BackendDefinition{}, fmt.Errorf("no summarizer backend configured")
		}
		return c.Summarizer.Backends[0], nil
	}
	backend, ok := c.FindBackend(name)
	if !ok {
		return BackendDefinition{}, fmt.Errorf("default backend %s not found in configuration", name)
	}
	return backend, nil
}

// FindBackend searches for a backend by name.
func (c *Config) FindBackend(name string) (BackendDefinition, bool) {
	for _, backend := range c.Summarizer.Backends {
		if backend.Name == name {
			return backend, true
		}
	}
	return BackendDefinition{}, false
}

// PickBackend resolves an explicit override, falling back to the default backend.
func (c *Config) PickBackend(override string) (BackendDefinition, error) {
	if override == "" {
		return c.DefaultBackend()
	}
	backend, ok := c.FindBackend(override)
	if !ok {
		return BackendDefinition{}, fmt.Errorf("backend %s not configured", override)
	}
	return backend, nil
}
