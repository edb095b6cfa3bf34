// Package doctor runs environment diagnostics for byteagent.
package doctor

import (
	"context"
	"fmt"
	"os"

	configapp "github.com/doeshing/byte-agent-go/internal/application/config"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/pkg/homedir"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	SecurityService ports.SecurityService
	HistoryStore    ports.HistoryRepository
}

// Run executes checks and returns a report. The error is non-nil only when the
// configuration cannot be loaded at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, workspaceCheck(cfg.Workspace.Root))

	if backend, err := cfg.DefaultBackend(); err != nil {
		checks = append(checks, fail("Summarizer", err.Error()))
	} else {
		checks = append(checks, credentialCheck(backend))
	}

	if s.SecurityService != nil {
		if decision, err := s.SecurityService.Evaluate(".."); err != nil {
			checks = append(checks, fail("Workspace guard", err.Error()))
		} else if decision.Allowed {
			checks = append(checks, warn("Workspace guard", "paths outside the workspace are not refused"))
		} else {
			checks = append(checks, ok("Workspace guard", "rules loaded"))
		}
	} else {
		checks = append(checks, warn("Workspace guard", "security service not initialized"))
	}

	if s.HistoryStore != nil {
		if _, err := s.HistoryStore.Records(1, ""); err != nil {
			checks = append(checks, warn("History", err.Error()))
		} else {
			checks = append(checks, ok("History", s.HistoryStore.Path()))
		}
	} else {
		checks = append(checks, warn("History", "disabled"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func workspaceCheck(root string) domain.HealthCheck {
	path := homedir.Expand(root)
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fail("Workspace", fmt.Sprintf("%s: %v", path, err))
	case !info.IsDir():
		return fail("Workspace", fmt.Sprintf("%s is not a directory", path))
	default:
		return ok("Workspace", path)
	}
}

// credentialCheck reports whether the environment holds what the default
// backend needs for a call.
func credentialCheck(backend domain.BackendDefinition) domain.HealthCheck {
	const name = "Summarizer"
	switch backend.Kind {
	case domain.BackendHuggingFace:
		if envMissing(backend.AuthEnvVar, "HF_TOKEN") {
			return warn(name, fmt.Sprintf("%s: Hugging Face token missing", backend.Name))
		}
		if backend.ModelID == "" && envMissing(backend.ModelEnvVar, "MODEL_ID") {
			return warn(name, fmt.Sprintf("%s: model id missing", backend.Name))
		}
	case domain.BackendGemini:
		if envMissing(backend.AuthEnvVar, "GEMINI_API_KEY") {
			return warn(name, fmt.Sprintf("%s: GEMINI_API_KEY missing", backend.Name))
		}
	case domain.BackendOpenAI:
		if envMissing(backend.AuthEnvVar, "OPENAI_API_KEY") {
			return warn(name, fmt.Sprintf("%s: OPENAI_API_KEY missing", backend.Name))
		}
	case domain.BackendAnthropic:
		if envMissing(backend.AuthEnvVar, "ANTHROPIC_API_KEY") {
			return warn(name, fmt.Sprintf("%s: ANTHROPIC_API_KEY missing", backend.Name))
		}
	}
	return ok(name, fmt.Sprintf("%s ready", backend.Name))
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
