// Package config validates a loaded configuration before the container wires it.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Summarizer.Backends) == 0 {
		return errors.New("at least one summarizer backend must be configured")
	}
	if err := validateBackends(cfg.Summarizer.Backends); err != nil {
		return err
	}
	if _, err := cfg.DefaultBackend(); err != nil {
		return err
	}
	if cfg.Summarizer.TimeoutSeconds < 0 {
		return fmt.Errorf("summarizer.timeout must be >= 0")
	}
	if err := validateChunking(cfg.Chunking); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Workspace.Root) == "" {
		return fmt.Errorf("workspace.root must be set")
	}
	return nil
}

func validateBackends(backends []domain.BackendDefinition) error {
	seen := map[string]bool{}
	for i, backend := range backends {
		if backend.Name == "" {
			return fmt.Errorf("summarizer.backends[%d].name must be set", i)
		}
		if seen[backend.Name] {
			return fmt.Errorf("summarizer backend %s declared twice", backend.Name)
		}
		seen[backend.Name] = true
		if !domain.IsKnownBackendKind(backend.Kind) {
			return fmt.Errorf("summarizer backend %s has unknown kind %q", backend.Name, backend.Kind)
		}
		if backend.MaxInputChars < 0 {
			return fmt.Errorf("summarizer backend %s: max_input_chars must not be negative", backend.Name)
		}
		if backend.MinLength > 0 && backend.MaxLength > 0 && backend.MinLength > backend.MaxLength {
			return fmt.Errorf("summarizer backend %s: min_length exceeds max_length", backend.Name)
		}
	}
	return nil
}

func validateChunking(chunking domain.ChunkingSettings) error {
	if chunking.Size <= 0 {
		return fmt.Errorf("chunking.size must be > 0")
	}
	if chunking.Overlap < 0 || chunking.Overlap >= chunking.Size {
		return fmt.Errorf("chunking.overlap must be >= 0 and < chunking.size")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	return nil
}
