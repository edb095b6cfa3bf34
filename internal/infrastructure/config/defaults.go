package config

import (
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/pkg/homedir"
)

const (
	configFormatVersion  = "1"
	defaultWorkspaceRoot = "~/Desktop"
)

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: configFormatVersion,
		Workspace: domain.WorkspaceSettings{
			Root: defaultWorkspaceRoot,
		},
		Summarizer: domain.SummarizerSettings{
			Default:        "huggingface",
			TimeoutSeconds: int(domain.DefaultSummarizerTimeout.Seconds()),
			Cache:          false,
			Backends: []domain.BackendDefinition{
				{
					Name:          "huggingface",
					Kind:          domain.BackendHuggingFace,
					Endpoint:      domain.DefaultHuggingFaceEndpoint,
					AuthEnvVar:    "HF_TOKEN",
					ModelEnvVar:   "MODEL_ID",
					MaxInputChars: domain.DefaultMaxInputChars,
					MaxLength:     domain.DefaultSummaryMaxLength,
					MinLength:     domain.DefaultSummaryMinLength,
				},
				{
					Name:          "gemini",
					Kind:          domain.BackendGemini,
					AuthEnvVar:    "GEMINI_API_KEY",
					ModelEnvVar:   "GEMINI_MODEL",
					MaxInputChars: domain.DefaultGeminiMaxInputChars,
				},
				{
					Name:          "offline",
					Kind:          domain.BackendExtractive,
					MaxInputChars: domain.DefaultMaxInputChars,
					MinLength:     domain.DefaultSummaryMinLength,
				},
			},
		},
		Chunking: domain.ChunkingSettings{
			Size:    domain.DefaultChunkSize,
			Overlap: domain.DefaultChunkOverlap,
		},
		History: domain.HistorySettings{
			Enabled:       true,
			Path:          homedir.AppPath("history.db"),
			RetentionDays: domain.DefaultHistoryRetainDays,
		},
		Security: domain.SecuritySettings{
			RulesFile: homedir.AppPath("guardrail.yaml"),
			Protected: []string{".git", ".ssh", ".env"},
		},
		Server: domain.ServerSettings{
			Addr: domain.DefaultServerAddr,
		},
	}
}

// hydrateDefaults fills settings a hand-written config may omit. Chunk overlap
// is only defaulted together with the size, since zero overlap is valid.
func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = configFormatVersion
	}
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = defaultWorkspaceRoot
	}
	if cfg.Summarizer.Default == "" && len(cfg.Summarizer.Backends) > 0 {
		cfg.Summarizer.Default = cfg.Summarizer.Backends[0].Name
	}
	if cfg.Summarizer.TimeoutSeconds == 0 {
		cfg.Summarizer.TimeoutSeconds = int(domain.DefaultSummarizerTimeout.Seconds())
	}
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = domain.DefaultChunkSize
		if cfg.Chunking.Overlap == 0 {
			cfg.Chunking.Overlap = domain.DefaultChunkOverlap
		}
	}
	if cfg.History.Path == "" {
		cfg.History.Path = homedir.AppPath("history.db")
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = domain.DefaultServerAddr
	}
	return cfg
}
