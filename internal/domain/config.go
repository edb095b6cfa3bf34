package domain

// Config mirrors ~/.byteagent/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Workspace           WorkspaceSettings  `yaml:"workspace"`
	Summarizer          SummarizerSettings `yaml:"summarizer"`
	Chunking            ChunkingSettings   `yaml:"chunking"`
	History             HistorySettings    `yaml:"history"`
	Security            SecuritySettings   `yaml:"security"`
	Server              ServerSettings     `yaml:"server"`
}

// WorkspaceSettings locates the directory every command path is relative to.
type WorkspaceSettings struct {
	Root string `yaml:"root"`
}

// SummarizerSettings selects and configures the remote summarization backends.
type SummarizerSettings struct {
	Default        string              `yaml:"default"`
	TimeoutSeconds int                 `yaml:"timeout"`
	Cache          bool                `yaml:"cache"`
	Backends       []BackendDefinition `yaml:"backends"`
}

// ChunkingSettings overrides the chunk window used by the summarization pipeline.
type ChunkingSettings struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// HistorySettings controls command history persistence.
type HistorySettings struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// SecuritySettings defines which workspace paths are off limits to mutating commands.
type SecuritySettings struct {
	RulesFile string   `yaml:"rules_file"`
	Protected []string `yaml:"protected"`
}

// ServerSettings configures the HTTP adapter.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}
