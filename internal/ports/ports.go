// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (classifier, chunking, summarization pipeline, dispatcher)
// depends only on these interfaces. Infrastructure adapters such as the local
// filesystem, the zip archive writer, the remote summarizer clients and the
// history database implement them, which keeps the core testable with stubs.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.byteagent/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Summarizer wraps a single "summarize(text) -> text" call against a remote
// text-generation service. Implementations truncate input to their safety cap,
// return domain.ErrNoOutput when the response carries no text, a
// *domain.TransportError when the call fails, and a *domain.ConfigurationError
// when a credential or model identifier is missing. Each call is attempted once.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
}

// SummarizerFactory builds summarizer instances from backend definitions.
type SummarizerFactory interface {
	ForBackend(domain.BackendDefinition) (Summarizer, error)
}

// DocumentSummarizer reduces an arbitrarily long document to a bounded summary.
type DocumentSummarizer interface {
	SummarizeDocument(ctx context.Context, document string) (string, error)
}

// IntentClassifier maps a raw command line to an Intent.
type IntentClassifier interface {
	Classify(line string) domain.Intent
}

// FileSystem is the workspace filesystem collaborator. Every name is relative
// to the workspace root.
type FileSystem interface {
	Exists(name string) bool
	IsDir(name string) bool
	Move(src, dst string) error
	Copy(src, dst string) error
	Remove(name string) error
	RemoveTree(name string) error
	Mkdir(name string) error
	ListTopLevel(dir string) ([]string, error)
	ReadText(name string) (string, error)
	WriteText(name, text string) error
	AppendLine(name, text string) error
	ReplaceAll(name, old, new string) error
}

// Archive is the zip archive collaborator. Names are relative to the workspace root.
type Archive interface {
	CreateZip(dest string, entries []domain.ArchiveEntry) error
	ListEntries(archive string) ([]string, error)
	ReadEntry(archive, name string) ([]byte, error)
}

// SecurityService evaluates workspace paths before a mutating command touches them.
type SecurityService interface {
	Evaluate(target string) (domain.GuardDecision, error)
}

// HistoryRepository persists dispatched command lines.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Prune(before time.Time) (int64, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// CacheRepository stores summarizer responses keyed by content hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
	Dir() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
