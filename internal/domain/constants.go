package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for files created in the workspace (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Chunking constants
const (
	// DefaultChunkSize is the window length, in characters, of one chunk
	DefaultChunkSize = 1800
	// DefaultChunkOverlap is how many characters consecutive chunks share
	DefaultChunkOverlap = 500
)

// Summarizer constants
const (
	// DefaultMaxInputChars caps the text sent in a single summarizer call
	DefaultMaxInputChars = 2000
	// DefaultGeminiMaxInputChars caps the text sent to Gemini
	DefaultGeminiMaxInputChars = 3000
	// DefaultSummaryMaxLength is the max_length generation parameter
	DefaultSummaryMaxLength = 2048
	// DefaultSummaryMinLength is the min_length generation parameter
	DefaultSummaryMinLength = 300
	// DefaultSummarizerTimeout bounds a single summarizer call
	DefaultSummarizerTimeout = 60 * time.Second
	// DefaultHuggingFaceEndpoint is the inference API base; the model id is appended
	DefaultHuggingFaceEndpoint = "https://api-inference.huggingface.co/models"
)

// Limit constants
const (
	// DefaultMaxCacheEntries is the maximum number of cached summaries
	DefaultMaxCacheEntries = 500
	// DefaultCacheTTL is how long a cached summary stays valid
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
)

// Server constants
const (
	// DefaultServerAddr is where the HTTP adapter listens
	DefaultServerAddr = "127.0.0.1:8080"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
