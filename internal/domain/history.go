package domain

import "time"

// HistoryRecord captures one dispatched command line and the text it produced.
type HistoryRecord struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	Line       string     `json:"line"`
	Intent     IntentKind `json:"intent"`
	Output     string     `json:"output"`
	OK         bool       `json:"ok"`
	DurationMS int64      `json:"duration_ms"`
}

// CacheEntry stores a cached summarizer response.
type CacheEntry struct {
	Key       string    `json:"key"`
	Backend   string    `json:"backend"`
	Summary   string    `json:"summary"`
	InputLen  int       `json:"input_len"`
	CreatedAt time.Time `json:"created_at"`
}
