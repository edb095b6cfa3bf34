package commands

import "github.com/doeshing/byte-agent-go/internal/domain"

// TimestampFormat is how timestamps are printed in listings.
const TimestampFormat = "2006-01-02 15:04:05"

// Limits and defaults for history output.
const (
	DefaultHistoryLimit       = domain.DefaultHistoryLimit
	DefaultHistorySearchLimit = domain.DefaultHistorySearchLimit
	DefaultHistoryRetainDays  = domain.DefaultHistoryRetainDays
	MaxHistoryAnalysisRecords = 1000
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable (history.enabled is false)"
	ErrCacheStoreUnavailable    = "cache store unavailable"
	ErrInvalidRetainDays        = "--days must be > 0"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgNoCachedResponses        = "No cached responses."
	MsgCancelled                = "Cancelled."
)
