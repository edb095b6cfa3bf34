package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a document is empty or whitespace only.
	ErrEmptyInput = errors.New("document is empty")
	// ErrNoSummaryProduced is returned when no chunk produced a summary.
	ErrNoSummaryProduced = errors.New("no summary produced")
	// ErrNoOutput is returned when a summarizer call succeeded but carried no text.
	ErrNoOutput = errors.New("summarizer returned no output")
	// ErrOutsideWorkspace is returned for paths that resolve outside the workspace root.
	ErrOutsideWorkspace = errors.New("path escapes workspace")
)

// ConfigurationError reports a missing credential or model identifier. It is
// raised per call attempt and never retried.
type ConfigurationError struct {
	Backend string
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Setting == "" {
		return fmt.Sprintf("%s: configuration: %s", e.Backend, e.Message)
	}
	return fmt.Sprintf("%s: configuration: %s (%s)", e.Backend, e.Message, e.Setting)
}

// TransportError covers network failures, timeouts and non-success status codes.
type TransportError struct {
	Backend    string
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: transport failure: %s", e.Backend, e.Status)
	}
	return fmt.Sprintf("%s: transport failure: %v", e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing file, folder or archive entry.
type NotFoundError struct {
	What string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Name)
}

// AlreadyExistsError reports a create on an existing target.
type AlreadyExistsError struct {
	What string
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.What, e.Name)
}

// IsSummarizerMiss reports whether err is one of the failures the pipeline
// treats as an empty contribution.
func IsSummarizerMiss(err error) bool {
	var cfgErr *ConfigurationError
	var transportErr *TransportError
	return errors.Is(err, ErrNoOutput) || errors.As(err, &cfgErr) || errors.As(err, &transportErr)
}
