package logger

import (
	"io"
	"log"
	"os"
)

// StdLogger is a lightweight leveled logger backed by Go's log package.
// Debug and Info are only written in verbose mode; Warn and Error always are.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return New(os.Stderr, verbose)
}

// New creates a StdLogger writing to w.
func New(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{
		verbose: verbose,
		out:     log.New(w, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *StdLogger {
	return New(io.Discard, false)
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.out.Println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.out.Println("[ERROR]", msg, err, fields)
}
