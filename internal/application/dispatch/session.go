package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Result is the outcome of one command line.
type Result struct {
	Intent domain.Intent
	Output string
	Exit   bool
}

// Session classifies and dispatches command lines one at a time. Concurrent
// callers (HTTP handlers) are serialized so commands never overlap.
type Session struct {
	Classifier ports.IntentClassifier
	Dispatcher *Dispatcher
	History    ports.HistoryRepository
	Logger     ports.Logger
	Now        func() time.Time

	mu sync.Mutex
}

// Run handles a single command line.
func (s *Session) Run(ctx context.Context, line string) (Result, error) {
	if s.Classifier == nil || s.Dispatcher == nil || s.Logger == nil {
		return Result{}, errors.New("dispatch.Session dependencies not satisfied")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := s.now()
	in := s.Classifier.Classify(line)
	s.Logger.Debug("classified command", map[string]interface{}{
		"intent": in.Kind(),
	})

	out := s.Dispatcher.Dispatch(ctx, in)
	res := Result{
		Intent: in,
		Output: out,
		Exit:   in.Kind() == domain.IntentExit,
	}

	s.record(line, res, start)
	return res, nil
}

func (s *Session) record(line string, res Result, start time.Time) {
	if s.History == nil {
		return
	}
	switch res.Intent.Kind() {
	case domain.IntentEmpty, domain.IntentExit:
		return
	}
	rec := domain.HistoryRecord{
		Timestamp:  start,
		Line:       strings.TrimSpace(line),
		Intent:     res.Intent.Kind(),
		Output:     res.Output,
		OK:         !IsError(res.Output) && res.Intent.Kind() != domain.IntentUnknown,
		DurationMS: s.now().Sub(start).Milliseconds(),
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("failed to record history", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
