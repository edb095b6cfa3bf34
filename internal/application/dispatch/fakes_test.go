package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

// memFS is an in-memory workspace that records every mutating call.
type memFS struct {
	files map[string]string
	dirs  map[string]bool
	calls []string
}

func newMemFS(files ...string) *memFS {
	fs := &memFS{files: map[string]string{}, dirs: map[string]bool{}}
	for _, f := range files {
		fs.files[f] = ""
	}
	return fs
}

func (m *memFS) record(format string, args ...interface{}) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *memFS) Exists(name string) bool {
	_, ok := m.files[name]
	return ok || m.dirs[name]
}

func (m *memFS) IsDir(name string) bool { return m.dirs[name] }

func (m *memFS) Move(src, dst string) error {
	m.record("move %s %s", src, dst)
	if m.dirs[dst] {
		dst = path.Join(dst, path.Base(src))
	}
	m.files[dst] = m.files[src]
	delete(m.files, src)
	return nil
}

func (m *memFS) Copy(src, dst string) error {
	m.record("copy %s %s", src, dst)
	m.files[dst] = m.files[src]
	return nil
}

func (m *memFS) Remove(name string) error {
	m.record("remove %s", name)
	delete(m.files, name)
	return nil
}

func (m *memFS) RemoveTree(name string) error {
	m.record("rmtree %s", name)
	delete(m.dirs, name)
	return nil
}

func (m *memFS) Mkdir(name string) error {
	m.record("mkdir %s", name)
	m.dirs[name] = true
	return nil
}

func (m *memFS) ListTopLevel(string) ([]string, error) {
	var names []string
	for name := range m.files {
		if !strings.Contains(name, "/") {
			names = append(names, name)
		}
	}
	for name := range m.dirs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *memFS) ReadText(name string) (string, error) {
	text, ok := m.files[name]
	if !ok {
		return "", os.ErrNotExist
	}
	return text, nil
}

func (m *memFS) WriteText(name, text string) error {
	m.record("write %s", name)
	m.files[name] = text
	return nil
}

func (m *memFS) AppendLine(name, text string) error {
	m.record("append %s", name)
	m.files[name] += text + "\n"
	return nil
}

func (m *memFS) ReplaceAll(name, old, new string) error {
	m.record("replace %s", name)
	m.files[name] = strings.ReplaceAll(m.files[name], old, new)
	return nil
}

// memArchive keeps archives as maps of stored name to content.
type memArchive struct {
	fs       *memFS
	archives map[string]map[string][]byte
	created  []string
}

func newMemArchive(fs *memFS) *memArchive {
	return &memArchive{fs: fs, archives: map[string]map[string][]byte{}}
}

func (a *memArchive) put(archive string, entries map[string]string) {
	stored := map[string][]byte{}
	for k, v := range entries {
		stored[k] = []byte(v)
	}
	a.archives[archive] = stored
	a.fs.files[archive] = ""
}

func (a *memArchive) CreateZip(dest string, entries []domain.ArchiveEntry) error {
	a.created = append(a.created, dest)
	stored := map[string][]byte{}
	for _, e := range entries {
		stored[e.StoredName] = []byte(a.fs.files[e.Source])
	}
	a.archives[dest] = stored
	a.fs.files[dest] = ""
	return nil
}

func (a *memArchive) ListEntries(archive string) ([]string, error) {
	entries, ok := a.archives[archive]
	if !ok {
		return nil, os.ErrNotExist
	}
	var names []string
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (a *memArchive) ReadEntry(archive, name string) ([]byte, error) {
	return a.archives[archive][name], nil
}

// fakeSummaries mimics the pipeline's error contract.
type fakeSummaries struct {
	summary string
	err     error
	inputs  []string
}

func (f *fakeSummaries) SummarizeDocument(_ context.Context, doc string) (string, error) {
	f.inputs = append(f.inputs, doc)
	if strings.TrimSpace(doc) == "" {
		return "", domain.ErrEmptyInput
	}
	return f.summary, f.err
}

// denyGuard refuses any target in its set.
type denyGuard map[string]bool

func (g denyGuard) Evaluate(target string) (domain.GuardDecision, error) {
	if g[target] {
		return domain.GuardDecision{Target: target, Reason: "Refusing to modify protected path", Rule: "test"}, nil
	}
	return domain.Allow(target), nil
}

// panicFS blows up on every call.
type panicFS struct{ memFS }

func (p *panicFS) Exists(string) bool { panic("disk on fire") }

type memHistory struct {
	records []domain.HistoryRecord
	failing bool
}

func (h *memHistory) Save(r domain.HistoryRecord) error {
	if h.failing {
		return errors.New("history unavailable")
	}
	h.records = append(h.records, r)
	return nil
}

func (h *memHistory) Records(int, string) ([]domain.HistoryRecord, error) { return h.records, nil }
func (h *memHistory) Prune(time.Time) (int64, error)                      { return 0, nil }
func (h *memHistory) Clear() error                                         { h.records = nil; return nil }
func (h *memHistory) ExportJSON(string) error                              { return nil }
func (h *memHistory) Path() string                                         { return "memory" }
