package history

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// FileStore appends history records to a jsonl file.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entropy *rand.Rand
}

// NewFileStore returns a store backed by the jsonl file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, entropy: newEntropy()}
}

// Save appends one record.
func (f *FileStore) Save(record domain.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(stamp(record, f.entropy))
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Records returns entries newest first, filtered by a case-insensitive search
// over the line and output.
func (f *FileStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	f.mu.Lock()
	all, err := f.load()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(search)
	var records []domain.HistoryRecord
	for i := len(all) - 1; i >= 0; i-- {
		rec := all[i]
		if needle != "" && !strings.Contains(strings.ToLower(rec.Line), needle) &&
			!strings.Contains(strings.ToLower(rec.Output), needle) {
			continue
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Prune rewrites the file without records older than before.
func (f *FileStore) Prune(before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all, err := f.load()
	if err != nil || len(all) == 0 {
		return 0, err
	}
	var kept []domain.HistoryRecord
	for _, rec := range all {
		if !rec.Timestamp.Before(before) {
			kept = append(kept, rec)
		}
	}
	removed := int64(len(all) - len(kept))
	if removed == 0 {
		return 0, nil
	}
	if err := writeJSONL(f.path, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// ExportJSON copies every record to dest as jsonl.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

func (f *FileStore) load() ([]domain.HistoryRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []domain.HistoryRecord
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec domain.HistoryRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
