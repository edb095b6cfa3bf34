package history

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

func storesUnderTest(t *testing.T) map[string]ports.HistoryRepository {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := NewSQLiteStore(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]ports.HistoryRepository{
		"sqlite": sqlite,
		"jsonl":  NewFileStore(filepath.Join(dir, "history.jsonl")),
	}
}

func record(line string, ts time.Time, ok bool) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp:  ts,
		Line:       line,
		Intent:     domain.IntentFind,
		Output:     "out: " + line,
		OK:         ok,
		DurationMS: 3,
	}
}

func TestStoresSaveAndQuery(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for i, line := range []string{"find pdf", "move a.txt to b", "find report"} {
				if err := store.Save(record(line, base.Add(time.Duration(i)*time.Minute), i != 1)); err != nil {
					t.Fatalf("Save error: %v", err)
				}
			}

			all, err := store.Records(0, "")
			if err != nil {
				t.Fatalf("Records error: %v", err)
			}
			if len(all) != 3 || all[0].Line != "find report" || all[2].Line != "find pdf" {
				t.Fatalf("unexpected order: %+v", all)
			}
			if _, err := ulid.ParseStrict(all[0].ID); err != nil {
				t.Fatalf("record id %q is not a ULID: %v", all[0].ID, err)
			}
			if all[1].OK || !all[0].OK || all[0].Intent != domain.IntentFind {
				t.Fatalf("fields not round-tripped: %+v", all)
			}
			if !all[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
				t.Fatalf("timestamp = %v", all[0].Timestamp)
			}

			found, err := store.Records(0, "find")
			if err != nil || len(found) != 2 {
				t.Fatalf("search returned %d records, err %v", len(found), err)
			}
			limited, err := store.Records(1, "")
			if err != nil || len(limited) != 1 {
				t.Fatalf("limit returned %d records, err %v", len(limited), err)
			}
		})
	}
}

func TestStoresPruneAndClear(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_ = store.Save(record("old", base.Add(-48*time.Hour), true))
			_ = store.Save(record("new", base, true))

			removed, err := store.Prune(base.Add(-24 * time.Hour))
			if err != nil || removed != 1 {
				t.Fatalf("Prune() = %d, %v", removed, err)
			}
			left, _ := store.Records(0, "")
			if len(left) != 1 || left[0].Line != "new" {
				t.Fatalf("unexpected records after prune: %+v", left)
			}

			dest := filepath.Join(t.TempDir(), "export.jsonl")
			if err := store.ExportJSON(dest); err != nil {
				t.Fatalf("ExportJSON error: %v", err)
			}
			if n := countLines(t, dest); n != 1 {
				t.Fatalf("export has %d lines, want 1", n)
			}

			if err := store.Clear(); err != nil {
				t.Fatalf("Clear error: %v", err)
			}
			left, _ = store.Records(0, "")
			if len(left) != 0 {
				t.Fatalf("records after clear: %d", len(left))
			}
		})
	}
}

func TestOpenFallsBackToFileStore(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	// The parent of the database path is a regular file, so it cannot be created.
	store := Open(filepath.Join(blocker, "history.db"), nil)
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("Open returned %T, want *FileStore", store)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer f.Close()
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n
}
