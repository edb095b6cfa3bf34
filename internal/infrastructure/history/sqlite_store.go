// Package history persists dispatched command lines. SQLite is the primary
// store; a JSONL file is used when the database cannot be opened.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	mu      sync.Mutex
	entropy *rand.Rand
}

// Open returns a SQLite store at path, or a JSONL store next to it when the
// database cannot be opened.
func Open(path string, logger ports.Logger) ports.HistoryRepository {
	store, err := NewSQLiteStore(path)
	if err == nil {
		return store
	}
	fallback := strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
	if logger != nil {
		logger.Warn("history database unavailable, using jsonl file", map[string]interface{}{
			"path":  fallback,
			"error": err.Error(),
		})
	}
	return NewFileStore(fallback)
}

// NewSQLiteStore creates or opens the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path, entropy: newEntropy()}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id          TEXT PRIMARY KEY,
		timestamp   TEXT NOT NULL,
		line        TEXT NOT NULL,
		intent      TEXT NOT NULL,
		output      TEXT NOT NULL,
		ok          INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_commands_timestamp ON commands(timestamp);`)
	return err
}

// Save inserts a new record, assigning an ID when it has none.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record = stamp(record, s.entropy)
	_, err := s.db.Exec(`INSERT INTO commands
		(id, timestamp, line, intent, output, ok, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(timeLayout),
		record.Line,
		string(record.Intent),
		record.Output,
		boolToInt(record.OK),
		record.DurationMS,
	)
	return err
}

// Records returns history entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, line, intent, output, ok, duration_ms FROM commands")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE line LIKE ? OR output LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY timestamp DESC, id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts, intent string
		var ok int
		if err := rows.Scan(&rec.ID, &ts, &rec.Line, &intent, &rec.Output, &ok, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Intent = domain.IntentKind(intent)
		rec.OK = ok == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records older than before and reports how many were removed.
func (s *SQLiteStore) Prune(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM commands WHERE timestamp < ?", before.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM commands")
	return err
}

// ExportJSON writes every record to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func newEntropy() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// stamp fills in the ID and timestamp of a record that lacks them.
func stamp(record domain.HistoryRecord, entropy *rand.Rand) domain.HistoryRecord {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if record.ID == "" {
		record.ID = ulid.MustNew(ulid.Timestamp(record.Timestamp), entropy).String()
	}
	return record
}

func writeJSONL(dest string, records []domain.HistoryRecord) error {
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
