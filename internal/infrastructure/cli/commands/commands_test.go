package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cache"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/history"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/security"
)

func seededHistory(t *testing.T) *history.FileStore {
	t.Helper()
	store := history.NewFileStore(t.TempDir() + "/history.jsonl")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.HistoryRecord{
		{Timestamp: base, Line: "find pdf", Intent: domain.IntentFind, OK: true, DurationMS: 4},
		{Timestamp: base.Add(time.Minute), Line: "move a.txt to b.txt", Intent: domain.IntentMove, OK: false, DurationMS: 2},
		{Timestamp: base.Add(2 * time.Minute), Line: "find notes", Intent: domain.IntentFind, OK: true, DurationMS: 6},
	}
	for _, rec := range records {
		if err := store.Save(rec); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return store
}

func TestListHistoryEntries(t *testing.T) {
	store := seededHistory(t)
	var out bytes.Buffer

	if err := listHistoryEntries(&out, store, 10, "move"); err != nil {
		t.Fatalf("list: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "move a.txt to b.txt") || !strings.Contains(text, "| err |") {
		t.Fatalf("unexpected listing:\n%s", text)
	}
	if strings.Contains(text, "find pdf") {
		t.Fatalf("search filter ignored:\n%s", text)
	}
}

func TestListHistoryEmptyAndUnavailable(t *testing.T) {
	var out bytes.Buffer
	store := history.NewFileStore(t.TempDir() + "/history.jsonl")
	if err := listHistoryEntries(&out, store, 10, ""); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out.String()) != MsgNoHistoryRecorded {
		t.Fatalf("output = %q", out.String())
	}
	if err := listHistoryEntries(&out, nil, 10, ""); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestShowHistoryStats(t *testing.T) {
	var out bytes.Buffer
	if err := showHistoryStats(&out, seededHistory(t)); err != nil {
		t.Fatalf("stats: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Entries analyzed: 3", "Success rate: 66.7%", "Average duration: 4ms", "find (2)", "move (1)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("stats missing %q:\n%s", want, text)
		}
	}
}

func TestClearHistory(t *testing.T) {
	store := seededHistory(t)
	var out bytes.Buffer
	if err := clearHistory(&out, store); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := store.Records(10, "")
	if err != nil || len(records) != 0 {
		t.Fatalf("records after clear = %v, %v", records, err)
	}
}

func TestCheckPaths(t *testing.T) {
	guard, err := security.NewGuardrail("", nil)
	if err != nil {
		t.Fatalf("guardrail: %v", err)
	}
	var out bytes.Buffer
	if err := checkPaths(&out, guard, []string{"notes.txt", ".git/config", "../outside"}); err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "allowed  notes.txt\n" +
		"refused  .git/config (" + security.ReasonProtected + ")\n" +
		"refused  ../outside (" + security.ReasonEscapes + ")\n"
	if got := out.String(); got != want {
		t.Fatalf("check output:\n%s\nwant:\n%s", got, want)
	}
}

func TestCacheListingAndStats(t *testing.T) {
	store := cache.NewFileCache(t.TempDir(), 0, 0)
	var out bytes.Buffer

	if err := listCacheEntries(&out, store); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(out.String()) != MsgNoCachedResponses {
		t.Fatalf("empty listing = %q", out.String())
	}

	entry := domain.CacheEntry{
		Key:       "0123456789abcdef0123",
		Backend:   "huggingface",
		Summary:   "short",
		InputLen:  42,
		CreatedAt: time.Now(),
	}
	if err := store.Set(entry); err != nil {
		t.Fatalf("set: %v", err)
	}

	out.Reset()
	if err := listCacheEntries(&out, store); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out.String(), "0123456789ab | huggingface | 42 chars | ") {
		t.Fatalf("listing = %q", out.String())
	}

	out.Reset()
	if err := showCacheStats(&out, store, true); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out.String(), "Cache: enabled") || !strings.Contains(out.String(), "huggingface: 1") {
		t.Fatalf("stats = %q", out.String())
	}
}
