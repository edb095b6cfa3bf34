package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c := NewFileCache(filepath.Join(t.TempDir(), "summaries"), 10, time.Hour)

	if _, ok, err := c.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}
	entry := domain.CacheEntry{Key: "k1", Backend: "hf", Summary: "short", InputLen: 42, CreatedAt: time.Now()}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, ok, err := c.Get("k1")
	if err != nil || !ok {
		t.Fatalf("Get(k1) = %v, %v", ok, err)
	}
	if got.Summary != "short" || got.Backend != "hf" || got.InputLen != 42 {
		t.Fatalf("unexpected entry %+v", got)
	}

	entries, err := c.Entries()
	if err != nil || len(entries) != 1 {
		t.Fatalf("Entries() = %d, %v", len(entries), err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, err := os.Stat(c.Dir()); !os.IsNotExist(err) {
		t.Fatalf("cache dir still present after Clear")
	}
}

func TestFileCacheExpiresEntries(t *testing.T) {
	c := NewFileCache(t.TempDir(), 10, time.Minute)
	if err := c.Set(domain.CacheEntry{Key: "old", Summary: "s", CreatedAt: time.Now().Add(-time.Hour)}); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, ok, _ := c.Get("old"); ok {
		t.Fatalf("expired entry returned")
	}
}

func TestFileCacheEvictsOldest(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir, 2, time.Hour)
	base := time.Now().Add(-time.Minute)
	for i, key := range []string{"a", "b", "c"} {
		if err := c.Set(domain.CacheEntry{Key: key, Summary: key, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Set error: %v", err)
		}
		mod := base.Add(time.Duration(i) * time.Second)
		if err := os.Chtimes(filepath.Join(dir, key+".json"), mod, mod); err != nil {
			t.Fatalf("Chtimes error: %v", err)
		}
	}
	entries, _ := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after eviction, got %d", len(entries))
	}
	if _, ok, _ := c.Get("a"); ok {
		t.Fatalf("oldest entry should have been evicted")
	}
}
