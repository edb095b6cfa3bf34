package summarizer

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/pkg/logger"
)

type countingSummarizer struct {
	calls int
	err   error
}

func (c *countingSummarizer) Name() string { return "counting" }

func (c *countingSummarizer) Summarize(_ context.Context, text string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "sum:" + text, nil
}

type mapCache struct {
	entries map[string]domain.CacheEntry
}

func (m *mapCache) Get(key string) (domain.CacheEntry, bool, error) {
	e, ok := m.entries[key]
	return e, ok, nil
}

func (m *mapCache) Set(entry domain.CacheEntry) error {
	m.entries[entry.Key] = entry
	return nil
}

func (m *mapCache) Entries() ([]domain.CacheEntry, error) { return nil, nil }
func (m *mapCache) Clear() error                          { m.entries = map[string]domain.CacheEntry{}; return nil }
func (m *mapCache) Dir() string                           { return "" }

func TestCachedServesRepeatCalls(t *testing.T) {
	inner := &countingSummarizer{}
	repo := &mapCache{entries: map[string]domain.CacheEntry{}}
	c := NewCached(inner, repo, logger.Discard())

	for i := 0; i < 3; i++ {
		got, err := c.Summarize(context.Background(), "alpha")
		if err != nil || got != "sum:alpha" {
			t.Fatalf("Summarize() = %q, %v", got, err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}
	entry, ok := repo.entries[CacheKey("counting", "alpha")]
	if !ok || entry.Backend != "counting" || entry.InputLen != 5 {
		t.Fatalf("unexpected cache entry %+v", entry)
	}
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	inner := &countingSummarizer{err: domain.ErrNoOutput}
	repo := &mapCache{entries: map[string]domain.CacheEntry{}}
	c := NewCached(inner, repo, logger.Discard())

	for i := 0; i < 2; i++ {
		if _, err := c.Summarize(context.Background(), "alpha"); !errors.Is(err, domain.ErrNoOutput) {
			t.Fatalf("error = %v, want ErrNoOutput", err)
		}
	}
	if inner.calls != 2 || len(repo.entries) != 0 {
		t.Fatalf("calls=%d entries=%d", inner.calls, len(repo.entries))
	}
}

func TestCacheKeySeparatesBackends(t *testing.T) {
	if CacheKey("a", "text") == CacheKey("b", "text") {
		t.Fatalf("cache keys collide across backends")
	}
}
