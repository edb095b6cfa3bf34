package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Cached answers repeated summarizer calls from a cache repository. Only
// successful responses are stored; failures always reach the inner backend
// again on the next call.
type Cached struct {
	Inner  ports.Summarizer
	Repo   ports.CacheRepository
	Logger ports.Logger
	Now    func() time.Time
}

func NewCached(inner ports.Summarizer, repo ports.CacheRepository, logger ports.Logger) *Cached {
	return &Cached{Inner: inner, Repo: repo, Logger: logger, Now: time.Now}
}

func (c *Cached) Name() string {
	return c.Inner.Name()
}

func (c *Cached) Summarize(ctx context.Context, text string) (string, error) {
	key := CacheKey(c.Inner.Name(), text)
	if entry, ok, err := c.Repo.Get(key); err != nil {
		c.warn("cache read failed", err)
	} else if ok {
		c.debug(key)
		return entry.Summary, nil
	}

	summary, err := c.Inner.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	entry := domain.CacheEntry{
		Key:       key,
		Backend:   c.Inner.Name(),
		Summary:   summary,
		InputLen:  len([]rune(text)),
		CreatedAt: c.Now(),
	}
	if err := c.Repo.Set(entry); err != nil {
		c.warn("cache write failed", err)
	}
	return summary, nil
}

// CacheKey hashes the backend name together with the input text.
func CacheKey(backend, text string) string {
	sum := sha256.Sum256([]byte(backend + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (c *Cached) warn(msg string, err error) {
	if c.Logger != nil {
		c.Logger.Warn(msg, map[string]interface{}{"backend": c.Inner.Name(), "error": err.Error()})
	}
}

func (c *Cached) debug(key string) {
	if c.Logger != nil {
		c.Logger.Debug("summary cache hit", map[string]interface{}{"backend": c.Inner.Name(), "key": key[:12]})
	}
}

var _ ports.Summarizer = (*Cached)(nil)
