// Package chunking splits documents into overlapping fixed-size windows for
// summarization.
package chunking

import (
	"fmt"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

// Options configures the chunk window.
type Options struct {
	Size    int
	Overlap int
}

// DefaultOptions returns the default window: 1800 characters with 500 of overlap.
func DefaultOptions() Options {
	return Options{
		Size:    domain.DefaultChunkSize,
		Overlap: domain.DefaultChunkOverlap,
	}
}

// FromSettings builds options from config. An explicit size carries its
// overlap as given, zero included; an unset size falls back to the default
// window, keeping any overlap the config names.
func FromSettings(settings domain.ChunkingSettings) Options {
	if settings.Size > 0 {
		return Options{Size: settings.Size, Overlap: settings.Overlap}
	}
	opts := DefaultOptions()
	if settings.Overlap > 0 {
		opts.Overlap = settings.Overlap
	}
	return opts
}

// Validate rejects windows that would never advance.
func (o Options) Validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("chunk size must be > 0, got %d", o.Size)
	}
	if o.Overlap < 0 {
		return fmt.Errorf("chunk overlap must be >= 0, got %d", o.Overlap)
	}
	if o.Overlap >= o.Size {
		return fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", o.Overlap, o.Size)
	}
	return nil
}

// Chunk splits document into windows of opts.Size characters, each starting
// opts.Size-opts.Overlap characters after the previous one. The chunk that
// reaches the end of the document is the last one, even when shorter than
// opts.Size. An empty document yields no chunks.
func Chunk(document string, opts Options) ([]domain.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runes := []rune(document)
	step := opts.Size - opts.Overlap

	var chunks []domain.Chunk
	for start := 0; start < len(runes); start += step {
		end := min(start+opts.Size, len(runes))
		chunks = append(chunks, domain.Chunk{
			Index: len(chunks),
			Start: start,
			End:   end,
			Text:  string(runes[start:end]),
		})
		if end >= len(runes) {
			break
		}
	}
	return chunks, nil
}
