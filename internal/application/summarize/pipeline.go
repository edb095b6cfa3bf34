// Package summarize implements hierarchical summarization: chunk the document,
// summarize each chunk in order, then reduce the joined chunk summaries with one
// more call.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/application/chunking"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Pipeline reduces documents of any length through a ports.Summarizer.
type Pipeline struct {
	Summarizer ports.Summarizer
	Chunking   chunking.Options
	Logger     ports.Logger
}

// NewPipeline builds a pipeline with the given chunk window.
func NewPipeline(summarizer ports.Summarizer, opts chunking.Options, log ports.Logger) *Pipeline {
	return &Pipeline{
		Summarizer: summarizer,
		Chunking:   opts,
		Logger:     log,
	}
}

// SummarizeDocument implements ports.DocumentSummarizer.
func (p *Pipeline) SummarizeDocument(ctx context.Context, document string) (string, error) {
	result, err := p.Run(ctx, document)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// Run summarizes document and reports how the result was obtained.
//
// Chunks are summarized strictly in order and every chunk is attempted; a
// cancelled ctx only reaches the summarizer calls themselves.
// Chunks whose call fails or returns nothing are skipped. If no chunk produced
// a summary the call fails with domain.ErrNoSummaryProduced. If the final
// reduction produces nothing, the joined chunk summaries are returned.
func (p *Pipeline) Run(ctx context.Context, document string) (domain.SummaryResult, error) {
	if p.Summarizer == nil || p.Logger == nil {
		return domain.SummaryResult{}, errors.New("summarize.Pipeline dependencies not satisfied")
	}
	if strings.TrimSpace(document) == "" {
		return domain.SummaryResult{}, domain.ErrEmptyInput
	}

	chunks, err := chunking.Chunk(document, p.Chunking)
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("chunk document: %w", err)
	}

	summaries := make([]string, 0, len(chunks))
	var lastErr error
	for _, chunk := range chunks {
		p.Logger.Debug("summarizing chunk", map[string]interface{}{
			"chunk":   chunk.Index + 1,
			"total":   len(chunks),
			"length":  chunk.Len(),
			"backend": p.Summarizer.Name(),
		})
		summary, err := p.summarize(ctx, chunk.Text)
		if err != nil {
			lastErr = err
			p.Logger.Warn("no summary generated for chunk", map[string]interface{}{
				"chunk": chunk.Index + 1,
				"error": err.Error(),
			})
			continue
		}
		summaries = append(summaries, summary)
	}

	if len(summaries) == 0 {
		if lastErr != nil {
			return domain.SummaryResult{}, fmt.Errorf("%w: %w", domain.ErrNoSummaryProduced, lastErr)
		}
		return domain.SummaryResult{}, domain.ErrNoSummaryProduced
	}

	combined := strings.Join(summaries, "\n")
	result := domain.SummaryResult{
		Text:           combined,
		Chunks:         len(chunks),
		ChunkSummaries: len(summaries),
	}

	p.Logger.Debug("reducing chunk summaries", map[string]interface{}{
		"summaries": len(summaries),
		"length":    len(combined),
	})
	final, err := p.summarize(ctx, combined)
	if err != nil {
		p.Logger.Warn("no final summary generated, returning concatenated chunk summaries", map[string]interface{}{
			"error": err.Error(),
		})
		return result, nil
	}

	result.Text = final
	result.Reduced = true
	return result, nil
}

// summarize calls the summarizer once and normalizes blank output to ErrNoOutput.
func (p *Pipeline) summarize(ctx context.Context, text string) (string, error) {
	out, err := p.Summarizer.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", domain.ErrNoOutput
	}
	return out, nil
}

var _ ports.DocumentSummarizer = (*Pipeline)(nil)
