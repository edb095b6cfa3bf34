package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

func (d *Dispatcher) summarize(ctx context.Context, in domain.SummarizeIntent) string {
	if d.Summaries == nil {
		return exception(errors.New("summarizer unavailable"))
	}
	switch {
	case in.FromArchive():
		return d.summarizeArchiveEntry(ctx, in)
	case in.ToFile():
		return d.summarizeToFile(ctx, in)
	default:
		return d.summarizeToConsole(ctx, in)
	}
}

func (d *Dispatcher) summarizeArchiveEntry(ctx context.Context, in domain.SummarizeIntent) string {
	if denied := d.guard(in.Destination); denied != "" {
		return denied
	}
	if d.Archive == nil {
		return exception(errors.New("archive support unavailable"))
	}
	if !d.FileSystem.Exists(in.Archive) {
		return errorf("Archive not found: %s", in.Archive)
	}
	entries, err := d.Archive.ListEntries(in.Archive)
	if err != nil {
		return exception(err)
	}
	if !contains(entries, in.Source) {
		return errorf("File %s not found in archive %s", in.Source, in.Archive)
	}
	data, err := d.Archive.ReadEntry(in.Archive, in.Source)
	if err != nil {
		return exception(err)
	}

	summary, err := d.Summaries.SummarizeDocument(ctx, string(data))
	if msg := configurationFailure(err); msg != "" {
		return msg
	}
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return errorf("File %s in archive %s is empty.", in.Source, in.Archive)
	case errors.Is(err, domain.ErrNoSummaryProduced):
		return errorf("No summary generated for %s in archive %s", in.Source, in.Archive)
	case err != nil:
		return exception(err)
	}

	if err := d.FileSystem.WriteText(in.Destination, summary); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Summary saved to %s", in.Destination)
}

func (d *Dispatcher) summarizeToFile(ctx context.Context, in domain.SummarizeIntent) string {
	if denied := d.guard(in.Destination); denied != "" {
		return denied
	}
	if !d.FileSystem.Exists(in.Source) {
		return errorf("File not found: %s", in.Source)
	}
	content, err := d.FileSystem.ReadText(in.Source)
	if err != nil {
		return exception(err)
	}

	summary, err := d.Summaries.SummarizeDocument(ctx, content)
	if errors.Is(err, domain.ErrEmptyInput) || errors.Is(err, domain.ErrNoSummaryProduced) {
		d.Logger.Warn("summary failed", map[string]interface{}{
			"source": in.Source,
			"error":  err.Error(),
		})
		marker := MsgNoSummaryMarker
		if msg := configurationFailure(err); msg != "" {
			marker = msg + "."
		}
		if werr := d.FileSystem.WriteText(in.Destination, marker); werr != nil {
			return exception(werr)
		}
		return fmt.Sprintf("%s See %s", marker, in.Destination)
	}
	if err != nil {
		return exception(err)
	}

	if err := d.FileSystem.WriteText(in.Destination, summary); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Summary saved to %s", in.Destination)
}

func (d *Dispatcher) summarizeToConsole(ctx context.Context, in domain.SummarizeIntent) string {
	if !d.FileSystem.Exists(in.Source) {
		return errorf("File not found: %s", in.Source)
	}
	content, err := d.FileSystem.ReadText(in.Source)
	if err != nil {
		return exception(err)
	}

	summary, err := d.Summaries.SummarizeDocument(ctx, content)
	if msg := configurationFailure(err); msg != "" {
		return msg
	}
	if errors.Is(err, domain.ErrEmptyInput) || errors.Is(err, domain.ErrNoSummaryProduced) {
		return errorf("No summary generated or file is empty: %s", in.Source)
	}
	if err != nil {
		return exception(err)
	}
	return summary
}

// configurationFailure renders a missing credential or model id carried by err,
// or returns "" when err holds none.
func configurationFailure(err error) string {
	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		return errorf("%v", cfgErr)
	}
	return ""
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
