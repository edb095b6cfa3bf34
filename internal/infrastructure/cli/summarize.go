package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/application/summarize"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

func newSummarizeCommand(container *app.Container) *cobra.Command {
	var (
		output  string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Summarize a text file of any length",
		Long: `Summarize reads a file (relative to the current directory), splits it into
overlapping chunks, summarizes each chunk and reduces the results into one
summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := container.Pipeline(backend)
			if err != nil {
				return err
			}
			spinner := progressFor(cmd.ErrOrStderr(), "summarizing "+args[0])
			return summarizeFile(cmd.Context(), cmd.OutOrStdout(), spinner, pipeline, container.Logger, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the summary to this file")
	cmd.Flags().StringVar(&backend, "backend", "", "Summarizer backend name (default summarizer.default)")
	return cmd
}

// summarizeFile runs pipeline over the file at source and prints the summary,
// or writes it to output when set. The spinner is stopped before anything is
// printed.
func summarizeFile(ctx context.Context, out io.Writer, spinner *Spinner, pipeline *summarize.Pipeline, log ports.Logger, source, output string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		spinner.Stop()
		return fmt.Errorf("read %s: %w", source, err)
	}

	result, err := pipeline.Run(ctx, string(data))
	spinner.Stop()
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return cfgErr
	case errors.Is(err, domain.ErrEmptyInput):
		return fmt.Errorf("%s is empty", source)
	case errors.Is(err, domain.ErrNoSummaryProduced):
		return fmt.Errorf("no summary generated for %s", source)
	case err != nil:
		return err
	}

	log.Debug("summary complete", map[string]interface{}{
		"chunks":          result.Chunks,
		"chunk_summaries": result.ChunkSummaries,
		"reduced":         result.Reduced,
	})

	if output == "" {
		fmt.Fprintln(out, result.Text)
		return nil
	}
	if err := os.WriteFile(output, []byte(result.Text), domain.FilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Fprintf(out, "Summary saved to %s\n", output)
	return nil
}

// progressFor starts a spinner when w is a terminal.
func progressFor(w io.Writer, label string) *Spinner {
	spinner := NewSpinner(w, label)
	if f, ok := w.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			spinner.Start()
		}
	}
	return spinner
}
