package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect command history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container.HistoryStore, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search history lines and outputs for a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container.HistoryStore, limit, strings.Join(args, " "))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				asker := helpers.NewAsker(cmd.OutOrStdout(), cmd.InOrStdin())
				if !asker.Confirm("Delete all history records?") {
					fmt.Fprintln(cmd.OutOrStdout(), MsgCancelled)
					return nil
				}
			}
			return clearHistory(cmd.OutOrStdout(), container.HistoryStore)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.HistoryStore
			if store == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
			return nil
		},
	}
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate and most used intents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container.HistoryStore)
		},
	}
}

func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune history older than N days and update the retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			return updateHistoryRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays, time.Now())
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", DefaultHistoryRetainDays, "Days to retain history")
	return cmd
}

// listHistoryEntries prints newest-first records, optionally filtered.
func listHistoryEntries(out io.Writer, store ports.HistoryRepository, limit int, search string) error {
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.Records(limit, search)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		status := "ok"
		if !rec.OK {
			status = "err"
		}
		fmt.Fprintf(out, "%s | %-15s | %-3s | %s\n",
			rec.Timestamp.Local().Format(TimestampFormat),
			rec.Intent,
			status,
			rec.Line)
	}
	return nil
}

func clearHistory(out io.Writer, store ports.HistoryRepository) error {
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Fprintln(out, "History cleared.")
	return nil
}

func showHistoryStats(out io.Writer, store ports.HistoryRepository) error {
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.Records(MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	displayHistoryStatistics(out, analyzeHistoryRecords(records), len(records))
	return nil
}

// historyStatistics holds analyzed history statistics
type historyStatistics struct {
	successful int
	totalMS    int64
	intentFreq map[string]int
}

func analyzeHistoryRecords(records []domain.HistoryRecord) historyStatistics {
	stats := historyStatistics{intentFreq: make(map[string]int)}
	for _, rec := range records {
		if rec.OK {
			stats.successful++
		}
		stats.totalMS += rec.DurationMS
		stats.intentFreq[string(rec.Intent)]++
	}
	return stats
}

func displayHistoryStatistics(out io.Writer, stats historyStatistics, total int) {
	fmt.Fprintf(out, "Entries analyzed: %d\nSuccess rate: %.1f%%\nAverage duration: %dms\n",
		total,
		helpers.CalculateSuccessRate(stats.successful, total),
		stats.totalMS/int64(total))

	fmt.Fprintln(out, "Top intents:")
	for _, stat := range helpers.CalculateTopEntries(stats.intentFreq, 5) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Name, stat.Count)
	}
}

func updateHistoryRetention(ctx context.Context, out io.Writer, container *app.Container, days int, now time.Time) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	removed, err := store.Prune(now.AddDate(0, 0, -days))
	if err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.History.RetentionDays = days
	if _, err := helpers.SaveConfig(container, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed %d records. Retaining last %d days of history.\n", removed, days)
	return nil
}
