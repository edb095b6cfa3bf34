package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doeshing/byte-agent-go/internal/app"
	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the summary cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheStatsCommand(container),
	)

	return cacheCmd
}

func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container.CacheStore)
		},
	}
}

func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CacheStore == nil {
				return errors.New(ErrCacheStoreUnavailable)
			}
			if err := container.CacheStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

func newCacheStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache location, size and per-backend counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd.OutOrStdout(), container.CacheStore, container.Config.Summarizer.Cache)
		},
	}
}

func listCacheEntries(out io.Writer, store ports.CacheRepository) error {
	if store == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedResponses)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %d chars | %s\n",
			shortKey(entry.Key),
			entry.Backend,
			entry.InputLen,
			entry.CreatedAt.Local().Format(TimestampFormat))
	}
	return nil
}

func showCacheStats(out io.Writer, store ports.CacheRepository, enabled bool) error {
	if store == nil {
		return errors.New(ErrCacheStoreUnavailable)
	}

	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	size, err := calculateDirectorySize(store.Dir())
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Fprintf(out, "Cache: %s\nDirectory: %s\nSize: %d bytes\nEntries: %d\n",
		state, store.Dir(), size, len(entries))

	counts := countByBackend(entries)
	if len(counts) == 0 {
		return nil
	}
	fmt.Fprintln(out, "Entries per backend:")
	for _, stat := range helpers.CalculateTopEntries(counts, 0) {
		fmt.Fprintf(out, "  %s: %d\n", stat.Name, stat.Count)
	}
	return nil
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}

func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return totalSize, nil
}

func countByBackend(entries []domain.CacheEntry) map[string]int {
	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.Backend]++
	}
	return counts
}
