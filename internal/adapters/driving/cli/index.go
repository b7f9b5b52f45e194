package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driving"
)

var indexCmd = &cobra.Command{
	Use:   "index [path...]",
	Short: "Index directories through the filter pipeline",
	Long: `Walks each directory, runs every text file through the configured
indexing filters and stores the result. With no path, the current
directory is indexed.

Source IDs default to the directory name. Use --source to pick one when
indexing a single directory. With --watch, a single directory is indexed
and then kept up to date until interrupted.`,
	RunE: runIndex,
}

// Index flags.
var (
	indexSourceID string
	indexWatch    bool
)

func init() {
	indexCmd.Flags().StringVarP(&indexSourceID, "source", "s", "", "Source ID (single path only)")
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "Keep watching for changes (single path only)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if len(paths) > 1 && indexSourceID != "" {
		return fmt.Errorf("%w: --source requires a single path", domain.ErrInvalidInput)
	}
	if len(paths) > 1 && indexWatch {
		return fmt.Errorf("%w: --watch requires a single path", domain.ErrInvalidInput)
	}

	sources := make([]domain.Source, 0, len(paths))
	seen := make(map[string]string)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		src := domain.NewFilesystemSource(indexSourceID, abs)
		if prev, dup := seen[src.ID]; dup {
			return fmt.Errorf("%w: %s and %s both map to source %q; index them separately with --source",
				domain.ErrInvalidInput, prev, abs, src.ID)
		}
		seen[src.ID] = abs
		sources = append(sources, src)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if indexWatch {
		src := sources[0]
		cmd.Printf("Watching %s as source %s (Ctrl+C to stop)...\n", src.Config[domain.SourceConfigPath], src.ID)
		if err := indexService.Watch(ctx, src); err != nil {
			return fmt.Errorf("watch failed: %w", err)
		}
		cmd.Println("Stopped watching.")
		return nil
	}

	if len(sources) == 1 {
		src := sources[0]
		cmd.Printf("Indexing %s as source %s...\n", src.Config[domain.SourceConfigPath], src.ID)
		status, err := indexService.Index(ctx, src)
		if err != nil {
			return fmt.Errorf("index failed: %w", err)
		}
		printIndexStatus(cmd, *status)
		return nil
	}

	cmd.Printf("Indexing %d sources...\n", len(sources))
	statuses, err := indexService.IndexAll(ctx, sources)
	for _, status := range statuses {
		printIndexStatus(cmd, status)
	}
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	return nil
}

func printIndexStatus(cmd *cobra.Command, status driving.IndexStatus) {
	line := fmt.Sprintf("%s: indexed %d, dropped %d, removed %d",
		status.SourceID, status.DocumentsIndexed, status.DocumentsDropped, status.DocumentsDeleted)
	if status.DocumentsSkipped > 0 {
		line += fmt.Sprintf(", skipped %d", status.DocumentsSkipped)
	}
	cmd.Println(styled(cmd, nameStyle, line))
	if status.ErrorCount > 0 {
		cmd.Println(styled(cmd, errorStyle, fmt.Sprintf("  %d documents failed (run with --verbose for details)", status.ErrorCount)))
	}
}
