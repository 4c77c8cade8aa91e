package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codemap/config"
	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/store"
	"codemap/internal/adapter/watch"
	"codemap/internal/usecase"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Keep the map current as files change",
	Long: `Watch the source tree and re-map files as they are created, modified
or deleted. Changes are batched over a short quiet period. Runs until
interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	if err := config.EnsureMapDir(path); err != nil {
		return fmt.Errorf("failed to create .codemap directory: %w", err)
	}

	st, err := store.NewBoltStore(config.MapDBPath(path))
	if err != nil {
		return fmt.Errorf("failed to open map store: %w", err)
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	indexUC := usecase.NewIndexUseCase(st, walker, fs.Reader{}, cfg.Index.Workers)

	// Bring the map current before watching.
	if _, err := indexUC.Index(path, nil); err != nil {
		return fmt.Errorf("initial indexing failed: %w", err)
	}

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	watcher, err := watch.NewWatcher(usecase.SourceExtensions(), debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)...\n", path)

	err = watcher.Run(ctx, path, func(paths []string) {
		result, err := indexUC.IndexPaths(path, paths)
		if err != nil {
			fmt.Printf("re-map failed: %v\n", err)
			return
		}
		fmt.Printf("%s  mapped %d, deleted %d\n",
			time.Now().Format("15:04:05"), result.FilesIndexed, result.FilesDeleted)
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	})
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nStopped.")
		return nil
	}
	return err
}
