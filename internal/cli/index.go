package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"codemap/config"
	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/store"
	"codemap/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build or refresh the symbol map",
	Long: `Parse every C and C++ source file under the given directory and store
its symbol tree. Files whose content is unchanged since the last run are
skipped; entries for deleted files are removed.

Examples:
  codemap index .                 # Map current directory
  codemap index /path/to/project  # Map specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()

	if err := config.EnsureMapDir(path); err != nil {
		return fmt.Errorf("failed to create .codemap directory: %w", err)
	}

	dbPath := config.MapDBPath(path)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open map store: %w", err)
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	indexUC := usecase.NewIndexUseCase(st, walker, fs.Reader{}, cfg.Index.Workers)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex

	progress := func(done, total int) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Mapping[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	result, err := indexUC.Index(path, progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nMapping complete:\n")
	fmt.Printf("  Files mapped:  %d\n", result.FilesIndexed)
	fmt.Printf("  Files skipped: %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Files deleted: %d (removed)\n", result.FilesDeleted)
	fmt.Printf("  Symbols found: %d\n", result.SymbolsFound)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nMap stored at: %s\n", dbPath)
	return nil
}

// resolveTarget picks the directory to operate on from the optional
// positional argument, falling back to the root flag or working directory.
func resolveTarget(args []string) (string, error) {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}
	return path, nil
}
