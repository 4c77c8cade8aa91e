package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"codemap/config"
	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/store"
	"codemap/internal/usecase"
)

var updateAll bool

var updateCmd = &cobra.Command{
	Use:   "update <file>... | --all",
	Short: "Re-map specific files",
	Long: `Re-parse the given source files and replace their stored symbol trees.
Files that no longer exist are dropped from the map. With --all, the whole
tree is re-scanned, which also picks up new and deleted files.

Examples:
  codemap update src/geometry.c
  codemap update src/*.cpp
  codemap update --all`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "re-scan the whole tree")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !updateAll {
		return fmt.Errorf("nothing to update: pass file paths or --all")
	}
	root := GetRootDir()
	cfg := GetConfig()

	st, err := store.NewBoltStore(config.MapDBPath(root))
	if err != nil {
		return fmt.Errorf("failed to open map store: %w", err)
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	indexUC := usecase.NewIndexUseCase(st, walker, fs.Reader{}, cfg.Index.Workers)

	var result *usecase.IndexResult
	if updateAll {
		result, err = indexUC.Index(root, nil)
	} else {
		paths := make([]string, 0, len(args))
		for _, arg := range args {
			abs, aerr := filepath.Abs(arg)
			if aerr != nil {
				return fmt.Errorf("invalid path %s: %w", arg, aerr)
			}
			paths = append(paths, abs)
		}
		result, err = indexUC.IndexPaths(root, paths)
	}
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Printf("Files mapped:  %d\n", result.FilesIndexed)
	if result.FilesDeleted > 0 {
		fmt.Printf("Files deleted: %d\n", result.FilesDeleted)
	}
	fmt.Printf("Symbols found: %d\n", result.SymbolsFound)

	for _, e := range result.Errors {
		fmt.Printf("  - %s\n", e)
	}
	return nil
}
