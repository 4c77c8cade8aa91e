package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codemap/config"
	"codemap/internal/adapter/fs"
	"codemap/internal/adapter/store"
	"codemap/internal/usecase"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Verify the map against the source tree",
	Long: `Compare the stored map with the files on disk and report stale,
unmapped and orphaned entries. Exits non-zero when the map is out of date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	st, err := store.NewBoltStore(config.MapDBPath(path))
	if err != nil {
		return fmt.Errorf("failed to open map store: %w", err)
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	checkUC := usecase.NewCheckUseCase(st, walker, fs.Reader{})

	result, err := checkUC.Check(path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	fmt.Printf("Up to date: %d/%d files\n", result.UpToDate, result.TotalDisk)
	report := func(label string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Printf("\n%s (%d):\n", label, len(paths))
		for _, p := range paths {
			fmt.Printf("  %s\n", p)
		}
	}
	report("Stale", result.Stale)
	report("Not mapped", result.Missing)
	report("Orphaned", result.Orphaned)
	report("Partially parsed", result.Unparsed)

	if !result.Clean() {
		return fmt.Errorf("map is out of date, run 'codemap index'")
	}
	fmt.Println("Map is up to date.")
	return nil
}
