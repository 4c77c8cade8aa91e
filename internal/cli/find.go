package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codemap/config"
	"codemap/internal/adapter/store"
	"codemap/internal/domain"
	"codemap/internal/usecase"
)

var findType string

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search the map for symbols by name",
	Long: `Search every stored symbol tree for names containing the query,
case-insensitively. Nested symbols are reported with their container path.

Examples:
  codemap find Rectangle
  codemap find area --type function
  codemap find get --type method`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVarP(&findType, "type", "t", "", "restrict matches to one symbol kind (function, method, class, ...)")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	st, err := store.NewBoltStore(config.MapDBPath(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to open map store: %w", err)
	}
	defer st.Close()

	findUC := usecase.NewFindUseCase(st)
	matches, err := findUC.Find(args[0], domain.SymbolKind(findType))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No symbols found.")
		return nil
	}

	for _, m := range matches {
		fmt.Printf("%s:%d  %-16s %s", m.Path, m.Symbol.Span.Start, m.Symbol.Kind, m.Qualified)
		if m.Symbol.Signature != "" {
			fmt.Printf("  %s", m.Symbol.Signature)
		}
		fmt.Println()
	}
	fmt.Printf("\n%d symbol(s) found.\n", len(matches))
	return nil
}
