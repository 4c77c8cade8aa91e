package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codemap/config"
	"codemap/internal/adapter/store"
	"codemap/internal/domain"
)

var showDocs bool

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a file's symbol tree, or map statistics",
	Long: `With a file argument, print the stored symbol tree for that file
(repository-relative path). Without arguments, print overall map statistics.

Examples:
  codemap show                  # Map statistics
  codemap show src/geometry.c   # One file's tree
  codemap show src/shapes.hpp --docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showDocs, "docs", false, "include documentation comments")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := store.NewBoltStore(config.MapDBPath(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to open map store: %w", err)
	}
	defer st.Close()

	if len(args) == 0 {
		stats, err := st.GetStats()
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}
		fmt.Printf("Files:   %d\n", stats.TotalFiles)
		fmt.Printf("Symbols: %d\n", stats.TotalSymbols)
		fmt.Printf("Lines:   %d\n", stats.TotalLines)
		return nil
	}

	entry, err := st.GetFile(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s, %d lines", entry.Path, entry.Language, entry.Lines)
	if entry.Partial {
		fmt.Printf(", partial")
	}
	fmt.Printf(")\n")

	printSymbols(entry.Symbols, 1)

	if len(entry.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range entry.Warnings {
			fmt.Printf("  line %d: %s\n", w.Line, w.Message)
		}
	}
	return nil
}

func printSymbols(symbols []domain.Symbol, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, sym := range symbols {
		fmt.Printf("%s%s %s", indent, sym.Kind, sym.Name)
		if sym.Value != nil {
			fmt.Printf(" = %d", *sym.Value)
		}
		if sym.Signature != "" {
			fmt.Printf("  %s", sym.Signature)
		}
		fmt.Printf("  [%d-%d]", sym.Span.Start, sym.Span.End)
		if sym.Access != "" {
			fmt.Printf(" (%s)", sym.Access)
		}
		fmt.Println()
		if showDocs && sym.Doc != "" {
			for _, line := range strings.Split(sym.Doc, "\n") {
				fmt.Printf("%s  # %s\n", indent, line)
			}
		}
		printSymbols(sym.Children, depth+1)
	}
}
