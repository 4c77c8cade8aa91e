package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codemap/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "codemap",
	Short: "Structural code maps for C and C++ source trees",
	Long: `codemap parses C and C++ source into a language-agnostic symbol tree:
functions, classes, enums, typedefs and namespaces with their signatures,
documentation comments and line spans. The map is stored in .codemap/map.db
within the target directory and kept current incrementally.

Example usage:
  codemap index .          # Build or refresh the map
  codemap find Rectangle   # Search symbols by name
  codemap show src/geo.c   # Print one file's symbol tree`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./codemap.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
