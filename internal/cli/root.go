package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docchunk/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "docchunk",
	Short: "Document chunking engine - split documents into searchable chunks",
	Long: `docchunk splits documents into ordered, size-bounded chunks using
per-document-type rules, enriches each chunk with search text and keywords,
and stores the results for later retrieval.

Example usage:
  docchunk chunk report.txt --type docx   # Chunk a single file
  docchunk index .                        # Chunk every matching file
  docchunk stats                          # Show corpus statistics`,
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docchunk.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
