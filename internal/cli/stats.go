package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docchunk/config"
	"docchunk/internal/adapter/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Show corpus statistics",
	Long: `Show statistics for the chunk store under the given directory.

Examples:
  docchunk stats           # Current directory
  docchunk stats ../docs   # Specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	dbPath := config.StoreDBPath(path)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no chunk store found at %s (run 'docchunk index' first)", dbPath)
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open chunk store: %w", err)
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	docs, err := st.ListDocs()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	fmt.Printf("Chunk store: %s\n", dbPath)
	fmt.Printf("  Documents:       %d\n", stats.TotalDocuments)
	fmt.Printf("  Chunks:          %d\n", stats.TotalChunks)
	fmt.Printf("  Content length:  %d chars\n", stats.TotalContentLength)
	fmt.Printf("  Avg quality:     %.2f\n", stats.AverageQuality)
	if !stats.UpdatedAt.IsZero() {
		fmt.Printf("  Updated:         %s\n", stats.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if len(docs) > 0 {
		fmt.Printf("\nDocuments:\n")
		for _, doc := range docs {
			fmt.Printf("  %s  %s  %d chunks  quality %.2f  (%s)\n",
				doc.ID, doc.Path, doc.TotalChunks, doc.QualityScore, doc.Strategy)
		}
	}

	return nil
}
