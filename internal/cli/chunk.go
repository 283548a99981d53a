package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"docchunk/internal/adapter/cache"
	"docchunk/internal/adapter/fs"
	"docchunk/internal/domain"
	"docchunk/internal/usecase"
)

var (
	chunkDocType string
	chunkOutput  string
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <file>",
	Short: "Chunk a single document",
	Long: `Chunk a single document and print the result.

The document type selects the chunking rule; when omitted it is derived
from the file extension.

Examples:
  docchunk chunk report.txt                 # Rule from extension
  docchunk chunk export.txt --type xlsx     # Force the spreadsheet rule
  docchunk chunk notes.md --output json     # Full result as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().StringVarP(&chunkDocType, "type", "t", "", "document type (doc, xlsx, pptx, ...)")
	chunkCmd.Flags().StringVarP(&chunkOutput, "output", "o", "", "output format: json, yaml or summary")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	content, err := fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cfg := GetConfig()
	registry, err := usecase.NewRuleRegistry(cfg.RuleOverrides())
	if err != nil {
		return err
	}
	engine := usecase.NewChunker(registry, cache.NewChunkCache())

	docType := chunkDocType
	if docType == "" {
		docType = usecase.DocumentTypeForPath(path)
	}

	result, err := engine.ChunkDocument(usecase.DocumentID(filepath.Base(path)), content, docType, nil)
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	format := chunkOutput
	if format == "" {
		format = cfg.Output.Format
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	case "summary", "":
		printSummary(path, result)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func printSummary(path string, result *domain.ChunkingResult) {
	fmt.Printf("Chunked %s\n", path)
	fmt.Printf("  Strategy:        %s (%s)\n", result.Strategy, result.Rule.Name)
	fmt.Printf("  Chunks:          %d\n", result.TotalChunks)
	fmt.Printf("  Avg chunk size:  %.0f chars\n", result.AverageChunkSize)
	fmt.Printf("  Coverage:        %.1f%%\n", result.ContentCoverage*100)
	fmt.Printf("  Quality score:   %.2f\n", result.QualityScore)
	fmt.Printf("  Empty chunks:    %d\n", result.EmptyChunks)
	fmt.Printf("  Processing time: %.3fs\n", result.ProcessingTimeSeconds)

	for _, c := range result.Chunks {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("  [%d] %s  %d chars, %d words\n", c.Sequence, title, c.ContentLength, c.WordCount)
	}
}
