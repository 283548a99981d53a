package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docchunk/internal/domain"
	"docchunk/internal/usecase"
)

// Config holds all configuration for the chunking tool.
type Config struct {
	Rules   RulesConfig   `yaml:"rules"`
	Batch   BatchConfig   `yaml:"batch"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RulesConfig carries the per-family chunking rules. Fields left zero in the
// YAML file keep their built-in defaults because unmarshalling happens on top
// of DefaultConfig.
type RulesConfig struct {
	Word         domain.ChunkingRule `yaml:"word"`
	Spreadsheet  domain.ChunkingRule `yaml:"spreadsheet"`
	Presentation domain.ChunkingRule `yaml:"presentation"`
	Default      domain.ChunkingRule `yaml:"default"`
}

// BatchConfig holds directory indexing configuration.
type BatchConfig struct {
	Includes      []string `yaml:"includes"`
	Excludes      []string `yaml:"excludes"`
	MaxFileSizeKB int64    `yaml:"max_file_size_kb"`
}

// OutputConfig holds result rendering configuration.
type OutputConfig struct {
	Format string `yaml:"format"` // "json", "yaml" or "summary"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	rules := usecase.DefaultRules()
	return &Config{
		Rules: RulesConfig{
			Word:         rules[usecase.FamilyWord],
			Spreadsheet:  rules[usecase.FamilySpreadsheet],
			Presentation: rules[usecase.FamilyPresentation],
			Default:      rules[usecase.FamilyDefault],
		},
		Batch: BatchConfig{
			Includes:      []string{"**/*.txt", "**/*.md", "**/*.csv", "**/*.rtf"},
			Excludes:      []string{"**/node_modules/**", "**/vendor/**", "**/.git/**", "**/.docchunk/**"},
			MaxFileSizeKB: 4096,
		},
		Output: OutputConfig{
			Format: "summary",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// RuleOverrides returns the configured rules keyed by family, ready for the
// rule registry.
func (c *Config) RuleOverrides() map[string]domain.ChunkingRule {
	return map[string]domain.ChunkingRule{
		usecase.FamilyWord:         c.Rules.Word,
		usecase.FamilySpreadsheet:  c.Rules.Spreadsheet,
		usecase.FamilyPresentation: c.Rules.Presentation,
		usecase.FamilyDefault:      c.Rules.Default,
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docchunk.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try docchunk.yaml in the directory
	path := filepath.Join(dir, "docchunk.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .docchunk/config.yaml
	path = filepath.Join(dir, ".docchunk", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StoreDBPath returns the path to the chunk database.
func StoreDBPath(dir string) string {
	return filepath.Join(dir, ".docchunk", "chunks.db")
}

// EnsureStateDir ensures the .docchunk directory exists.
func EnsureStateDir(dir string) error {
	stateDir := filepath.Join(dir, ".docchunk")
	return os.MkdirAll(stateDir, 0755)
}
