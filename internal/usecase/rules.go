package usecase

import (
	"fmt"
	"strings"
	"time"

	"docchunk/internal/domain"
)

// Rule family keys understood by the registry.
const (
	FamilyWord         = "word"
	FamilySpreadsheet  = "spreadsheet"
	FamilyPresentation = "presentation"
	FamilyDefault      = "default"
)

// RuleRegistry resolves a document-type tag to its chunking rule. Unknown
// types resolve to the default hybrid rule; resolution never fails.
type RuleRegistry struct {
	rules map[string]domain.ChunkingRule
}

// NewRuleRegistry builds a registry from the built-in profiles, with
// per-family overrides applied on top. Overrides are validated.
func NewRuleRegistry(overrides map[string]domain.ChunkingRule) (*RuleRegistry, error) {
	rules := DefaultRules()
	for family, rule := range overrides {
		family = strings.ToLower(strings.TrimSpace(family))
		if _, known := rules[family]; !known {
			return nil, fmt.Errorf("rules: unknown rule family %q", family)
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}
		rules[family] = rule
	}
	return &RuleRegistry{rules: rules}, nil
}

// RuleFor resolves a document type, case-insensitively and tolerant of the
// common synonyms for each family.
func (r *RuleRegistry) RuleFor(documentType string) domain.ChunkingRule {
	return r.rules[familyFor(documentType)]
}

func familyFor(documentType string) string {
	switch strings.ToLower(strings.TrimSpace(documentType)) {
	case "doc", "docx", "word", "msword", "document", "odt", "rtf":
		return FamilyWord
	case "xls", "xlsx", "sheet", "spreadsheet", "excel", "ods", "csv":
		return FamilySpreadsheet
	case "ppt", "pptx", "presentation", "slides", "slide", "odp":
		return FamilyPresentation
	default:
		return FamilyDefault
	}
}

// DefaultRules returns the built-in per-family chunking profiles.
func DefaultRules() map[string]domain.ChunkingRule {
	return map[string]domain.ChunkingRule{
		FamilyWord: {
			Name:               "word_document",
			Strategy:           domain.StrategyHybrid,
			MinChunkSize:       100,
			MaxChunkSize:       2000,
			TargetChunkSize:    1000,
			OverlapSize:        100,
			PreserveSections:   true,
			PreserveParagraphs: true,
			PreserveSentences:  true,
			HandleTables:       true,
			HandleLists:        true,
			MinContentQuality:  0.3,
			MaxEmptyChunks:     5,
			MaxProcessingTime:  30 * time.Second,
			BatchSize:          100,
		},
		FamilySpreadsheet: {
			Name:              "spreadsheet",
			Strategy:          domain.StrategyFixedSize,
			MinChunkSize:      50,
			MaxChunkSize:      1500,
			TargetChunkSize:   800,
			OverlapSize:       50,
			HandleTables:      true,
			MinContentQuality: 0.1,
			MaxEmptyChunks:    10,
			MaxProcessingTime: 30 * time.Second,
			BatchSize:         200,
		},
		FamilyPresentation: {
			Name:              "presentation",
			Strategy:          domain.StrategyPageLimits,
			MinChunkSize:      50,
			MaxChunkSize:      1500,
			TargetChunkSize:   600,
			OverlapSize:       0,
			PreserveSections:  true,
			HandleImages:      true,
			MinContentQuality: 0.2,
			MaxEmptyChunks:    10,
			MaxProcessingTime: 30 * time.Second,
			BatchSize:         100,
		},
		FamilyDefault: {
			Name:               "default_hybrid",
			Strategy:           domain.StrategyHybrid,
			MinChunkSize:       500,
			MaxChunkSize:       2000,
			TargetChunkSize:    1000,
			OverlapSize:        100,
			PreserveSections:   true,
			PreserveParagraphs: true,
			MinContentQuality:  0.3,
			MaxEmptyChunks:     5,
			MaxProcessingTime:  30 * time.Second,
			BatchSize:          100,
		},
	}
}
