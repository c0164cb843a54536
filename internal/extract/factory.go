package extract

import (
	"tradebook-importer/internal/extract/extractobs"
	"tradebook-importer/internal/interfaces"
	"tradebook-importer/internal/store"
)

// New builds the extractor the config asks for, wrapped with observability.
func New(cfg *store.Config) interfaces.Extractor {
	var base interfaces.Extractor
	switch cfg.Extraction.Provider {
	case "CLAUDE":
		base = NewClaudeExtractor(cfg)
	default:
		base = NewNoopExtractor()
	}
	return extractobs.Wrap(base)
}
