package extract

import (
	"context"

	"tradebook-importer/internal/types"
)

// NoopExtractor returns an empty order list. Used in dry runs and whenever
// the caller already has extraction JSON on disk.
type NoopExtractor struct{}

func NewNoopExtractor() *NoopExtractor {
	return &NoopExtractor{}
}

func (e *NoopExtractor) Extract(ctx context.Context, imageB64, mediaType string) (types.ExtractionResult, error) {
	return types.ExtractionResult{
		Orders:         []types.RawOrder{},
		BrokerDetected: "NOOP",
	}, nil
}
