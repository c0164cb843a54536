package interfaces

import (
	"context"

	"tradebook-importer/internal/types"
)

type Extractor interface {
	Extract(ctx context.Context, imageB64, mediaType string) (types.ExtractionResult, error)
}
