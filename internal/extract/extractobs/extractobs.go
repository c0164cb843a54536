package extractobs

import (
	"context"
	"time"

	"tradebook-importer/internal/interfaces"
	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/trace"
	"tradebook-importer/internal/types"
)

type observableExtractor struct {
	extractor interfaces.Extractor
}

var _ interfaces.Extractor = (*observableExtractor)(nil)

func Wrap(e interfaces.Extractor) interfaces.Extractor {
	return &observableExtractor{
		extractor: e,
	}
}

func (oe *observableExtractor) Extract(ctx context.Context, imageB64, mediaType string) (types.ExtractionResult, error) {
	ctx, span := trace.StartSpan(ctx, "extractor.Extract")
	defer span.End()

	start := time.Now()

	result, err := oe.extractor.Extract(ctx, imageB64, mediaType)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Screenshot extraction failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.ExtractionResult{}, err
	}

	logger.InfoSkip(ctx, 1, "Screenshot extraction completed",
		"broker", result.BrokerDetected,
		"orders", len(result.Orders),
		"confidence", result.Confidence,
		"price_column", result.PriceColumnUsed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
