package pipelineobs

import (
	"context"
	"time"

	"tradebook-importer/internal/interfaces"
	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/trace"
	"tradebook-importer/internal/types"
)

type observablePipeline struct {
	pipeline interfaces.Pipeline
}

var _ interfaces.Pipeline = (*observablePipeline)(nil)

func Wrap(p interfaces.Pipeline) interfaces.Pipeline {
	return &observablePipeline{
		pipeline: p,
	}
}

func (op *observablePipeline) Process(ctx context.Context, raws []types.RawOrder) (*types.ImportResult, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline.Process")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting import run",
		"candidates", len(raws),
	)

	result, err := op.pipeline.Process(ctx, raws)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Import run failed", err,
			"candidates", len(raws),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Import run completed",
		"batch_id", result.BatchID,
		"trades", len(result.Trades),
		"incomplete", len(result.IncompleteOrders),
		"rejected", len(result.Rejected),
		"warnings", len(result.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
