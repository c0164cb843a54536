package interfaces

import (
	"context"

	"tradebook-importer/internal/types"
)

type Pipeline interface {
	Process(ctx context.Context, raws []types.RawOrder) (*types.ImportResult, error)
}
