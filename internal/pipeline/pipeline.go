// Package pipeline wires the import engine end to end: normalize, classify,
// group by symbol, FIFO-match, assemble and validate. The whole run is a pure
// synchronous transformation; data-quality problems degrade into warnings and
// only a broken input contract errors out (at the decode boundary, before
// this package is reached).
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"tradebook-importer/internal/assemble"
	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/match"
	"tradebook-importer/internal/normalize"
	"tradebook-importer/internal/store"
	"tradebook-importer/internal/symbols"
	"tradebook-importer/internal/types"
	"tradebook-importer/internal/validate"
)

type Pipeline struct {
	cfg        *store.Config
	normalizer *normalize.Normalizer
	classifier *symbols.Classifier
	checker    validate.Checker
}

func New(cfg *store.Config) *Pipeline {
	window := cfg.Window()
	return &Pipeline{
		cfg:        cfg,
		normalizer: normalize.New(window),
		classifier: symbols.NewClassifier(cfg.Symbols.Equities, cfg.Symbols.Indices),
		checker:    validate.Checker{Window: window, Bounds: cfg.PriceBounds()},
	}
}

// Process runs one screenshot's candidate orders through the engine.
func (p *Pipeline) Process(ctx context.Context, raws []types.RawOrder) (*types.ImportResult, error) {
	result := &types.ImportResult{
		BatchID:          uuid.New().String(),
		Trades:           []types.Trade{},
		IncompleteOrders: []types.IncompleteOrder{},
		Rejected:         []types.RejectedOrder{},
	}

	norm := p.normalizer.Normalize(ctx, raws)
	result.Rejected = append(result.Rejected, norm.Rejected...)
	result.Warnings = append(result.Warnings, norm.Warnings...)

	matchable := p.annotate(ctx, norm.Orders, result)
	groups, symbolOrder := groupBySymbol(matchable)

	for _, symbol := range symbolOrder {
		res := match.Match(groups[symbol])
		trades := assemble.Trades(res.Fills)

		for _, t := range trades {
			logger.TradeMatched(ctx, t.Symbol, string(t.Direction), t.Quantity, t.EntryPrice, t.ExitPrice, t.PnL,
				"batch_id", result.BatchID)
			if floor := p.cfg.Extraction.MinConfidence; floor > 0 && t.Confidence < floor {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"trade %s on %s has low extraction confidence %.2f", t.TradeID, t.Symbol, t.Confidence))
			}
		}

		result.Trades = append(result.Trades, trades...)
		result.IncompleteOrders = append(result.IncompleteOrders, res.Incomplete...)
	}

	result.Warnings = append(result.Warnings,
		p.checker.Check(ctx, result.Trades, result.IncompleteOrders, matchable)...)

	logger.Info(ctx, "Import completed",
		"batch_id", result.BatchID,
		"input", len(raws),
		"trades", len(result.Trades),
		"incomplete", len(result.IncompleteOrders),
		"rejected", len(result.Rejected),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// annotate attaches segment metadata and filters down to the orders that may
// reach the matcher. Exclusions are never silent: non-executed rows and
// unclassifiable symbols each leave a warning behind.
func (p *Pipeline) annotate(ctx context.Context, orders []types.Order, result *types.ImportResult) []types.Order {
	matchable := make([]types.Order, 0, len(orders))
	for _, o := range orders {
		info, ok := p.classifier.Classify(o.Symbol)
		o.Info = info

		if !ok {
			kind := "unrecognized symbol"
			if symbols.LooksLikeOption(o.Symbol) {
				kind = "option contract without a clean CE/PE suffix"
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"symbol %s excluded from matching: %s", o.Symbol, kind))
			logger.Anomaly(ctx, o.Symbol, "unclassified_symbol")
			continue
		}

		if o.Status != types.StatusExecuted {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"order %s %s at %s skipped: not an executed order", o.Side, o.Symbol, o.Timestamp))
			continue
		}

		matchable = append(matchable, o)
	}
	return matchable
}

// groupBySymbol splits the time-ordered stream per symbol. Matching is
// independent across symbols; iteration order is made deterministic by
// sorting the symbol keys.
func groupBySymbol(orders []types.Order) (map[string][]types.Order, []string) {
	groups := make(map[string][]types.Order)
	for _, o := range orders {
		groups[o.Symbol] = append(groups[o.Symbol], o)
	}
	symbolOrder := make([]string, 0, len(groups))
	for s := range groups {
		symbolOrder = append(symbolOrder, s)
	}
	sort.Strings(symbolOrder)
	return groups, symbolOrder
}
