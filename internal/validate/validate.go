// Package validate cross-checks assembled output and annotates anomalies.
// It only ever produces warnings; nothing here mutates, filters or fails.
package validate

import (
	"context"
	"fmt"

	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/types"
)

// Checker holds the session window and plausibility bounds from config.
type Checker struct {
	Window types.SessionWindow
	Bounds types.PriceBounds
}

// Check inspects trades, incomplete residue and the normalized order set,
// returning human-readable warnings for chronology, trading-hours and price
// plausibility findings.
func (c Checker) Check(ctx context.Context, trades []types.Trade, incomplete []types.IncompleteOrder, orders []types.Order) []string {
	var warnings []string

	for _, t := range trades {
		if t.ExitTime.Before(t.EntryTime) {
			warnings = append(warnings, fmt.Sprintf(
				"trade %s on %s exits at %s before its %s entry, review times",
				t.TradeID, t.Symbol, t.ExitTime, t.EntryTime))
			logger.Anomaly(ctx, t.Symbol, "chronology", "trade_id", t.TradeID)
		}
	}

	for _, o := range orders {
		if !c.Window.Contains(o.Timestamp) {
			warnings = append(warnings, fmt.Sprintf(
				"order %s %s at %s is outside trading hours %s-%s",
				o.Side, o.Symbol, o.Timestamp, c.Window.Open, c.Window.Close))
			logger.Anomaly(ctx, o.Symbol, "trading_hours", "time", o.Timestamp.String())
		}
		if warn := c.checkPrice(o.Symbol, o.Info.Segment, o.Price); warn != "" {
			warnings = append(warnings, warn)
			logger.Anomaly(ctx, o.Symbol, "price_plausibility", "price", o.Price)
		}
	}

	for _, inc := range incomplete {
		warnings = append(warnings, fmt.Sprintf(
			"symbol %s has unmatched residual quantity %d (%s @ %.2f)",
			inc.Symbol, inc.Quantity, inc.Side, inc.Price))
	}

	return warnings
}

func (c Checker) checkPrice(symbol string, segment types.MarketSegment, price float64) string {
	var min, max float64
	var kind string

	switch segment {
	case types.SegmentOption:
		min, max, kind = c.Bounds.OptionPremiumMin, c.Bounds.OptionPremiumMax, "option premium"
	case types.SegmentEquity:
		min, max, kind = c.Bounds.EquityPriceMin, c.Bounds.EquityPriceMax, "equity price"
	case types.SegmentIndex:
		min, max, kind = c.Bounds.IndexLevelMin, c.Bounds.IndexLevelMax, "index level"
	default:
		return ""
	}

	if price < min || price > max {
		return fmt.Sprintf("%s %.2f for %s is outside plausible range [%.2f, %.2f]",
			kind, price, symbol, min, max)
	}
	return ""
}
