// Package assemble turns raw match fills into fully-populated trades:
// direction with option CE/PE semantics, signed P&L, aggregate confidence.
// Pure except for the generated trade IDs.
package assemble

import (
	"math"

	"github.com/google/uuid"

	"tradebook-importer/internal/types"
)

// Trades assembles one Trade per fill, in fill order.
func Trades(fills []types.Fill) []types.Trade {
	trades := make([]types.Trade, 0, len(fills))
	for _, f := range fills {
		trades = append(trades, assembleOne(f))
	}
	return trades
}

func assembleOne(f types.Fill) types.Trade {
	direction := Direction(f.Open)

	sign := 1.0
	if direction == types.DirectionShort {
		sign = -1.0
	}
	pnl := round2((f.Close.Price - f.Open.Price) * float64(f.Quantity) * sign)

	return types.Trade{
		TradeID:    uuid.New().String(),
		Symbol:     f.Symbol,
		Direction:  direction,
		EntryPrice: f.Open.Price,
		ExitPrice:  f.Close.Price,
		Quantity:   f.Quantity,
		EntryTime:  f.Open.Timestamp,
		ExitTime:   f.Close.Timestamp,
		PnL:        pnl,
		Confidence: minConfidence(f.Open.Confidence, f.Close.Confidence),
	}
}

// Direction derives the market exposure of a position from its opening
// order. For options the contract type flips the meaning: a bought put and a
// sold call are both bearish, a sold put and a bought call both bullish.
// Everything else follows the opening side directly.
func Direction(open types.Order) types.Direction {
	if open.Info.Segment == types.SegmentOption && open.Info.OptionType == types.OptionPut {
		if open.Side == types.SideBuy {
			return types.DirectionShort
		}
		return types.DirectionLong
	}
	if open.Side == types.SideBuy {
		return types.DirectionLong
	}
	return types.DirectionShort
}

// A trade is only as trustworthy as its weakest extracted leg.
func minConfidence(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// round2 rounds to paise; broker order books quote two decimals.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
