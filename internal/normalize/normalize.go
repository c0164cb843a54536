package normalize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/types"
)

// Reject reasons recorded on excluded raw records.
const (
	ReasonMissingSide      = "side missing and not inferable"
	ReasonNonPositivePrice = "non-positive price"
	ReasonNonPositiveQty   = "non-positive quantity"
	ReasonMissingSymbol    = "missing symbol"
	ReasonUnparseableTime  = "unparseable time"
)

// Result carries everything the normalizer decided: usable orders, excluded
// records with reasons, and warnings about inferences it made along the way.
type Result struct {
	Orders   []types.Order
	Rejected []types.RejectedOrder
	Warnings []string
}

// Normalizer turns raw extraction rows into canonical orders. It trusts the
// upstream price-column choice and never guesses a side from price movement.
type Normalizer struct {
	window types.SessionWindow
}

func New(window types.SessionWindow) *Normalizer {
	return &Normalizer{window: window}
}

// Normalize validates and canonicalizes every raw record. Output orders are
// stably sorted by timestamp, so ties keep the screenshot's row order.
func (n *Normalizer) Normalize(ctx context.Context, raws []types.RawOrder) Result {
	res := Result{}

	for i, raw := range raws {
		order, warns, reason := n.normalizeOne(raw, i)
		res.Warnings = append(res.Warnings, warns...)
		if reason != "" {
			logger.Debug(ctx, "Raw order rejected", "index", i, "symbol", raw.Symbol, "reason", reason)
			res.Rejected = append(res.Rejected, types.RejectedOrder{Raw: raw, Reason: reason})
			continue
		}
		res.Orders = append(res.Orders, order)
	}

	sort.SliceStable(res.Orders, func(i, j int) bool {
		return res.Orders[i].Timestamp.Before(res.Orders[j].Timestamp)
	})

	logger.Info(ctx, "Normalization completed",
		"input", len(raws),
		"orders", len(res.Orders),
		"rejected", len(res.Rejected),
		"warnings", len(res.Warnings),
	)
	return res
}

func (n *Normalizer) normalizeOne(raw types.RawOrder, seq int) (types.Order, []string, string) {
	var warns []string

	symbol := CanonicalSymbol(raw.Symbol)
	if symbol == "" {
		return types.Order{}, warns, ReasonMissingSymbol
	}

	side, sideWarn, ok := resolveSide(raw)
	if !ok {
		return types.Order{}, warns, sideWarn
	}
	if sideWarn != "" {
		warns = append(warns, sideWarn)
	}

	if raw.Price <= 0 {
		return types.Order{}, warns, ReasonNonPositivePrice
	}
	if raw.Quantity <= 0 {
		return types.Order{}, warns, ReasonNonPositiveQty
	}

	ts, timeWarn, ok := n.correctTime(raw.Time)
	if !ok {
		return types.Order{}, warns, ReasonUnparseableTime
	}
	if timeWarn != "" {
		warns = append(warns, timeWarn)
	}

	confidence := 1.0
	if raw.Confidence != nil {
		confidence = *raw.Confidence
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}
	}

	return types.Order{
		Symbol:     symbol,
		Side:       side,
		Price:      raw.Price,
		Quantity:   raw.Quantity,
		Timestamp:  ts,
		Status:     mapStatus(raw.Status),
		Confidence: confidence,
		Seq:        seq,
	}, warns, ""
}

// resolveSide prefers the explicit text tag; a row-color hint only decides
// when no tag is present. Disagreement keeps the tag and warns.
func resolveSide(raw types.RawOrder) (types.Side, string, bool) {
	tagged, tagOK := sideFromTag(raw.Type)
	hinted, hintOK := sideFromHint(raw.ColorHint)

	switch {
	case tagOK && hintOK && tagged != hinted:
		warn := fmt.Sprintf("symbol %s: side tag %s disagrees with color hint %s, kept tag",
			CanonicalSymbol(raw.Symbol), tagged, hinted)
		return tagged, warn, true
	case tagOK:
		return tagged, "", true
	case hintOK:
		return hinted, "", true
	default:
		return "", ReasonMissingSide, false
	}
}

func sideFromTag(tag string) (types.Side, bool) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "BUY", "B", "BOUGHT":
		return types.SideBuy, true
	case "SELL", "S", "SOLD":
		return types.SideSell, true
	}
	return "", false
}

func sideFromHint(hint string) (types.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "green", "blue":
		return types.SideBuy, true
	case "red":
		return types.SideSell, true
	}
	return "", false
}

func mapStatus(status string) types.OrderStatus {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	// Missing status defaults to executed: broker order books overwhelmingly
	// show fills, and a cancelled row carries its own label.
	case "", "COMPLETE", "COMPLETED", "EXECUTED", "FILLED", "TRADED":
		return types.StatusExecuted
	}
	return types.StatusOther
}

// CanonicalSymbol trims, uppercases and collapses whitespace runs. Exchange
// prefixes stay; nothing is abbreviated or truncated.
func CanonicalSymbol(symbol string) string {
	return strings.Join(strings.Fields(strings.ToUpper(symbol)), " ")
}
