package types

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the counter side used when closing a lot.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

type OrderStatus string

const (
	StatusExecuted OrderStatus = "EXECUTED"
	StatusOther    OrderStatus = "OTHER"
)

type MarketSegment string

const (
	SegmentEquity  MarketSegment = "EQUITY"
	SegmentIndex   MarketSegment = "INDEX"
	SegmentOption  MarketSegment = "OPTION"
	SegmentUnknown MarketSegment = "UNKNOWN"
)

type OptionType string

const (
	OptionCall OptionType = "CE"
	OptionPut  OptionType = "PE"
)

type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// RawOrder is one candidate row as produced by the upstream screenshot
// extraction. Nothing about it is trusted until it passes the normalizer.
type RawOrder struct {
	Symbol     string   `json:"symbol"`
	Type       string   `json:"type"`
	ColorHint  string   `json:"color_hint,omitempty"`
	Price      float64  `json:"price"`
	Quantity   int      `json:"quantity"`
	Time       string   `json:"time"`
	Status     string   `json:"status,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ExtractionResult is the full payload returned by the extraction collaborator.
type ExtractionResult struct {
	Orders          []RawOrder `json:"orders"`
	BrokerDetected  string     `json:"broker_detected,omitempty"`
	Confidence      float64    `json:"confidence,omitempty"`
	PriceColumnUsed string     `json:"price_column_used,omitempty"`
}

// SymbolInfo is the market-segment annotation attached to a normalized order.
// Underlying, Strike and OptionType are only set for SegmentOption.
type SymbolInfo struct {
	Segment    MarketSegment `json:"segment"`
	Underlying string        `json:"underlying,omitempty"`
	Strike     float64       `json:"strike,omitempty"`
	OptionType OptionType    `json:"option_type,omitempty"`
}

// Order is a normalized execution event. Immutable once built; the matcher
// only ever copies it.
type Order struct {
	Symbol     string      `json:"symbol"`
	Side       Side        `json:"side"`
	Price      float64     `json:"price"`
	Quantity   int         `json:"quantity"`
	Timestamp  Clock       `json:"time"`
	Status     OrderStatus `json:"status"`
	Confidence float64     `json:"confidence"`
	Info       SymbolInfo  `json:"info"`
	Seq        int         `json:"-"` // input position, stable-sort tie break
}

// Fill is one matched quantity slice: the opening lot's order joined with the
// order that closed against it. Raw material for the assembler.
type Fill struct {
	Symbol   string
	Open     Order
	Close    Order
	Quantity int
}

// Trade is a complete round trip, ready for journal or persistence.
type Trade struct {
	TradeID    string    `json:"trade_id"`
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Quantity   int       `json:"quantity"`
	EntryTime  Clock     `json:"entry_time"`
	ExitTime   Clock     `json:"exit_time"`
	PnL        float64   `json:"pnl"`
	Confidence float64   `json:"confidence"`
}

// IncompleteOrder is residual open quantity the matcher could not pair.
// The caller resolves these by hand; the engine never invents a counterpart.
type IncompleteOrder struct {
	Symbol     string  `json:"symbol"`
	Side       Side    `json:"side"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Timestamp  Clock   `json:"time"`
	Confidence float64 `json:"confidence"`
}

// RejectedOrder keeps an unusable raw record together with the reason it was
// excluded, so no input row ever vanishes untracked.
type RejectedOrder struct {
	Raw    RawOrder `json:"raw"`
	Reason string   `json:"reason"`
}

// ImportResult is the import engine's full answer for one screenshot.
type ImportResult struct {
	BatchID          string            `json:"batch_id"`
	Trades           []Trade           `json:"trades"`
	IncompleteOrders []IncompleteOrder `json:"incomplete_orders"`
	Rejected         []RejectedOrder   `json:"rejected"`
	Warnings         []string          `json:"warnings"`
}

// SessionWindow is the exchange trading-hours bound applied to order times.
type SessionWindow struct {
	Open  Clock
	Close Clock
}

func (w SessionWindow) Contains(c Clock) bool {
	return !c.Before(w.Open) && !c.After(w.Close)
}

// PriceBounds are the segment-aware plausibility limits used by validation.
type PriceBounds struct {
	OptionPremiumMin float64
	OptionPremiumMax float64
	EquityPriceMin   float64
	EquityPriceMax   float64
	IndexLevelMin    float64
	IndexLevelMax    float64
}
