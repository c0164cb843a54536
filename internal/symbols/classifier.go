package symbols

import (
	"regexp"
	"strconv"
	"strings"

	"tradebook-importer/internal/types"
)

// Option contract shapes seen on broker order books. The contiguous form is
// the NSE contract name (<underlying><expiry-code><strike><CE|PE>, expiry
// coded YYMDD for weeklies or YYMMM for monthlies); the spaced form is the
// display variant some brokers render.
var (
	contiguousOptionRe = regexp.MustCompile(`^([A-Z][A-Z0-9&-]*?)(\d{2}(?:[A-Z]{3}|[A-Z0-9]\d{2}))(\d+(?:\.\d+)?)(CE|PE)$`)
	spacedOptionRe     = regexp.MustCompile(`^([A-Z][A-Z0-9&-]*)(?:\s+\S+)*?\s+(\d+(?:\.\d+)?)\s+(CE|PE)$`)
	optionSuffixRe     = regexp.MustCompile(`[\d\s](CE|PE)$`)
)

// Classifier resolves market-segment metadata for canonical symbols. The
// equity and index reference sets come from config, optionally refreshed by
// the NSE fetcher.
type Classifier struct {
	equities map[string]struct{}
	indices  map[string]struct{}
}

func NewClassifier(equities, indices []string) *Classifier {
	c := &Classifier{
		equities: make(map[string]struct{}, len(equities)),
		indices:  make(map[string]struct{}, len(indices)),
	}
	for _, s := range equities {
		c.equities[strings.ToUpper(s)] = struct{}{}
	}
	for _, s := range indices {
		c.indices[strings.ToUpper(s)] = struct{}{}
	}
	return c
}

// Classify parses a canonical symbol into segment metadata. ok is false for
// patterns it cannot resolve deterministically; such orders are kept out of
// matching rather than guessed at.
func (c *Classifier) Classify(symbol string) (types.SymbolInfo, bool) {
	bare := stripExchangePrefix(symbol)
	if bare == "" {
		return types.SymbolInfo{Segment: types.SegmentUnknown}, false
	}

	if info, ok := c.classifyOption(bare); ok {
		return info, true
	}

	if _, ok := c.indices[bare]; ok {
		return types.SymbolInfo{Segment: types.SegmentIndex}, true
	}
	if _, ok := c.equities[bare]; ok {
		return types.SymbolInfo{Segment: types.SegmentEquity}, true
	}

	return types.SymbolInfo{Segment: types.SegmentUnknown}, false
}

func (c *Classifier) classifyOption(bare string) (types.SymbolInfo, bool) {
	if m := contiguousOptionRe.FindStringSubmatch(bare); m != nil {
		strike, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return types.SymbolInfo{Segment: types.SegmentUnknown}, false
		}
		return types.SymbolInfo{
			Segment:    types.SegmentOption,
			Underlying: m[1],
			Strike:     strike,
			OptionType: types.OptionType(m[4]),
		}, true
	}

	if m := spacedOptionRe.FindStringSubmatch(bare); m != nil {
		strike, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return types.SymbolInfo{Segment: types.SegmentUnknown}, false
		}
		return types.SymbolInfo{
			Segment:    types.SegmentOption,
			Underlying: m[1],
			Strike:     strike,
			OptionType: types.OptionType(m[3]),
		}, true
	}

	return types.SymbolInfo{Segment: types.SegmentUnknown}, false
}

// LooksLikeOption reports whether a symbol carries a CE/PE marker at all,
// used to word the warning for contracts that failed to classify.
func LooksLikeOption(symbol string) bool {
	return optionSuffixRe.MatchString(stripExchangePrefix(symbol))
}

func stripExchangePrefix(symbol string) string {
	if i := strings.IndexByte(symbol, ':'); i >= 0 {
		return strings.TrimSpace(symbol[i+1:])
	}
	return symbol
}
