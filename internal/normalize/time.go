package normalize

import (
	"fmt"
	"strings"

	"tradebook-importer/internal/types"
)

// ocrConfusions maps characters the extraction layer commonly misreads inside
// time strings to the digit they stand for. Applied only after a plain parse
// fails or lands outside the session window.
var ocrConfusions = strings.NewReplacer(
	"O", "0", "o", "0",
	"I", "1", "l", "1", "|", "1", "i", "1",
	"G", "6", "g", "6",
	"B", "8",
	"S", "5", "s", "5",
	"Z", "2", "z", "2",
)

// correctTime parses a raw time string, repairing OCR damage when needed.
// Candidates are tried in priority order and the first in-window parse wins:
//
//  1. the string as typed
//  2. confusable characters substituted
//  3. hour 0 read as a dropped leading 9 ("0:25" -> "09:25")
//  4. a 12-hour shift for pre-open hours ("1:30" -> "13:30")
//
// When every candidate parses outside the window the earliest-priority parse
// is kept best-effort and flagged; only a string that never parses fails.
func (n *Normalizer) correctTime(raw string) (types.Clock, string, bool) {
	raw = strings.TrimSpace(raw)

	// A value that parses validly in-window is never altered.
	if c, err := types.ParseClock(raw); err == nil && n.window.Contains(c) {
		return c, "", true
	}

	var bestEffort types.Clock
	var haveBestEffort bool

	for _, candidate := range n.timeCandidates(raw) {
		c, err := types.ParseClock(candidate)
		if err != nil {
			continue
		}
		if n.window.Contains(c) {
			if candidate == raw {
				return c, "", true
			}
			return c, fmt.Sprintf("corrected time %s -> %s", raw, c), true
		}
		if !haveBestEffort {
			bestEffort = c
			haveBestEffort = true
		}
	}

	if haveBestEffort {
		return bestEffort, fmt.Sprintf("time %s outside trading hours, kept as %s", raw, bestEffort), true
	}
	return types.Clock{}, "", false
}

func (n *Normalizer) timeCandidates(raw string) []string {
	candidates := []string{raw}

	if substituted := ocrConfusions.Replace(raw); substituted != raw {
		candidates = append(candidates, substituted)
	}

	// Derived candidates come from every parseable base so a substitution and
	// an hour repair can stack ("O:25" -> "0:25" -> "09:25").
	for _, base := range append([]string{}, candidates...) {
		c, err := types.ParseClock(base)
		if err != nil {
			continue
		}
		if c.Hour() == 0 {
			candidates = append(candidates, "09"+base[strings.Index(base, ":"):])
		}
		if shifted := c.AddHours(12); c.Hour() < n.window.Open.Hour() && n.window.Contains(shifted) {
			candidates = append(candidates, shifted.String())
		}
	}

	return candidates
}
