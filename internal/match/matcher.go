// Package match pairs opening and closing executions for a single symbol by
// FIFO discipline: the oldest open lot is always consumed first. It has no
// fatal path; every unit of quantity either becomes part of a fill or
// surfaces as incomplete residue.
package match

import (
	"tradebook-importer/internal/types"
)

// Result is the matcher's answer for one symbol's order stream.
type Result struct {
	Fills      []types.Fill
	Incomplete []types.IncompleteOrder
}

// Match processes one symbol's executed orders in ascending timestamp order.
// Orders on the same side as the open position extend it; opposite-side
// orders close against the oldest lot first. A closing order whose quantity
// outlives the whole queue flips into a new open lot of its own side, which
// models position reversal. Whatever is still queued at the end is residue.
func Match(orders []types.Order) Result {
	var res Result
	var queue lotQueue

	for _, order := range orders {
		remaining := order.Quantity

		if queue.empty() || queue.side() == order.Side {
			queue.pushBack(lot{side: order.Side, remaining: remaining, src: order})
			continue
		}

		for remaining > 0 && !queue.empty() {
			head := queue.front()
			matched := remaining
			if head.remaining < matched {
				matched = head.remaining
			}

			res.Fills = append(res.Fills, types.Fill{
				Symbol:   order.Symbol,
				Open:     head.src,
				Close:    order,
				Quantity: matched,
			})

			head.remaining -= matched
			remaining -= matched
			if head.remaining == 0 {
				queue.popFront()
			}
		}

		// Reversal: unmatched remainder opens a position the other way.
		if remaining > 0 {
			queue.pushBack(lot{side: order.Side, remaining: remaining, src: order})
		}
	}

	res.Incomplete = queue.drain()
	return res
}
