package match

import "tradebook-importer/internal/types"

// lot is a quantity slice of an open position waiting for a counter-order.
// src keeps the originating order for incomplete-order reporting.
type lot struct {
	side      types.Side
	remaining int
	src       types.Order
}

// lotQueue is the open-position queue, strictly FIFO: new lots go on the
// back, closing orders consume from the front. All queued lots share one
// side at any moment, because an opposite-side order drains the queue before
// its remainder can be re-queued.
type lotQueue struct {
	lots []lot
}

func (q *lotQueue) empty() bool {
	return len(q.lots) == 0
}

func (q *lotQueue) front() *lot {
	return &q.lots[0]
}

func (q *lotQueue) side() types.Side {
	return q.lots[0].side
}

func (q *lotQueue) pushBack(l lot) {
	q.lots = append(q.lots, l)
}

func (q *lotQueue) popFront() lot {
	head := q.lots[0]
	q.lots = q.lots[1:]
	return head
}

// drain empties the queue into incomplete-order residue.
func (q *lotQueue) drain() []types.IncompleteOrder {
	if q.empty() {
		return nil
	}
	residue := make([]types.IncompleteOrder, 0, len(q.lots))
	for _, l := range q.lots {
		residue = append(residue, types.IncompleteOrder{
			Symbol:     l.src.Symbol,
			Side:       l.side,
			Price:      l.src.Price,
			Quantity:   l.remaining,
			Timestamp:  l.src.Timestamp,
			Confidence: l.src.Confidence,
		})
	}
	q.lots = nil
	return residue
}
