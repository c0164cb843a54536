package match

import (
	"testing"

	"tradebook-importer/internal/types"
)

func order(side types.Side, qty int, price float64, at types.Clock) types.Order {
	return types.Order{
		Symbol:     "NIFTY25AUG24650CE",
		Side:       side,
		Price:      price,
		Quantity:   qty,
		Timestamp:  at,
		Status:     types.StatusExecuted,
		Confidence: 1,
	}
}

func TestFIFOSplitAcrossClosers(t *testing.T) {
	orders := []types.Order{
		order(types.SideBuy, 10, 100, types.ClockOf(10, 0, 0)),
		order(types.SideSell, 6, 110, types.ClockOf(10, 5, 0)),
		order(types.SideSell, 4, 120, types.ClockOf(10, 10, 0)),
	}

	res := Match(orders)
	if len(res.Fills) != 2 {
		t.Fatalf("fills = %d, want 2", len(res.Fills))
	}
	if len(res.Incomplete) != 0 {
		t.Fatalf("incomplete = %d, want 0", len(res.Incomplete))
	}

	f0, f1 := res.Fills[0], res.Fills[1]
	if f0.Open.Price != 100 || f0.Close.Price != 110 || f0.Quantity != 6 {
		t.Errorf("first fill = entry %.0f exit %.0f qty %d, want 100/110/6", f0.Open.Price, f0.Close.Price, f0.Quantity)
	}
	if f1.Open.Price != 100 || f1.Close.Price != 120 || f1.Quantity != 4 {
		t.Errorf("second fill = entry %.0f exit %.0f qty %d, want 100/120/4", f1.Open.Price, f1.Close.Price, f1.Quantity)
	}
}

func TestOldestLotConsumedFirst(t *testing.T) {
	orders := []types.Order{
		order(types.SideBuy, 5, 100, types.ClockOf(10, 0, 0)),
		order(types.SideBuy, 5, 105, types.ClockOf(10, 1, 0)),
		order(types.SideSell, 7, 110, types.ClockOf(10, 2, 0)),
	}

	res := Match(orders)
	if len(res.Fills) != 2 {
		t.Fatalf("fills = %d, want 2", len(res.Fills))
	}
	if res.Fills[0].Open.Price != 100 || res.Fills[0].Quantity != 5 {
		t.Errorf("first fill should drain the oldest lot: %+v", res.Fills[0])
	}
	if res.Fills[1].Open.Price != 105 || res.Fills[1].Quantity != 2 {
		t.Errorf("second fill should nibble the next lot: %+v", res.Fills[1])
	}
	if len(res.Incomplete) != 1 || res.Incomplete[0].Quantity != 3 || res.Incomplete[0].Side != types.SideBuy {
		t.Errorf("residue = %+v, want buy qty 3", res.Incomplete)
	}
}

func TestReversalFlipsRemainder(t *testing.T) {
	orders := []types.Order{
		order(types.SideBuy, 10, 100, types.ClockOf(10, 0, 0)),
		order(types.SideSell, 15, 110, types.ClockOf(10, 30, 0)),
	}

	res := Match(orders)
	if len(res.Fills) != 1 {
		t.Fatalf("fills = %d, want 1", len(res.Fills))
	}
	f := res.Fills[0]
	if f.Open.Price != 100 || f.Close.Price != 110 || f.Quantity != 10 {
		t.Errorf("fill = entry %.0f exit %.0f qty %d, want 100/110/10", f.Open.Price, f.Close.Price, f.Quantity)
	}

	// The excess 5 flips into a new open short lot, not discarded.
	if len(res.Incomplete) != 1 {
		t.Fatalf("incomplete = %d, want 1", len(res.Incomplete))
	}
	inc := res.Incomplete[0]
	if inc.Side != types.SideSell || inc.Quantity != 5 || inc.Price != 110 {
		t.Errorf("incomplete = %+v, want sell 5 @ 110", inc)
	}

	// And a later buy closes against the flipped lot.
	orders = append(orders, order(types.SideBuy, 5, 95, types.ClockOf(11, 0, 0)))
	res = Match(orders)
	if len(res.Fills) != 2 || len(res.Incomplete) != 0 {
		t.Fatalf("after covering buy: fills=%d incomplete=%d, want 2/0", len(res.Fills), len(res.Incomplete))
	}
	if res.Fills[1].Open.Price != 110 || res.Fills[1].Close.Price != 95 {
		t.Errorf("covering fill = %+v, want entry 110 exit 95", res.Fills[1])
	}
}

func TestOnlyOneSideLeavesResidue(t *testing.T) {
	orders := []types.Order{
		order(types.SideSell, 25, 300, types.ClockOf(9, 30, 0)),
		order(types.SideSell, 25, 310, types.ClockOf(9, 45, 0)),
	}

	res := Match(orders)
	if len(res.Fills) != 0 {
		t.Fatalf("fills = %d, want 0", len(res.Fills))
	}
	if len(res.Incomplete) != 2 {
		t.Fatalf("incomplete = %d, want 2", len(res.Incomplete))
	}
}

func TestQuantityConservation(t *testing.T) {
	cases := [][]types.Order{
		{
			order(types.SideBuy, 10, 100, types.ClockOf(10, 0, 0)),
			order(types.SideSell, 6, 110, types.ClockOf(10, 5, 0)),
			order(types.SideSell, 4, 120, types.ClockOf(10, 10, 0)),
		},
		{
			order(types.SideBuy, 10, 100, types.ClockOf(10, 0, 0)),
			order(types.SideSell, 15, 110, types.ClockOf(10, 30, 0)),
		},
		{
			order(types.SideSell, 75, 450, types.ClockOf(9, 20, 0)),
			order(types.SideBuy, 30, 440, types.ClockOf(9, 40, 0)),
			order(types.SideBuy, 30, 445, types.ClockOf(10, 0, 0)),
			order(types.SideSell, 10, 455, types.ClockOf(10, 20, 0)),
			order(types.SideBuy, 50, 430, types.ClockOf(11, 0, 0)),
		},
		{
			order(types.SideBuy, 1, 10, types.ClockOf(10, 0, 0)),
			order(types.SideSell, 1, 11, types.ClockOf(10, 1, 0)),
			order(types.SideBuy, 2, 12, types.ClockOf(10, 2, 0)),
			order(types.SideSell, 5, 13, types.ClockOf(10, 3, 0)),
			order(types.SideBuy, 7, 14, types.ClockOf(10, 4, 0)),
		},
	}

	for i, orders := range cases {
		res := Match(orders)

		input := 0
		for _, o := range orders {
			input += o.Quantity
		}
		// Every fill consumes quantity from exactly one opening and one
		// closing order, so fills count double against the input total.
		matched := 0
		for _, f := range res.Fills {
			matched += f.Quantity
		}
		residue := 0
		for _, inc := range res.Incomplete {
			residue += inc.Quantity
		}

		if 2*matched+residue != input {
			t.Errorf("case %d: 2*matched(%d) + residue(%d) != input(%d)", i, matched, residue, input)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	res := Match(nil)
	if len(res.Fills) != 0 || len(res.Incomplete) != 0 {
		t.Errorf("empty input produced output: %+v", res)
	}
}
