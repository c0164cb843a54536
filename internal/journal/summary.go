package journal

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type aggRow struct {
	Symbol string
	Trades int
	Qty    int
	PnL    float64
}

func summaryCSVPath(t time.Time) string {
	return filepath.Join(dir(), "summary", t.Format("2006-01-02")+".csv")
}

// SummarizeDay aggregates one day's journal into a per-symbol CSV and
// returns its path. Empty string when there was nothing to summarize.
func SummarizeDay(t time.Time) (string, error) {
	inPath := dailyFilepath(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e TradeEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		row := aggs[e.Symbol]
		if row == nil {
			row = &aggRow{Symbol: e.Symbol}
			aggs[e.Symbol] = row
		}
		row.Trades++
		row.Qty += e.Qty
		row.PnL += e.PnL
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := summaryCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"symbol", "trades", "total_qty", "net_pnl"}); err != nil {
		return "", err
	}
	var totalPnL float64
	for _, k := range keys {
		r := aggs[k]
		rec := []string{r.Symbol, strconv.Itoa(r.Trades), strconv.Itoa(r.Qty), fmt.Sprintf("%.2f", r.PnL)}
		if err := w.Write(rec); err != nil {
			return "", err
		}
		totalPnL += r.PnL
	}
	_ = w.Write([]string{"TOTAL", "", "", fmt.Sprintf("%.2f", totalPnL)})
	return outPath, nil
}

// SummarizeToday summarizes the current IST day.
func SummarizeToday() (string, error) {
	return SummarizeDay(istNow())
}
