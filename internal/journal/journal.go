// Package journal persists import results as JSON-lines daily files: one
// line per round trip under the journal root, incomplete residue under
// incomplete/. Old files are gzip-compressed past the retention window.
package journal

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tradebook-importer/internal/types"
)

var mu sync.Mutex

type TradeEntry struct {
	Time       string
	BatchID    string
	Symbol     string
	Direction  types.Direction
	Qty        int
	EntryPrice float64
	ExitPrice  float64
	PnL        float64
	Confidence float64
}

type IncompleteEntry struct {
	Time    string
	BatchID string
	Symbol  string
	Side    types.Side
	Qty     int
	Price   float64
}

func dir() string {
	if v := os.Getenv("IMPORT_JOURNAL_DIR"); v != "" {
		return v
	}
	return "journal"
}

func istNow() time.Time {
	return time.Now().In(time.FixedZone("IST", 19800))
}

func dailyFilepath(t time.Time) string {
	return filepath.Join(dir(), t.Format("2006-01-02")+".txt")
}

func incompleteFilepath(t time.Time) string {
	return filepath.Join(dir(), "incomplete", t.Format("2006-01-02")+".txt")
}

// AppendResult writes every trade and incomplete order of an import run.
func AppendResult(res *types.ImportResult) error {
	now := istNow()
	for _, t := range res.Trades {
		e := TradeEntry{
			BatchID:    res.BatchID,
			Symbol:     t.Symbol,
			Direction:  t.Direction,
			Qty:        t.Quantity,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			PnL:        t.PnL,
			Confidence: t.Confidence,
		}
		if err := appendLine(dailyFilepath(now), now, &e.Time, e); err != nil {
			return err
		}
	}
	for _, inc := range res.IncompleteOrders {
		e := IncompleteEntry{
			BatchID: res.BatchID,
			Symbol:  inc.Symbol,
			Side:    inc.Side,
			Qty:     inc.Quantity,
			Price:   inc.Price,
		}
		if err := appendLine(incompleteFilepath(now), now, &e.Time, e); err != nil {
			return err
		}
	}
	return nil
}

func appendLine(path string, now time.Time, timeField *string, entry any) error {
	mu.Lock()
	defer mu.Unlock()
	*timeField = now.Format("2006-01-02 15:04:05")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(entry)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips journal files older than the retention window.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return filepath.WalkDir(dir(), func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, e2 := os.Stat(gz); e2 == nil {
			return os.Remove(p)
		}

		in, e3 := os.Open(p)
		if e3 != nil {
			return nil
		}
		defer in.Close()

		out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if e4 != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, e5 := io.Copy(gw, in); e5 == nil {
			_ = gw.Close()
			_ = out.Close()
			return os.Remove(p)
		}
		_ = gw.Close()
		_ = out.Close()
		return nil
	})
}
