package journal

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tradebook-importer/internal/types"
)

func tempJournal(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("IMPORT_JOURNAL_DIR", dir)
	return dir
}

func sampleResult() *types.ImportResult {
	return &types.ImportResult{
		BatchID: "batch-1",
		Trades: []types.Trade{
			{
				TradeID: "t1", Symbol: "NIFTY25AUG24650CE", Direction: types.DirectionLong,
				EntryPrice: 100, ExitPrice: 110, Quantity: 50, PnL: 500, Confidence: 0.95,
			},
			{
				TradeID: "t2", Symbol: "NIFTY25AUG24650CE", Direction: types.DirectionLong,
				EntryPrice: 100, ExitPrice: 95, Quantity: 25, PnL: -125, Confidence: 0.9,
			},
			{
				TradeID: "t3", Symbol: "RELIANCE", Direction: types.DirectionShort,
				EntryPrice: 2520, ExitPrice: 2500, Quantity: 10, PnL: 200, Confidence: 1,
			},
		},
		IncompleteOrders: []types.IncompleteOrder{
			{Symbol: "TCS", Side: types.SideBuy, Price: 3400, Quantity: 5},
		},
	}
}

func TestAppendResultWritesDailyFiles(t *testing.T) {
	dir := tempJournal(t)

	if err := AppendResult(sampleResult()); err != nil {
		t.Fatal(err)
	}

	day := istNow().Format("2006-01-02")
	f, err := os.Open(filepath.Join(dir, day+".txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var entries []TradeEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e TradeEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad journal line %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 3 {
		t.Fatalf("trade lines = %d, want 3", len(entries))
	}
	if entries[0].BatchID != "batch-1" || entries[0].Symbol != "NIFTY25AUG24650CE" || entries[0].PnL != 500 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[0].Time == "" {
		t.Error("entry missing timestamp")
	}

	incPath := filepath.Join(dir, "incomplete", day+".txt")
	b, err := os.ReadFile(incPath)
	if err != nil {
		t.Fatalf("incomplete file missing: %v", err)
	}
	var inc IncompleteEntry
	if err := json.Unmarshal(b[:len(b)-1], &inc); err != nil {
		t.Fatalf("bad incomplete line: %v", err)
	}
	if inc.Symbol != "TCS" || inc.Qty != 5 {
		t.Errorf("incomplete entry = %+v", inc)
	}
}

func TestSummarizeDay(t *testing.T) {
	dir := tempJournal(t)

	if err := AppendResult(sampleResult()); err != nil {
		t.Fatal(err)
	}

	path, err := SummarizeToday()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("expected a summary path")
	}
	if filepath.Dir(path) != filepath.Join(dir, "summary") {
		t.Errorf("summary written to %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header, two symbols, total row.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4: %v", len(rows), rows)
	}
	if rows[1][0] != "NIFTY25AUG24650CE" || rows[1][1] != "2" || rows[1][2] != "75" || rows[1][3] != "375.00" {
		t.Errorf("aggregate row = %v", rows[1])
	}
	if rows[2][0] != "RELIANCE" || rows[2][3] != "200.00" {
		t.Errorf("equity row = %v", rows[2])
	}
	if rows[3][0] != "TOTAL" || rows[3][3] != "575.00" {
		t.Errorf("total row = %v", rows[3])
	}
}

func TestSummarizeDayWithNoJournal(t *testing.T) {
	tempJournal(t)

	path, err := SummarizeToday()
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for a day with no journal", path)
	}
}

func TestCompressOlderLeavesFreshFiles(t *testing.T) {
	dir := tempJournal(t)

	if err := AppendResult(sampleResult()); err != nil {
		t.Fatal(err)
	}
	if err := CompressOlder(30); err != nil {
		t.Fatal(err)
	}

	day := istNow().Format("2006-01-02")
	if _, err := os.Stat(filepath.Join(dir, day+".txt")); err != nil {
		t.Errorf("fresh journal file should survive retention: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, day+".txt.gz")); err == nil {
		t.Error("fresh journal file should not be compressed")
	}
}
