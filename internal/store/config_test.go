package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
symbols:
  equities: ["RELIANCE"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	w := cfg.Window()
	if w.Open.String() != "09:15:00" || w.Close.String() != "15:30:00" {
		t.Errorf("default session = %s-%s, want 09:15:00-15:30:00", w.Open, w.Close)
	}
	if len(cfg.Symbols.Indices) == 0 {
		t.Error("default index set missing")
	}
	if cfg.Extraction.Provider != "NOOP" {
		t.Errorf("default provider = %q, want NOOP", cfg.Extraction.Provider)
	}
	if cfg.Bounds.OptionPremiumMin != 0.05 || cfg.Bounds.OptionPremiumMax != 5000 {
		t.Errorf("default option bounds = [%v, %v]", cfg.Bounds.OptionPremiumMin, cfg.Bounds.OptionPremiumMax)
	}
	if cfg.Journal.RetentionDays != 30 {
		t.Errorf("default retention = %d, want 30", cfg.Journal.RetentionDays)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "open after close",
			yaml:    "session:\n  open: \"16:00\"\n  close: \"15:30\"\n",
			wantErr: "must precede",
		},
		{
			name:    "bad provider",
			yaml:    "extraction:\n  provider: GEMINI\n",
			wantErr: "extraction.provider",
		},
		{
			name:    "confidence out of range",
			yaml:    "extraction:\n  provider: NOOP\n  min_confidence: 1.5\n",
			wantErr: "min_confidence",
		},
		{
			name:    "unparseable session time",
			yaml:    "session:\n  open: \"quarter past nine\"\n",
			wantErr: "session.open",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "config.yaml", tt.yaml)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigMergesSymbolCache(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "symbols_cache.yaml")
	if err := SaveSymbolCache(cachePath, &SymbolCache{
		Equities: []string{"TCS", "RELIANCE"},
		Indices:  []string{"NIFTY"},
	}); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "config.yaml")
	content := "symbols:\n  equities: [\"RELIANCE\", \"INFY\"]\n  cache_file: \"" + cachePath + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"RELIANCE", "INFY", "TCS"}
	if len(cfg.Symbols.Equities) != len(want) {
		t.Fatalf("equities = %v, want %v", cfg.Symbols.Equities, want)
	}
	for i, s := range want {
		if cfg.Symbols.Equities[i] != s {
			t.Errorf("equities[%d] = %q, want %q", i, cfg.Symbols.Equities[i], s)
		}
	}
}

func TestLoadConfigMissingCacheIsFine(t *testing.T) {
	path := writeTemp(t, "config.yaml", "symbols:\n  cache_file: \"/nonexistent/cache.yaml\"\n")
	if _, err := LoadConfig(path); err != nil {
		t.Errorf("missing cache file should not fail the load: %v", err)
	}
}

func TestMergeSymbolsDedupes(t *testing.T) {
	got := mergeSymbols([]string{"A", "B"}, []string{"B", "C", "A"})
	if len(got) != 3 || got[0] != "A" || got[1] != "B" || got[2] != "C" {
		t.Errorf("mergeSymbols = %v, want [A B C]", got)
	}
}
