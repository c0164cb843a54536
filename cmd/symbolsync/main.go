package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/store"
	"tradebook-importer/internal/symbols"
	"tradebook-importer/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	outPath := flag.String("out", "", "cache file to write (defaults to symbols.cache_file)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := store.LoadConfig(*configPath)
	must(err)

	must(trace.Init())
	must(logger.Init())

	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	path := *outPath
	if path == "" {
		path = cfg.Symbols.CacheFile
	}
	if path == "" {
		log.Fatal("no cache file configured: set symbols.cache_file or pass -out")
	}

	fetcher := symbols.NewFetcher(cfg.Symbols.RefreshURL)

	equities, err := fetcher.FetchEquities(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Equity fetch failed, keeping existing cache", err)
	}

	indices, err := fetcher.FetchIndices(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Index fetch failed, keeping existing cache", err)
	}

	if len(equities) == 0 && len(indices) == 0 {
		log.Fatal("reference-set refresh produced no symbols")
	}

	cache := &store.SymbolCache{
		Equities: equities,
		Indices:  indices,
		Updated:  time.Now().UTC().Format(time.RFC3339),
	}
	must(store.SaveSymbolCache(path, cache))

	logger.Info(ctx, "Symbol cache written", "path", path, "equities", len(equities), "indices", len(indices))
}
