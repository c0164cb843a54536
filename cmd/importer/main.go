package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"tradebook-importer/internal/extract"
	"tradebook-importer/internal/journal"
	"tradebook-importer/internal/logger"
	"tradebook-importer/internal/pipeline"
	"tradebook-importer/internal/pipeline/pipelineobs"
	"tradebook-importer/internal/store"
	"tradebook-importer/internal/trace"
	"tradebook-importer/internal/types"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	inputPath := flag.String("input", "", "extraction JSON file ('-' for stdin)")
	imagePath := flag.String("image", "", "order-book screenshot to run through the extractor")
	writeJournal := flag.Bool("journal", true, "append results to the import journal")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := store.LoadConfig(*configPath)
	must(err)

	must(trace.Init())
	must(logger.Init())

	ctx := context.Background()
	defer func() { _ = trace.Shutdown(ctx) }()

	if v := os.Getenv("IMPORT_JOURNAL_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = journal.CompressOlder(n)
	} else {
		_ = journal.CompressOlder(cfg.Journal.RetentionDays)
	}

	extraction, err := loadExtraction(ctx, cfg, *inputPath, *imagePath)
	must(err)

	pipe := pipelineobs.Wrap(pipeline.New(cfg))
	result, err := pipe.Process(ctx, extraction.Orders)
	must(err)

	if *writeJournal {
		if err := journal.AppendResult(result); err != nil {
			logger.ErrorWithErr(ctx, "Failed to append journal", err)
		}
		if p, err := journal.SummarizeToday(); err == nil && p != "" {
			logger.Info(ctx, "Journal summary written", "path", p)
		}
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}

func loadExtraction(ctx context.Context, cfg *store.Config, inputPath, imagePath string) (types.ExtractionResult, error) {
	switch {
	case inputPath == "" && imagePath == "":
		return types.ExtractionResult{}, fmt.Errorf("one of -input or -image is required")
	case inputPath != "" && imagePath != "":
		return types.ExtractionResult{}, fmt.Errorf("-input and -image are mutually exclusive")
	case inputPath != "":
		var b []byte
		var err error
		if inputPath == "-" {
			b, err = io.ReadAll(os.Stdin)
		} else {
			b, err = os.ReadFile(inputPath)
		}
		if err != nil {
			return types.ExtractionResult{}, err
		}
		return types.DecodeExtraction(b)
	default:
		b, err := os.ReadFile(imagePath)
		if err != nil {
			return types.ExtractionResult{}, err
		}
		ex := extract.New(cfg)
		return ex.Extract(ctx, base64.StdEncoding.EncodeToString(b), mediaTypeFor(imagePath))
	}
}

func mediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
