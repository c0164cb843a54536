package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tradebook-importer/internal/api"
	"tradebook-importer/internal/store"
	"tradebook-importer/internal/trace"
	"tradebook-importer/internal/types"
)

const extractionPrompt = `You are reading a broker order-book screenshot. List every visible order row as JSON:
{"broker_detected":string,"price_column_used":string,"confidence":number,"orders":[{"symbol":string,"type":"BUY"|"SELL","price":number,"quantity":integer,"time":"HH:MM:SS","status":string,"confidence":number}]}
Use the execution/average price column, never the trigger or limit column. Respond ONLY with compact JSON.`

// ClaudeExtractor reads an order-book screenshot through the Anthropic
// messages API and returns the candidate order list. The engine treats the
// model as a black box; everything it returns still goes through the
// normalizer.
type ClaudeExtractor struct {
	cfg    *store.Config
	client *api.Client
}

func NewClaudeExtractor(cfg *store.Config) *ClaudeExtractor {
	// Default public Anthropic endpoint; override via CLAUDE_API_ENDPOINT for
	// proxies.
	endpoint := "https://api.anthropic.com/v1/messages"
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &ClaudeExtractor{
		cfg: cfg,
		client: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithTimeout(90*time.Second),
			api.WithHeader("anthropic-version", "2023-06-01"),
			api.WithLogging(true),
		),
	}
}

// Extract sends the screenshot and salvages the order list from the reply.
func (e *ClaudeExtractor) Extract(ctx context.Context, imageB64, mediaType string) (types.ExtractionResult, error) {
	ctx, span := trace.StartSpan(ctx, "claude-extraction-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return types.ExtractionResult{}, errors.New("CLAUDE_API_KEY missing")
	}
	if mediaType == "" {
		mediaType = "image/png"
	}

	reqBody := map[string]any{
		"model":       e.cfg.Extraction.Model,
		"max_tokens":  e.cfg.Extraction.MaxTokens,
		"temperature": e.cfg.Extraction.Temperature,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{
						"type": "image",
						"source": map[string]any{
							"type":       "base64",
							"media_type": mediaType,
							"data":       imageB64,
						},
					},
					{"type": "text", "text": extractionPrompt},
				},
			},
		},
	}

	resp, err := e.client.POSTWithRetry(ctx, "", reqBody, nil, map[string]string{"x-api-key": apiKey})
	if err != nil {
		return types.ExtractionResult{}, fmt.Errorf("claude extraction call: %w", err)
	}

	return parseExtractionResponse(resp.Body)
}
