package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"tradebook-importer/internal/types"
)

// parseExtractionResponse digs the extraction JSON out of a messages-API
// reply. Model output is text; the payload may arrive fenced, prefixed with
// prose, or as the bare object, so the parser tries the structured reply
// shape first and then falls back to scanning the raw body.
func parseExtractionResponse(body []byte) (types.ExtractionResult, error) {
	var reply struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &reply); err == nil {
		for _, block := range reply.Content {
			if block.Type != "text" || strings.TrimSpace(block.Text) == "" {
				continue
			}
			if res, err := parseExtractionFromText(block.Text); err == nil {
				return res, nil
			}
		}
	}

	return parseExtractionFromText(string(body))
}

// parseExtractionFromText locates a JSON object in free text and decodes it
// through the strict contract boundary.
func parseExtractionFromText(text string) (types.ExtractionResult, error) {
	t := strings.TrimSpace(text)

	if strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		if res, err := types.DecodeExtraction([]byte(t)); err == nil {
			return res, nil
		}
	}

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start >= 0 && end > start {
		if res, err := types.DecodeExtraction([]byte(t[start : end+1])); err == nil {
			return res, nil
		}
	}

	return types.ExtractionResult{}, fmt.Errorf("no extraction payload found in model output")
}
