package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeExtraction parses the payload handed over by the extraction
// collaborator. Both the full result object and a bare order array are
// accepted. A payload that is neither is a contract violation and the only
// hard-error path into the engine; data-quality problems inside the rows are
// the normalizer's business.
func DecodeExtraction(b []byte) (ExtractionResult, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return ExtractionResult{}, fmt.Errorf("empty extraction payload")
	}

	if trimmed[0] == '[' {
		var orders []RawOrder
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return ExtractionResult{}, fmt.Errorf("decode order list: %w", err)
		}
		return ExtractionResult{Orders: orders}, nil
	}

	var res ExtractionResult
	if err := json.Unmarshal(trimmed, &res); err != nil {
		return ExtractionResult{}, fmt.Errorf("decode extraction result: %w", err)
	}
	if res.Orders == nil {
		return ExtractionResult{}, fmt.Errorf("extraction result has no orders list")
	}
	return res, nil
}
