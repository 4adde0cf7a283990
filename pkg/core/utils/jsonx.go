// Package utils holds small parsing helpers shared across the tool: tolerant
// JSON/Hjson decoding for human-written watchlists and LLM output, and
// markdown validation for generated reports.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON defects (single quotes, trailing
// commas, unclosed brackets, markdown code fences) before decoding.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSONToStruct decodes Hjson (comments, unquoted keys, optional commas)
// directly into a Go struct. Watchlist files are written by hand, so the
// lenient syntax is the point.
func ParseHJSONToStruct(data string, schema interface{}) error {
	if err := hjson.Unmarshal([]byte(data), schema); err != nil {
		return fmt.Errorf("hjson unmarshal: %w", err)
	}
	return nil
}

// SmartParse tries strict JSON, then repaired JSON, then Hjson, in order of
// increasing leniency, and decodes the first variant that fits the schema.
func SmartParse(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}
	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}
	if err := hjson.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}
	return fmt.Errorf("all parsing strategies failed for input")
}
