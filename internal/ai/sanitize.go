// README: Extracts the JSON island from a raw model reply.
package ai

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// stripFences removes markdown code blocks if present (e.g. ```json ... ```).
func stripFences(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// extractJSON locates the outermost JSON value inside raw, tolerating leading and trailing
// prose. It assumes one well-formed island exists; broken brackets inside it are not repaired.
func extractJSON(raw string) (string, error) {
	text := stripFences(raw)

	start := strings.IndexByte(text, '{')
	if arr := strings.IndexByte(text, '['); arr != -1 && (start == -1 || arr < start) {
		start = arr
	}
	if start == -1 {
		log.Printf("sanitize: no JSON found in model reply: %q", raw)
		return "", Malformed("no JSON found", raw, nil)
	}

	end := strings.LastIndexByte(text, '}')
	if arr := strings.LastIndexByte(text, ']'); arr > end {
		end = arr
	}
	if end < start {
		log.Printf("sanitize: unterminated JSON in model reply: %q", raw)
		return "", Malformed("invalid JSON", raw, nil)
	}

	island := text[start : end+1]
	if !json.Valid([]byte(island)) {
		log.Printf("sanitize: invalid JSON in model reply: %q", raw)
		return "", Malformed("invalid JSON", raw, nil)
	}
	return island, nil
}

// Sanitize parses the JSON value embedded in raw.
func Sanitize(raw string) (any, error) {
	island, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal([]byte(island), &v); err != nil {
		return nil, Malformed("invalid JSON", raw, err)
	}
	return v, nil
}

// Decode sanitizes raw, checks it against schema and unmarshals it into out.
// A nil schema skips the structural check.
func Decode(raw string, schema *genai.Schema, out any) error {
	island, err := extractJSON(raw)
	if err != nil {
		return err
	}
	if schema != nil {
		var v any
		if err := json.Unmarshal([]byte(island), &v); err != nil {
			return Malformed("invalid JSON", raw, err)
		}
		if err := Validate(schema, v); err != nil {
			log.Printf("sanitize: reply violates schema: %v", err)
			return Malformed(err.Error(), raw, err)
		}
	}
	if err := json.Unmarshal([]byte(island), out); err != nil {
		return Malformed("unexpected shape", raw, err)
	}
	return nil
}
