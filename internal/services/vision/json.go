package vision

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// extractJSONPayload recovers a JSON object from model output, tolerating the
// usual formatting quirks. Repairs are tried strictest-first: direct parse,
// fence stripping and object extraction, and only then single-quote
// normalization, so apostrophes inside otherwise valid JSON are never
// touched.
func extractJSONPayload(content string) ([]byte, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, errors.New("empty payload")
	}
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	candidate := sanitizeJSONPayload(trimmed)
	if candidate != "" && json.Valid([]byte(candidate)) {
		return []byte(candidate), nil
	}

	// Last resort for near-miss JSON with single-quoted keys/values.
	if candidate == "" {
		candidate = trimmed
	}
	normalized := strings.ReplaceAll(candidate, "'", `"`)
	if json.Valid([]byte(normalized)) {
		return []byte(normalized), nil
	}

	return nil, fmt.Errorf("invalid JSON (payload snippet: %s)", summarizePayloadSnippet(trimmed))
}

func sanitizeJSONPayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFenceBlock(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	if start := strings.Index(trimmed, "["); start >= 0 {
		if end := strings.LastIndex(trimmed, "]"); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFenceBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	body = strings.TrimLeft(body, " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
		body = strings.TrimLeft(body, " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	replacer := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
	clean := replacer.Replace(trimmed)
	clean = strings.Join(strings.Fields(clean), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
