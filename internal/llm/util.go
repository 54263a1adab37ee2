// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

const (
	jsonFence = "```json"
	fence     = "```"
)

// ExtractFencedJSON strips a ```json fenced block down to its payload.
// When the marker appears anywhere in the text, only the content between it and the
// next closing fence is kept. Text without the marker is returned trimmed.
func ExtractFencedJSON(text string) string {
	text = strings.TrimSpace(text)

	_, after, found := strings.Cut(text, jsonFence)
	if !found {
		return text
	}

	payload, _, _ := strings.Cut(after, fence)
	return strings.TrimSpace(payload)
}
