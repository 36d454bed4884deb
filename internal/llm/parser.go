package llm

import (
	"strings"
)

// ParseText trims leading and trailing whitespace from raw model output. Used
// for summaries and review text; any non-empty remainder is accepted verbatim.
func ParseText(raw string) string {
	return strings.TrimSpace(raw)
}

// ParseLabels extracts a normalized label list from raw model output: the text
// is lower-cased and split on commas, tokens are trimmed, blank tokens are
// dropped, and duplicates are removed preserving first occurrence. Tokens are
// not validated against the vocabulary; unknown labels are created downstream.
func ParseLabels(raw string) []string {
	var labels []string
	seen := make(map[string]struct{})

	for _, token := range strings.Split(strings.ToLower(raw), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		labels = append(labels, token)
	}
	return labels
}
