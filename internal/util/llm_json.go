package util

import (
	"regexp"
	"strings"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/tidwall/gjson"
)

// PreviewLimit bounds the raw text carried by a DecodeError.
const PreviewLimit = 500

var fencedBlock = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSONText returns the first fenced block's contents, or the whole
// trimmed text when the response has no fences.
func ExtractJSONText(raw string) string {
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// DecodeLLMJSON recovers a syntactically valid JSON payload from a model response.
func DecodeLLMJSON(raw string) ([]byte, error) {
	candidate := ExtractJSONText(raw)
	if candidate == "" || !gjson.Valid(candidate) {
		return nil, &apperror.DecodeError{Preview: Preview(raw, PreviewLimit)}
	}
	return []byte(candidate), nil
}

// Preview truncates s to at most limit runes, marking the cut with "...".
func Preview(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
