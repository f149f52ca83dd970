// Package reconcile turns raw vision-model text into structured review
// records. Models wrap their JSON in code fences and conversational prose
// often enough that parsing is run as an ordered chain of attempts, each
// either producing records or passing to the next. The final step always
// succeeds with an empty list, so Reconcile never returns an error.
package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/Dwij1704/Visual-Review-Extractor/internal/logger"
	"github.com/Dwij1704/Visual-Review-Extractor/internal/review"
)

// payload is the shape the extraction prompt asks the model to produce.
type payload struct {
	Reviews []review.Record `json:"reviews"`
}

// step attempts one parsing strategy. ok is false when the next strategy
// should be tried.
type step func(raw string) (recs []review.Record, ok bool)

var chain = []step{
	parseStrict,
	parseBraceSpan,
	parseEmpty,
}

// Reconcile parses raw model output into review records. It is total:
// any input, including empty or non-JSON text, yields a non-nil slice.
func Reconcile(raw string) []review.Record {
	cleaned := StripCodeFence(raw)

	for _, s := range chain {
		if recs, ok := s(cleaned); ok {
			return recs
		}
	}
	// Unreachable: parseEmpty always succeeds.
	return []review.Record{}
}

// parseStrict unmarshals the cleaned text as the expected object.
func parseStrict(raw string) ([]review.Record, bool) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	if p.Reviews == nil {
		p.Reviews = []review.Record{}
	}
	return p.Reviews, true
}

// parseBraceSpan retries on the widest {...} span, which recovers JSON
// the model buried inside explanatory prose.
func parseBraceSpan(raw string) ([]review.Record, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	return parseStrict(raw[start : end+1])
}

// parseEmpty is the terminal step: formatting noise the earlier steps
// could not repair degrades to zero reviews rather than an error.
func parseEmpty(raw string) ([]review.Record, bool) {
	if strings.TrimSpace(raw) != "" {
		logger.Warn("model output not reconcilable, returning no reviews",
			"output_size", len(raw))
	}
	return []review.Record{}, true
}

// StripCodeFence removes markdown code fence wrappers around a JSON block.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	} else {
		return s
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
