package extract

import (
	"context"
	"strings"
	"time"

	"spendtrack/internal/core"
)

// HeuristicExtractor is the local fallback used when the model call fails
// or no model is configured. It scans whitespace-delimited tokens for the
// first one parseable as a number (after stripping a leading currency
// symbol) and defaults everything else.
type HeuristicExtractor struct{}

func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

func (h *HeuristicExtractor) Extract(_ context.Context, rawText string) (Draft, error) {
	d := Draft{}
	for _, tok := range strings.Fields(rawText) {
		if v, ok := core.ParseAmountToken(tok); ok {
			d.Amount = v
			break
		}
	}
	return complete(d, time.Now()), nil
}
