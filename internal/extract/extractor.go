// Package extract turns free text into a structured transaction draft.
// The remote model extractor and the local heuristic are two
// implementations of the same capability; callers pick the heuristic when
// the model call fails or is not configured.
package extract

import (
	"context"
	"strings"
	"time"
)

// Draft is the extraction service's guess at a transaction. Fields are
// never trusted unconditionally; normalization and validation happen
// downstream.
type Draft struct {
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Merchant     string  `json:"merchant"`
	Category     string  `json:"category"`
	CreatedAtISO string  `json:"created_at_iso"`
	Notes        string  `json:"notes"`
}

type Extractor interface {
	Extract(ctx context.Context, rawText string) (Draft, error)
}

// complete fills any missing field with its fixed default so every caller
// sees a fully populated draft.
func complete(d Draft, now time.Time) Draft {
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if len(d.Currency) != 3 {
		d.Currency = "USD"
	}
	d.Merchant = strings.TrimSpace(d.Merchant)
	if strings.TrimSpace(d.Category) == "" {
		d.Category = "other"
	}
	if strings.TrimSpace(d.CreatedAtISO) == "" {
		d.CreatedAtISO = now.UTC().Format(time.RFC3339)
	}
	return d
}
