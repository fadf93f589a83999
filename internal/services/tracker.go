// Package services orchestrates the ingestion pipeline (extract →
// normalize → validate → persist → publish) and the aggregation reads.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/extract"
	"spendtrack/internal/normalize"
)

// TransactionStore is the persistence port the tracker needs.
type TransactionStore interface {
	Insert(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ListByWindow(ctx context.Context, userID string, w core.Window, descending bool) ([]core.Transaction, error)
	Delete(ctx context.Context, userID string, id int64) error
}

const defaultExtractTimeout = 10 * time.Second

// Tracker is the transaction ingestion/aggregation service. The remote
// extractor and the AMQP client are both optional; without them ingestion
// degrades to the local heuristic and skips event publishing.
type Tracker struct {
	store          TransactionStore
	remote         extract.Extractor
	fallback       extract.Extractor
	events         *amqp.Client
	budget         core.Budget
	extractTimeout time.Duration
	now            func() time.Time
}

func NewTracker(store TransactionStore, remote extract.Extractor, events *amqp.Client, budget core.Budget, extractTimeout time.Duration) *Tracker {
	if extractTimeout <= 0 {
		extractTimeout = defaultExtractTimeout
	}
	return &Tracker{
		store:          store,
		remote:         remote,
		fallback:       extract.NewHeuristicExtractor(),
		events:         events,
		budget:         budget,
		extractTimeout: extractTimeout,
		now:            time.Now,
	}
}

// Ingest converts one free-text expense description into a persisted
// transaction. The resolved amount must be positive; everything else is
// repaired with defaults rather than rejected.
func (t *Tracker) Ingest(ctx context.Context, userID, rawText, emotion string) (core.Transaction, error) {
	if strings.TrimSpace(rawText) == "" {
		return core.Transaction{}, fmt.Errorf("%w: describe the expense, e.g. \"spent $4.50 on coffee at Blue Bottle\"", core.ErrEmptyInput)
	}

	draft := t.extract(ctx, rawText)

	cents := core.CentsFromAmount(draft.Amount)
	if cents <= 0 {
		return core.Transaction{}, fmt.Errorf("%w: no positive amount found — try something like \"spent $4.50 on coffee at Blue Bottle\"", core.ErrInvalidAmount)
	}

	tx := core.Transaction{
		UserID: userID,
		// Always the current time: a model-inferred created_at_iso is
		// discarded so records cannot be back-dated from guesses.
		CreatedAt: t.now().UTC(),
		Amount:    core.Money{Cents: cents},
		Currency:  draft.Currency,
		Merchant:  normalize.Merchant(draft.Merchant),
		RawInput:  rawText,
		Category:  normalize.Category(rawText, draft.Category),
		Emotion:   emotion,
		Notes:     draft.Notes,
	}

	saved, err := t.store.Insert(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	t.publish(ctx, amqp.EventCreated, saved.ID, userID)
	return saved, nil
}

// List returns the user's transactions for the window, newest first for
// day windows and oldest first for month windows.
func (t *Tracker) List(ctx context.Context, userID string, w core.Window) ([]core.Transaction, error) {
	items, err := t.store.ListByWindow(ctx, userID, w, w.Kind == core.WindowDay)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

// Summarize aggregates the user's window against the configured budget.
func (t *Tracker) Summarize(ctx context.Context, userID string, w core.Window) (core.Summary, error) {
	items, err := t.store.ListByWindow(ctx, userID, w, false)
	if err != nil {
		return core.Summary{}, fmt.Errorf("read window: %w", err)
	}
	return core.BuildSummary(w, items, t.budget), nil
}

// Delete removes the user's transaction by id; ids owned by other users
// report not-found.
func (t *Tracker) Delete(ctx context.Context, userID string, id int64) error {
	if err := t.store.Delete(ctx, userID, id); err != nil {
		return err
	}
	t.publish(ctx, amqp.EventDeleted, id, userID)
	return nil
}

// extract runs the remote extractor under its timeout and falls back to
// the local heuristic on any failure. Extraction failures are recovered
// here and never surfaced to the caller.
func (t *Tracker) extract(ctx context.Context, rawText string) extract.Draft {
	if t.remote != nil {
		cctx, cancel := context.WithTimeout(ctx, t.extractTimeout)
		draft, err := t.remote.Extract(cctx, rawText)
		cancel()
		if err == nil {
			return draft
		}
		slog.WarnContext(ctx, "Remote extraction failed, using heuristic fallback", "error", err)
	}

	draft, err := t.fallback.Extract(ctx, rawText)
	if err != nil {
		// The heuristic cannot actually fail; keep the contract anyway.
		slog.ErrorContext(ctx, "Heuristic extraction failed", "error", err)
		return extract.Draft{Currency: core.DefaultCurrency, Category: string(core.CategoryOther)}
	}
	return draft
}

func (t *Tracker) publish(ctx context.Context, kind string, id int64, userID string) {
	if t.events == nil {
		return
	}
	event := amqp.NewTransactionEvent(kind, id, userID)
	if err := t.events.PublishEvent(ctx, event); err != nil {
		// The row is already persisted; the worker's pending scan will
		// pick it up, so a publish failure never fails the request.
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"kind", kind, "id", id, "error", err)
	}
}
