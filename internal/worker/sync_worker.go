// Package worker mirrors persisted transactions into the spreadsheet
// export. It consumes transaction events from AMQP and periodically
// scans for rows that were inserted while publishing was down.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/sheets"
	"spendtrack/internal/storage"
)

const DefaultBatchSize = 50

type SyncWorker struct {
	store     *storage.SQLiteRepository
	writer    sheets.TransactionWriter
	batchSize int
}

func NewSyncWorker(store *storage.SQLiteRepository, writer sheets.TransactionWriter, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SyncWorker{store: store, writer: writer, batchSize: batchSize}
}

// HandleEvent processes one transaction event. Created events export the
// row; deleted events are logged only, the spreadsheet is append-only.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	switch event.Kind {
	case amqp.EventCreated:
		tx, err := w.store.Get(ctx, event.ID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// Deleted before we got to it; nothing to export.
				slog.WarnContext(ctx, "Transaction gone before export", "id", event.ID)
				return nil
			}
			return fmt.Errorf("load transaction %d: %w", event.ID, err)
		}
		return w.export(ctx, tx)
	case amqp.EventDeleted:
		slog.InfoContext(ctx, "Transaction deleted, export row retained",
			"id", event.ID, "user_id", event.UserID)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event kind, dropping", "kind", event.Kind)
		return nil
	}
}

// ProcessPending exports rows the event path missed. Returns the number
// of rows successfully exported.
func (w *SyncWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.store.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	exported := 0
	for _, tx := range pending {
		if err := w.export(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending transaction",
				"id", tx.ID, "error", err)
			continue
		}
		exported++
	}
	return exported, nil
}

func (w *SyncWorker) export(ctx context.Context, tx core.Transaction) error {
	rowRef, err := w.writer.Append(ctx, tx)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, tx.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", tx.ID, "error", markErr)
		}
		return fmt.Errorf("append to export: %w", err)
	}

	if err := w.store.MarkSynced(ctx, tx.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Exported transaction",
		"id", tx.ID, "user_id", tx.UserID, "row", rowRef)
	return nil
}
