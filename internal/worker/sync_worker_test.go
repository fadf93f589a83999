package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/sheets/memory"
	"spendtrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "worker.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func insertTx(t *testing.T, repo *storage.SQLiteRepository, userID string, cents int64) core.Transaction {
	t.Helper()
	tx, err := repo.Insert(context.Background(), core.Transaction{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Amount:    core.Money{Cents: cents},
		Currency:  core.DefaultCurrency,
		Merchant:  "test",
		RawInput:  "test input",
		Category:  core.CategoryCoffee,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return tx
}

func TestHandleCreatedEventExports(t *testing.T) {
	repo := newTestStore(t)
	writer := memory.NewWriter()
	w := NewSyncWorker(repo, writer, 0)

	tx := insertTx(t, repo, "u1", 450)

	event := amqp.NewTransactionEvent(amqp.EventCreated, tx.ID, "u1")
	if err := w.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle event: %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 || rows[0].ID != tx.ID {
		t.Fatalf("exported rows = %+v, want the inserted transaction", rows)
	}

	pending, err := repo.GetPendingSync(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("row still pending after export: %+v", pending)
	}
}

func TestHandleDeletedEventIsNoop(t *testing.T) {
	repo := newTestStore(t)
	writer := memory.NewWriter()
	w := NewSyncWorker(repo, writer, 0)

	event := amqp.NewTransactionEvent(amqp.EventDeleted, 42, "u1")
	if err := w.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("deleted events must not error: %v", err)
	}
	if len(writer.Rows()) != 0 {
		t.Error("deleted event must not touch the export")
	}
}

func TestHandleCreatedEventMissingRow(t *testing.T) {
	repo := newTestStore(t)
	w := NewSyncWorker(repo, memory.NewWriter(), 0)

	event := amqp.NewTransactionEvent(amqp.EventCreated, 999, "u1")
	if err := w.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("missing rows must be skipped, not retried forever: %v", err)
	}
}

func TestProcessPendingExportsBacklog(t *testing.T) {
	repo := newTestStore(t)
	writer := memory.NewWriter()
	w := NewSyncWorker(repo, writer, 10)

	insertTx(t, repo, "u1", 100)
	insertTx(t, repo, "u1", 200)
	insertTx(t, repo, "u2", 300)

	n, err := w.ProcessPending(context.Background())
	if err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if n != 3 {
		t.Fatalf("exported %d rows, want 3", n)
	}

	n, err = w.ProcessPending(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second scan exported %d rows, want 0", n)
	}
}

type failingWriter struct{}

func (failingWriter) Append(context.Context, core.Transaction) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestProcessPendingKeepsFailedRows(t *testing.T) {
	repo := newTestStore(t)
	w := NewSyncWorker(repo, failingWriter{}, 10)

	insertTx(t, repo, "u1", 100)

	n, err := w.ProcessPending(context.Background())
	if err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if n != 0 {
		t.Fatalf("exported %d rows with a failing writer, want 0", n)
	}

	pending, err := repo.GetPendingSync(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 {
		t.Errorf("failed row must stay pending for retry, got %d", len(pending))
	}
}
