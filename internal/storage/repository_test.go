package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"spendtrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testTx(user string, at time.Time, cents int64) core.Transaction {
	return core.Transaction{
		UserID:    user,
		CreatedAt: at,
		Amount:    core.Money{Cents: cents},
		Currency:  core.DefaultCurrency,
		Merchant:  "Mike's",
		RawInput:  "$3 espresso at Mike's",
		Category:  core.CategoryCoffee,
	}
}

func TestInsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	saved, err := repo.Insert(ctx, testTx("u1", now, 300))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("store must assign a non-zero id")
	}

	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Cents != 300 || got.Merchant != "Mike's" || got.Category != core.CategoryCoffee {
		t.Errorf("got %+v", got)
	}
	if got.RawInput != "$3 espresso at Mike's" {
		t.Errorf("raw input not preserved verbatim: %q", got.RawInput)
	}
	if !got.CreatedAt.Equal(now.Truncate(time.Nanosecond)) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestInsertRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	bad := testTx("u1", time.Now().UTC(), 0)
	if _, err := repo.Insert(context.Background(), bad); err == nil {
		t.Fatal("expected validation error for zero amount")
	}
}

func TestListByWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	w := core.MonthWindow(2025, time.June)
	inside1 := time.Date(2025, 6, 5, 10, 0, 0, 0, time.Local)
	inside2 := time.Date(2025, 6, 20, 18, 30, 0, 0, time.Local)
	outside := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)

	for _, at := range []time.Time{inside2, inside1, outside} {
		if _, err := repo.Insert(ctx, testTx("u1", at.UTC(), 500)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	// Another user's row inside the window must not appear.
	if _, err := repo.Insert(ctx, testTx("u2", inside1.UTC(), 999)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	asc, err := repo.ListByWindow(ctx, "u1", w, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(asc) != 2 {
		t.Fatalf("got %d rows, want 2", len(asc))
	}
	if !asc[0].CreatedAt.Before(asc[1].CreatedAt) {
		t.Error("ascending order violated")
	}

	desc, err := repo.ListByWindow(ctx, "u1", w, true)
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if !desc[0].CreatedAt.After(desc[1].CreatedAt) {
		t.Error("descending order violated")
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Insert(ctx, testTx("u1", time.Now().UTC(), 300))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Another user cannot delete this row.
	if err := repo.Delete(ctx, "u2", saved.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("cross-user delete: got %v, want ErrNotFound", err)
	}
	if _, err := repo.Get(ctx, saved.ID); err != nil {
		t.Fatal("row must survive a cross-user delete attempt")
	}

	// The owner can.
	if err := repo.Delete(ctx, "u1", saved.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := repo.Get(ctx, saved.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get after delete: got %v, want ErrNotFound", err)
	}

	// Deleting an unknown id reports not-found.
	if err := repo.Delete(ctx, "u1", 424242); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("unknown id delete: got %v, want ErrNotFound", err)
	}
}

func TestPendingSyncLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, _ := repo.Insert(ctx, testTx("u1", time.Now().UTC(), 100))
	b, _ := repo.Insert(ctx, testTx("u1", time.Now().UTC(), 200))

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, want 2", len(pending))
	}

	if err := repo.MarkSynced(ctx, a.ID); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	if err := repo.MarkSyncError(ctx, b.ID); err != nil {
		t.Fatalf("mark sync error: %v", err)
	}

	pending, err = repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("pending after marks: %v", err)
	}
	// Sync errors stay pending so the backup scan can retry them.
	if len(pending) != 1 || pending[0].ID != b.ID {
		t.Fatalf("pending = %+v, want only the errored row", pending)
	}
}
