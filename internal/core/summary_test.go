package core

import (
	"strings"
	"testing"
	"time"
)

func tx(cat Category, cents int64, at time.Time) Transaction {
	return Transaction{
		UserID:    "u1",
		CreatedAt: at,
		Amount:    Money{Cents: cents},
		Currency:  DefaultCurrency,
		Merchant:  DefaultMerchant,
		Category:  cat,
	}
}

func TestBuildSummaryEmptyWindow(t *testing.T) {
	w := MonthWindow(2025, time.June)
	s := BuildSummary(w, nil, DefaultBudget())

	if s.Count != 0 {
		t.Errorf("count = %d, want 0", s.Count)
	}
	if s.TotalSpent.Cents != 0 {
		t.Errorf("total = %d, want 0", s.TotalSpent.Cents)
	}
	if s.ByCategory == nil || s.BudgetDelta == nil {
		t.Error("maps must be present (empty, not nil) for empty windows")
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("by-category should be empty, got %v", s.ByCategory)
	}
	if s.Insight != insightNoSpending {
		t.Errorf("insight = %q, want fixed no-spending message", s.Insight)
	}
}

func TestBuildSummaryMonthlyBudgetDelta(t *testing.T) {
	w := MonthWindow(2025, time.June)
	mid := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	budget := DefaultBudget()

	// Three food transactions totaling $45 against a $300 food budget.
	txs := []Transaction{
		tx(CategoryFood, 1500, mid),
		tx(CategoryFood, 2000, mid.Add(time.Hour)),
		tx(CategoryFood, 1000, mid.Add(2*time.Hour)),
	}
	s := BuildSummary(w, txs, budget)

	if s.Count != 3 {
		t.Fatalf("count = %d, want 3", s.Count)
	}
	if s.TotalSpent.Cents != 4500 {
		t.Fatalf("total = %d, want 4500", s.TotalSpent.Cents)
	}
	if got := s.BudgetDelta[CategoryFood].Cents; got != 25500 {
		t.Errorf("food delta = %d cents, want 25500 ($255)", got)
	}
	wantOverUnder := budget.TotalLimit().Cents - 4500
	if s.OverUnderTotal.Cents != wantOverUnder {
		t.Errorf("over_under_total = %d, want %d", s.OverUnderTotal.Cents, wantOverUnder)
	}
	if !strings.Contains(s.Insight, "Under budget") {
		t.Errorf("insight = %q, want under-budget message", s.Insight)
	}
	// Untouched categories still get a delta entry equal to their limit.
	if got := s.BudgetDelta[CategoryRent].Cents; got != budget[CategoryRent].Cents {
		t.Errorf("rent delta = %d, want full limit %d", got, budget[CategoryRent].Cents)
	}
}

func TestBuildSummaryMonthlyOverBudget(t *testing.T) {
	w := MonthWindow(2025, time.June)
	mid := time.Date(2025, 6, 15, 9, 0, 0, 0, time.Local)
	budget := Budget{CategoryFood: {Cents: 10000}}

	s := BuildSummary(w, []Transaction{tx(CategoryFood, 15000, mid)}, budget)

	if s.OverUnderTotal.Cents != -5000 {
		t.Fatalf("over_under_total = %d, want -5000", s.OverUnderTotal.Cents)
	}
	if !strings.Contains(s.Insight, "Over budget by $50.00") {
		t.Errorf("insight = %q, want over-budget with amount", s.Insight)
	}
}

func TestBuildSummaryDailyCoffeeRatio(t *testing.T) {
	day := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)
	w := DayWindow(day)

	t.Run("ratio above threshold", func(t *testing.T) {
		s := BuildSummary(w, []Transaction{
			tx(CategoryCoffee, 500, day),
			tx(CategoryFood, 700, day.Add(time.Hour)),
		}, DefaultBudget())
		if !strings.Contains(s.Insight, "Coffee made up") {
			t.Errorf("insight = %q, want coffee ratio callout", s.Insight)
		}
		// No budget deltas on daily windows.
		if len(s.BudgetDelta) != 0 {
			t.Errorf("daily window should not carry budget deltas, got %v", s.BudgetDelta)
		}
	})

	t.Run("no coffee", func(t *testing.T) {
		s := BuildSummary(w, []Transaction{tx(CategoryFood, 700, day)}, DefaultBudget())
		if s.Insight != insightNoCoffee {
			t.Errorf("insight = %q, want fixed no-coffee message", s.Insight)
		}
	})

	t.Run("coffee below threshold", func(t *testing.T) {
		s := BuildSummary(w, []Transaction{
			tx(CategoryCoffee, 300, day),
			tx(CategoryFood, 5000, day.Add(time.Hour)),
		}, DefaultBudget())
		if s.Insight != insightNeutral {
			t.Errorf("insight = %q, want neutral message", s.Insight)
		}
	})
}

func TestBuildSummarySkipsRowsOutsideWindow(t *testing.T) {
	w := DayWindow(time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local))
	outside := time.Date(2025, 6, 11, 1, 0, 0, 0, time.Local)

	s := BuildSummary(w, []Transaction{tx(CategoryFood, 700, outside)}, DefaultBudget())
	if s.Count != 0 {
		t.Errorf("row outside window counted: %d", s.Count)
	}
}
