package core

import "fmt"

// Insight messages. The insight is a deterministic sentence derived from
// the aggregate numbers, never a model call.
const (
	insightNoSpending = "No spending logged for this period."
	insightNoCoffee   = "No coffee logged today — the wallet thanks you."
	insightNeutral    = "Spending looks steady for this period."

	coffeeRatioThreshold = 0.30
)

// Summary is derived from transaction rows plus the budget and never
// stored. The field set is identical whether or not the window contains
// transactions, so renderers never branch on presence.
type Summary struct {
	Window         Window
	TotalSpent     Money
	ByCategory     map[Category]Money
	BudgetDelta    map[Category]Money // monthly windows only; empty otherwise
	OverUnderTotal Money              // sum(limits) - total spent; monthly only
	Count          int
	Insight        string
}

// BuildSummary aggregates the given transactions over the window. The
// caller is expected to pass only rows that fall inside the window; rows
// outside it are skipped defensively.
func BuildSummary(w Window, txs []Transaction, budget Budget) Summary {
	s := Summary{
		Window:      w,
		ByCategory:  map[Category]Money{},
		BudgetDelta: map[Category]Money{},
	}

	for _, t := range txs {
		if !w.Contains(t.CreatedAt) {
			continue
		}
		s.TotalSpent.Cents += t.Amount.Cents
		cat := s.ByCategory[t.Category]
		cat.Cents += t.Amount.Cents
		s.ByCategory[t.Category] = cat
		s.Count++
	}

	if s.Count == 0 {
		s.Insight = insightNoSpending
		return s
	}

	if w.Kind == WindowMonth {
		for cat, limit := range budget {
			s.BudgetDelta[cat] = Money{Cents: limit.Cents - s.ByCategory[cat].Cents}
		}
		s.OverUnderTotal = Money{Cents: budget.TotalLimit().Cents - s.TotalSpent.Cents}
	}

	s.Insight = insightFor(s)
	return s
}

func insightFor(s Summary) string {
	switch s.Window.Kind {
	case WindowDay:
		coffee := s.ByCategory[CategoryCoffee].Cents
		if coffee == 0 {
			return insightNoCoffee
		}
		ratio := float64(coffee) / float64(s.TotalSpent.Cents)
		if ratio > coffeeRatioThreshold {
			return fmt.Sprintf("Coffee made up %.0f%% of today's spending (%s of %s).",
				ratio*100, Money{Cents: coffee}.Format(), s.TotalSpent.Format())
		}
		return insightNeutral
	case WindowMonth:
		if s.OverUnderTotal.Cents < 0 {
			return fmt.Sprintf("Over budget by %s this month.", Money{Cents: -s.OverUnderTotal.Cents}.Format())
		}
		return fmt.Sprintf("Under budget by %s this month.", s.OverUnderTotal.Format())
	}
	return insightNeutral
}
