package core

// Budget maps each category to its monthly limit in cents. It is loaded
// once at process start and injected where needed; never mutated at
// runtime.
type Budget map[Category]Money

// DefaultBudget returns the built-in monthly limits. Deployments override
// individual categories through configuration.
func DefaultBudget() Budget {
	return Budget{
		CategoryCoffee:        {Cents: 60_00},
		CategoryFood:          {Cents: 300_00},
		CategoryGroceries:     {Cents: 400_00},
		CategoryTransport:     {Cents: 150_00},
		CategorySubscriptions: {Cents: 80_00},
		CategoryShopping:      {Cents: 200_00},
		CategoryBills:         {Cents: 250_00},
		CategoryRent:          {Cents: 1800_00},
		CategoryCollege:       {Cents: 500_00},
		CategoryFun:           {Cents: 150_00},
		CategoryOther:         {Cents: 100_00},
	}
}

// TotalLimit returns the sum of all category limits.
func (b Budget) TotalLimit() Money {
	var total int64
	for _, m := range b {
		total += m.Cents
	}
	return Money{Cents: total}
}
