// Package normalize applies deterministic keyword heuristics to a parsed
// transaction: category overrides from the raw text and merchant
// defaulting. No I/O, no external calls.
package normalize

import (
	"strings"

	"spendtrack/internal/core"
)

// Rule pairs a keyword set with the category it assigns when any keyword
// appears in the lower-cased raw text.
type Rule struct {
	Category core.Category
	Keywords []string
}

// rules is the override table, evaluated top to bottom with first match
// winning. The order is policy, not accident: food sits last so it cannot
// shadow coffee or groceries ("lunch at the coffee cart" stays coffee).
// Change the order only together with the tests that pin it.
var rules = []Rule{
	{core.CategoryCoffee, []string{"coffee", "espresso", "latte", "cappuccino", "americano", "mocha", "cold brew", "starbucks", "cafe"}},
	{core.CategoryTransport, []string{"uber", "lyft", "taxi", "cab", "bus", "train", "subway", "metro", "gas", "fuel", "parking", "toll"}},
	{core.CategoryGroceries, []string{"grocery", "groceries", "supermarket", "trader joe", "whole foods", "costco", "aldi", "safeway"}},
	{core.CategorySubscriptions, []string{"netflix", "spotify", "hulu", "subscription", "membership", "icloud", "prime"}},
	{core.CategoryRent, []string{"rent", "landlord", "lease"}},
	{core.CategoryCollege, []string{"tuition", "textbook", "college", "university", "semester", "course fee"}},
	{core.CategoryFood, []string{"food", "lunch", "dinner", "breakfast", "brunch", "restaurant", "pizza", "burger", "sushi", "sandwich", "takeout", "snack"}},
}

// Rules returns the override table in evaluation order, for documentation
// and per-rule tests.
func Rules() []Rule {
	return rules
}

// Category resolves the final category: a keyword rule firing on the raw
// text overrides the extracted value; otherwise the extracted value is
// coerced into the closed set (unknown values become "other", never leak).
func Category(rawText string, extracted string) core.Category {
	lower := strings.ToLower(rawText)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return core.Coerce(extracted)
}

// Merchant guarantees a non-empty merchant name.
func Merchant(m string) string {
	m = strings.TrimSpace(m)
	if m == "" {
		return core.DefaultMerchant
	}
	return m
}
