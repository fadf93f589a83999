package core

import (
	"testing"
	"time"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"coffee", CategoryCoffee},
		{"Coffee", CategoryCoffee},
		{"  TRANSPORT ", CategoryTransport},
		{"dining", CategoryOther},
		{"", CategoryOther},
		{"misc", CategoryOther},
	}
	for _, tc := range cases {
		if got := Coerce(tc.in); got != tc.want {
			t.Errorf("Coerce(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		UserID:    "u1",
		CreatedAt: time.Now().UTC(),
		Amount:    Money{Cents: 300},
		Currency:  "USD",
		Merchant:  "Mike's",
		RawInput:  "$3 espresso at Mike's",
		Category:  CategoryCoffee,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
	}{
		{"zero amount", func(tx *Transaction) { tx.Amount.Cents = 0 }},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -100 }},
		{"empty merchant", func(tx *Transaction) { tx.Merchant = "  " }},
		{"unknown category", func(tx *Transaction) { tx.Category = "dining" }},
		{"bad currency", func(tx *Transaction) { tx.Currency = "US" }},
		{"zero created_at", func(tx *Transaction) { tx.CreatedAt = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			if err := tx.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
