package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryCoffee        Category = "coffee"
	CategoryFood          Category = "food"
	CategoryGroceries     Category = "groceries"
	CategoryTransport     Category = "transport"
	CategorySubscriptions Category = "subscriptions"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryRent          Category = "rent"
	CategoryCollege       Category = "college"
	CategoryFun           Category = "fun"
	CategoryOther         Category = "other"
)

const (
	DefaultCurrency = "USD"
	DefaultMerchant = "unknown"
)

type (
	Category string

	Money struct {
		Cents int64
	}

	// Transaction is a single logged expense. Rows are immutable after
	// insertion; a wrong entry is deleted and re-logged.
	Transaction struct {
		ID        int64
		UserID    string
		CreatedAt time.Time // UTC, stamped at ingestion
		Amount    Money
		Currency  string
		Merchant  string
		RawInput  string
		Category  Category
		Emotion   string
		Notes     string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotFound      = errors.New("transaction not found")
	ErrEmptyInput    = errors.New("empty input text")
)

// Categories lists the closed category set in a stable order.
func Categories() []Category {
	return []Category{
		CategoryCoffee, CategoryFood, CategoryGroceries, CategoryTransport,
		CategorySubscriptions, CategoryShopping, CategoryBills, CategoryRent,
		CategoryCollege, CategoryFun, CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryCoffee, CategoryFood, CategoryGroceries, CategoryTransport,
		CategorySubscriptions, CategoryShopping, CategoryBills, CategoryRent,
		CategoryCollege, CategoryFun, CategoryOther:
		return true
	}
	return false
}

// Coerce maps any value outside the closed set to "other". The extraction
// service is free text underneath, so its category is never trusted as-is.
func Coerce(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c
	}
	return CategoryOther
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Merchant) == "" {
		return errors.New("empty merchant")
	}
	if !t.Category.Valid() {
		return errors.New("category outside closed set: " + string(t.Category))
	}
	if t.Currency == "" || len(t.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}
	return nil
}
