// Package core holds the domain model: transactions, money in integer
// cents, aggregation windows, budgets and summaries. Everything here is
// pure; persistence and extraction live in their own packages.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// CentsFromAmount converts a decimal amount to integer cents using
// round-half-to-even on amount*100, so repeated convert/render cycles are
// loss-free for inputs with at most two decimal digits.
//
//	CentsFromAmount(3)      -> 300
//	CentsFromAmount(4.505)  -> 450 (half to even)
//	CentsFromAmount(4.515)  -> 452
func CentsFromAmount(amount float64) int64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return int64(math.RoundToEven(amount * 100))
}

// Amount returns the decimal value for rendering. Calculations stay in
// cents.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// Format renders the amount as a dollar string with two decimals, e.g.
// "$12.40". Negative values keep the sign before the symbol.
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("$%d.%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// ParseAmountToken parses a single whitespace-delimited token as a positive
// decimal amount, tolerating a leading currency symbol ("$7", "€3.50") and
// thousands commas ("1,200"). Returns false when the token is not a number.
func ParseAmountToken(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimLeftFunc(tok, func(r rune) bool {
		return r == '$' || r == '€' || r == '£' || unicode.Is(unicode.Sc, r)
	})
	// "3.50," or "3.50." at the end of a sentence
	tok = strings.TrimRightFunc(tok, func(r rune) bool {
		return r == ',' || r == '.' || r == ';' || r == '!' || r == '?'
	})
	if tok == "" {
		return 0, false
	}
	tok = strings.ReplaceAll(tok, ",", "")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
