// Package core holds the canonical movement model shared by the dialect
// classifiers, the ingest pipeline and the store.
//
// This file contains the amount normalizer: statement cells carry values
// like "$1,250.00", " 998.50 " or nothing at all, and all of them must
// collapse to a non-negative decimal.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a raw statement amount cell into a decimal.
//
// Grouping commas, a leading currency symbol and stray whitespace are
// stripped. Empty input means zero, which is the normal case for the
// unused side of a credit/debit pair. Negative values are rejected:
// statements report direction through separate columns, never a sign.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
