// Package core provides the transaction model, money parsing and the summary
// aggregation shared by every store.
package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user supplied decimal string to a float amount.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Negative values,
// NaN, infinities and anything that is not a plain decimal number are rejected.
//
// Examples:
//
//	ParseAmount("40")     -> 40, nil
//	ParseAmount("12,50")  -> 12.5, nil
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, s)
	}
	return f, nil
}
