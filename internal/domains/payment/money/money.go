// Package money converts decimal major-unit amounts (rupees, dollars) to the
// integer minor units (paise, cents) several provider wire protocols require,
// and back, with no precision loss.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ToMinorUnits converts a major-unit amount to minor units.
// Example: 250.00 INR -> 25000 paise.
//
// Fails on negative amounts and on amounts carrying sub-minor precision
// (e.g. 19.999): money is never rounded implicitly.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", amount.String())
	}

	minor := amount.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount has sub-minor-unit precision: %s", amount.String())
	}

	return minor.IntPart(), nil
}

// FromMinorUnits converts integer minor units back to a major-unit amount.
// Example: 1999 -> 19.99.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// MajorString formats a major-unit amount as a two-decimal wire string.
// PayU is the one provider that takes major units on the wire.
// Example: 100 -> "100.00".
func MajorString(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
