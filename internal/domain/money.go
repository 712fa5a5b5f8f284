package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Monetary values are carried as decimals held at exactly two decimal
// places. Parsing happens once, at the ingestion boundary; everything
// downstream works on the parsed value so repeated string conversions
// cannot introduce drift.

// ParseAmount parses a positive monetary amount from its wire form.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is empty", ErrValidation)
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not numeric", ErrValidation, raw)
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrInvalidAmount, raw)
	}

	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("%w: amount %q has sub-cent precision", ErrValidation, raw)
	}

	return d.Round(2), nil
}
