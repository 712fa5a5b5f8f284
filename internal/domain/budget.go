package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var periodKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Budget is the spending configuration active for one period key: a
// global monthly limit, optional per-category limits, and the window of
// days ahead within which due-date alerts fire.
type Budget struct {
	Period          string
	Global          decimal.Decimal
	PerCategory     map[string]decimal.Decimal
	AlertWindowDays int
}

// Validate checks the budget configuration.
func (b *Budget) Validate() error {
	if err := ValidatePeriodKey(b.Period); err != nil {
		return err
	}
	if b.Global.IsNegative() {
		return fmt.Errorf("%w: global limit cannot be negative", ErrValidation)
	}
	for id, limit := range b.PerCategory {
		if limit.IsNegative() {
			return fmt.Errorf("%w: limit for category %q cannot be negative", ErrValidation, id)
		}
	}
	if b.AlertWindowDays < 0 {
		return fmt.Errorf("%w: alert window cannot be negative", ErrValidation)
	}
	return nil
}

// ValidatePeriodKey checks a YYYY-MM period key.
func ValidatePeriodKey(period string) error {
	if !periodKeyRegex.MatchString(period) {
		return fmt.Errorf("%w: %q is not YYYY-MM", ErrInvalidPeriodKey, period)
	}
	return nil
}

// PeriodKey formats the period key for a point in time.
func PeriodKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// PeriodBounds returns the inclusive first and last day of a month.
func PeriodBounds(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}
