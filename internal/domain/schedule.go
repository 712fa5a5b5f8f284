package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BuildInstallmentPlan generates the installment sequence for a card
// purchase.
//
// The first due date depends on which statement the purchase lands on:
// a purchase after the closing day rolls into the next cycle, so it
// falls due on the due day two calendar months after the purchase month;
// otherwise one month after. Each later installment falls due one
// calendar month after the previous one, keeping the nominal due day.
// When the target month is too short for the due day, the date is
// clamped to the month's last day; the nominal day is restored in
// following months (due day 31 gives Jan 31, Feb 28, Mar 31).
//
// Per-installment amount is total/count truncated to cents; the leftover
// cents go entirely onto the last installment, so the amounts always sum
// to the total exactly (100.00 over 3 gives 33.33, 33.33, 33.34).
func BuildInstallmentPlan(purchaseDate time.Time, total decimal.Decimal, count int, cycle BillingCycle) ([]Installment, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: installment count %d must be at least 1", ErrScheduling, count)
	}
	if err := cycle.Validate(); err != nil {
		return nil, err
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total must be greater than zero", ErrScheduling)
	}

	monthsAhead := 1
	if purchaseDate.Day() > cycle.ClosingDay {
		monthsAhead = 2
	}

	base := total.Div(decimal.NewFromInt(int64(count))).RoundDown(2)
	last := total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))

	installments := make([]Installment, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = last
		}
		installments = append(installments, Installment{
			SequenceNumber: i + 1,
			Amount:         amount,
			DueDate:        dueDateIn(purchaseDate, monthsAhead+i, cycle.DueDay),
			Paid:           false,
		})
	}

	return installments, nil
}

// dueDateIn returns the due date in the month monthsAhead after the
// purchase month, clamping the day to the target month's length.
func dueDateIn(purchaseDate time.Time, monthsAhead, dueDay int) time.Time {
	anchor := time.Date(purchaseDate.Year(), purchaseDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	target := anchor.AddDate(0, monthsAhead, 0)

	day := dueDay
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
