package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals is a paid/pending pair for one aggregation bucket.
type Totals struct {
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// Add returns the totals with the entry amount added to the matching side.
func (t Totals) add(amount decimal.Decimal, paid bool) Totals {
	if paid {
		t.Paid = t.Paid.Add(amount)
	} else {
		t.Pending = t.Pending.Add(amount)
	}
	return t
}

// MonthlyAggregate is the per-category and overall view of a date range.
// Invariant: GrandTotal equals the sum over ByCategory, every in-range
// entry counted exactly once.
type MonthlyAggregate struct {
	Start      time.Time         `json:"start"`
	End        time.Time         `json:"end"`
	ByCategory map[string]Totals `json:"byCategory"`
	GrandTotal Totals            `json:"grandTotal"`
	Incomplete bool              `json:"incomplete"`
}

// AggregateRange sums the contributing entries of the given records over
// the inclusive [start, end] range. A Single record contributes one entry
// keyed by its effective date; an Installment record contributes one
// entry per installment keyed by that installment's due date. Entries
// outside the range are excluded even when sibling entries of the same
// record are in range. Unknown categories land in the reserved
// uncategorized bucket.
func AggregateRange(start, end time.Time, records []*ObligationRecord, categories CategoryMap) MonthlyAggregate {
	agg := MonthlyAggregate{
		Start:      start,
		End:        end,
		ByCategory: make(map[string]Totals),
		GrandTotal: Totals{Paid: decimal.Zero, Pending: decimal.Zero},
	}

	for _, rec := range records {
		for _, entry := range rec.Entries() {
			if !inRange(entry.DueDate, start, end) {
				continue
			}
			bucket := categories.Resolve(entry.CategoryID)
			totals, ok := agg.ByCategory[bucket]
			if !ok {
				totals = Totals{Paid: decimal.Zero, Pending: decimal.Zero}
			}
			agg.ByCategory[bucket] = totals.add(entry.Amount, entry.Paid)
			agg.GrandTotal = agg.GrandTotal.add(entry.Amount, entry.Paid)
		}
	}

	return agg
}

// AggregateMonth aggregates one calendar month of a snapshot, carrying
// the snapshot's partial flag through to the result.
func AggregateMonth(snap *Snapshot, year int, month time.Month) MonthlyAggregate {
	start, end := PeriodBounds(year, month)
	agg := AggregateRange(start, end, snap.Obligations, snap.Categories)
	agg.Incomplete = snap.Partial
	return agg
}

// Spend is the combined paid and pending total, the figure budget limits
// are checked against.
func (t Totals) Spend() decimal.Decimal {
	return t.Paid.Add(t.Pending)
}

// inRange compares calendar days, inclusive on both ends.
func inRange(d, start, end time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(start)) && !day.After(dateOnly(end))
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
