package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode discriminates the two obligation shapes.
type PaymentMode string

const (
	// PaymentSingle is an obligation settled in one payment on one
	// effective date. It carries no installment list.
	PaymentSingle PaymentMode = "single"
	// PaymentInstallment is a card purchase split across N dated
	// installments governed by a billing cycle. N=1 is still
	// installment-shaped.
	PaymentInstallment PaymentMode = "installment"
)

// BillingCycle is a card's closing/due day pair. The closing day decides
// which statement a purchase lands on; the due day decides when each
// statement is payable.
type BillingCycle struct {
	ClosingDay int
	DueDay     int
}

// Validate checks that both days are plausible days of month.
func (c BillingCycle) Validate() error {
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return fmt.Errorf("%w: closing day %d outside 1-31", ErrScheduling, c.ClosingDay)
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("%w: due day %d outside 1-31", ErrScheduling, c.DueDay)
	}
	return nil
}

// Installment is one dated slice of an installment obligation.
type Installment struct {
	SequenceNumber int
	Amount         decimal.Decimal
	DueDate        time.Time
	Paid           bool
	PaidDate       *time.Time
}

// ObligationRecord is the normalized internal representation of both
// obligation shapes. It is created once and never structurally changed;
// only paid flags are mutated afterwards, by the persistence layer.
type ObligationRecord struct {
	ID          string
	Description string
	CategoryID  string
	TotalAmount decimal.Decimal
	PaymentMode PaymentMode

	// Single only.
	EffectiveDate *time.Time
	Paid          bool
	PaidDate      *time.Time

	// Installment only.
	Cycle        *BillingCycle
	Installments []Installment

	CreatedAt time.Time
}

// Entry is one dated contribution of an obligation: the single payment
// itself, or one installment. A Single record yields one entry keyed by
// its effective date; an Installment record yields one entry per
// installment keyed by that installment's own due date, never by the
// purchase date.
type Entry struct {
	ObligationID   string
	Description    string
	CategoryID     string
	SequenceNumber int
	Amount         decimal.Decimal
	DueDate        time.Time
	Paid           bool
}

// Pending is the canonical pending predicate: an entry is pending iff it
// has not been marked paid. Dates play no role. Aggregation and alerting
// both use this and nothing else.
func (e Entry) Pending() bool {
	return !e.Paid
}

// Entries expands the record into its contributing entries, ordered by
// due date for installments.
func (o *ObligationRecord) Entries() []Entry {
	if o.PaymentMode == PaymentSingle {
		if o.EffectiveDate == nil {
			return nil
		}
		return []Entry{{
			ObligationID: o.ID,
			Description:  o.Description,
			CategoryID:   o.CategoryID,
			Amount:       o.TotalAmount,
			DueDate:      *o.EffectiveDate,
			Paid:         o.Paid,
		}}
	}

	entries := make([]Entry, 0, len(o.Installments))
	for _, ins := range o.Installments {
		entries = append(entries, Entry{
			ObligationID:   o.ID,
			Description:    o.Description,
			CategoryID:     o.CategoryID,
			SequenceNumber: ins.SequenceNumber,
			Amount:         ins.Amount,
			DueDate:        ins.DueDate,
			Paid:           ins.Paid,
		})
	}
	return entries
}

// Validate checks the record invariants: positive total, category
// present, shape-specific fields present, and for installment records an
// ordered installment list with unique sequence numbers whose amounts sum
// to the total exactly.
func (o *ObligationRecord) Validate() error {
	if o.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: total amount must be greater than zero", ErrValidation)
	}
	if o.CategoryID == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}

	switch o.PaymentMode {
	case PaymentSingle:
		if o.EffectiveDate == nil {
			return fmt.Errorf("%w: single payment requires an effective date", ErrValidation)
		}

	case PaymentInstallment:
		if o.Cycle == nil {
			return fmt.Errorf("%w: installment payment requires a billing cycle", ErrValidation)
		}
		if err := o.Cycle.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if len(o.Installments) == 0 {
			return fmt.Errorf("%w: installment payment requires at least one installment", ErrValidation)
		}

		sum := decimal.Zero
		seen := make(map[int]bool, len(o.Installments))
		prev := time.Time{}
		for _, ins := range o.Installments {
			if seen[ins.SequenceNumber] {
				return fmt.Errorf("%w: duplicate installment sequence %d", ErrValidation, ins.SequenceNumber)
			}
			seen[ins.SequenceNumber] = true
			if ins.DueDate.Before(prev) {
				return fmt.Errorf("%w: installments not ordered by due date", ErrValidation)
			}
			prev = ins.DueDate
			sum = sum.Add(ins.Amount)
		}
		if !sum.Equal(o.TotalAmount) {
			return fmt.Errorf("%w: installments sum to %s, total is %s", ErrValidation, sum, o.TotalAmount)
		}

	default:
		return fmt.Errorf("%w: unknown payment mode %q", ErrValidation, o.PaymentMode)
	}

	return nil
}

// RawObligation is the on-the-wire obligation shape handed over by the
// persistence collaborator, before parsing. Amounts are strings.
type RawObligation struct {
	ID            string           `json:"id"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	TotalAmount   string           `json:"totalAmount"`
	PaymentMode   string           `json:"paymentMode"`
	EffectiveDate *time.Time       `json:"effectiveDate,omitempty"`
	Paid          bool             `json:"paid"`
	PaidDate      *time.Time       `json:"paidDate,omitempty"`
	Card          *BillingCycle    `json:"card,omitempty"`
	Installments  []RawInstallment `json:"installments,omitempty"`
}

// RawInstallment is the on-the-wire installment shape.
type RawInstallment struct {
	SequenceNumber int        `json:"sequenceNumber"`
	Amount         string     `json:"amount"`
	DueDate        time.Time  `json:"dueDate"`
	Paid           bool       `json:"paid"`
	PaidDate       *time.Time `json:"paidDate,omitempty"`
}

// NormalizeObligation parses a raw record into the tagged internal
// representation, rejecting malformed shapes immediately. The input is
// never mutated; the result is a fresh value whose monetary fields were
// parsed exactly once.
func NormalizeObligation(raw RawObligation) (*ObligationRecord, error) {
	total, err := ParseAmount(raw.TotalAmount)
	if err != nil {
		return nil, err
	}

	rec := &ObligationRecord{
		ID:          raw.ID,
		Description: raw.Description,
		CategoryID:  raw.Category,
		TotalAmount: total,
		Paid:        raw.Paid,
	}
	if raw.PaidDate != nil {
		d := *raw.PaidDate
		rec.PaidDate = &d
	}

	switch PaymentMode(raw.PaymentMode) {
	case PaymentSingle:
		rec.PaymentMode = PaymentSingle
		if raw.EffectiveDate != nil {
			d := raw.EffectiveDate.UTC()
			rec.EffectiveDate = &d
		}

	case PaymentInstallment:
		rec.PaymentMode = PaymentInstallment
		if raw.Card != nil {
			c := *raw.Card
			rec.Cycle = &c
		}
		rec.Installments = make([]Installment, 0, len(raw.Installments))
		for _, ri := range raw.Installments {
			amount, err := ParseAmount(ri.Amount)
			if err != nil {
				return nil, fmt.Errorf("installment %d: %w", ri.SequenceNumber, err)
			}
			ins := Installment{
				SequenceNumber: ri.SequenceNumber,
				Amount:         amount,
				DueDate:        ri.DueDate.UTC(),
				Paid:           ri.Paid,
			}
			if ri.PaidDate != nil {
				d := *ri.PaidDate
				ins.PaidDate = &d
			}
			rec.Installments = append(rec.Installments, ins)
		}
		sort.SliceStable(rec.Installments, func(i, j int) bool {
			return rec.Installments[i].DueDate.Before(rec.Installments[j].DueDate)
		})

	default:
		return nil, fmt.Errorf("%w: unknown payment mode %q", ErrValidation, raw.PaymentMode)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}
