package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwatch/finwatch/internal/domain"
)

func rawSingle() domain.RawObligation {
	effective := date(2024, time.May, 10)
	return domain.RawObligation{
		ID:            "ob-1",
		Description:   "Electricity bill",
		Category:      "utilities",
		TotalAmount:   "142.50",
		PaymentMode:   "single",
		EffectiveDate: &effective,
	}
}

func rawInstallment() domain.RawObligation {
	return domain.RawObligation{
		ID:          "ob-2",
		Description: "Washing machine",
		Category:    "home",
		TotalAmount: "100.00",
		PaymentMode: "installment",
		Card:        &domain.BillingCycle{ClosingDay: 10, DueDay: 15},
		Installments: []domain.RawInstallment{
			{SequenceNumber: 1, Amount: "33.33", DueDate: date(2024, time.June, 15)},
			{SequenceNumber: 2, Amount: "33.33", DueDate: date(2024, time.July, 15)},
			{SequenceNumber: 3, Amount: "33.34", DueDate: date(2024, time.August, 15)},
		},
	}
}

func TestNormalizeObligation_Single(t *testing.T) {
	rec, err := domain.NormalizeObligation(rawSingle())
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentSingle, rec.PaymentMode)
	assert.True(t, rec.TotalAmount.Equal(amount("142.50")))
	assert.Nil(t, rec.Cycle)
	assert.Empty(t, rec.Installments)

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, date(2024, time.May, 10), entries[0].DueDate)
	assert.True(t, entries[0].Pending())
}

func TestNormalizeObligation_Installment(t *testing.T) {
	rec, err := domain.NormalizeObligation(rawInstallment())
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentInstallment, rec.PaymentMode)
	require.Len(t, rec.Installments, 3)
	assert.Nil(t, rec.EffectiveDate)

	// Entries are keyed per installment by its own due date.
	entries := rec.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, date(2024, time.June, 15), entries[0].DueDate)
	assert.Equal(t, 3, entries[2].SequenceNumber)
}

func TestNormalizeObligation_SortsInstallmentsByDueDate(t *testing.T) {
	raw := rawInstallment()
	raw.Installments[0], raw.Installments[2] = raw.Installments[2], raw.Installments[0]

	rec, err := domain.NormalizeObligation(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Installments[0].SequenceNumber)
	assert.Equal(t, date(2024, time.June, 15), rec.Installments[0].DueDate)
}

func TestNormalizeObligation_DoesNotMutateInput(t *testing.T) {
	raw := rawInstallment()
	original := raw.Installments[0]

	rec, err := domain.NormalizeObligation(raw)
	require.NoError(t, err)

	rec.Installments[0].Paid = true
	rec.Installments[0].SequenceNumber = 99
	assert.Equal(t, original, raw.Installments[0])
}

func TestNormalizeObligation_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RawObligation)
	}{
		{"non-numeric amount", func(r *domain.RawObligation) { r.TotalAmount = "abc" }},
		{"zero amount", func(r *domain.RawObligation) { r.TotalAmount = "0" }},
		{"negative amount", func(r *domain.RawObligation) { r.TotalAmount = "-5.00" }},
		{"missing category", func(r *domain.RawObligation) { r.Category = "" }},
		{"unknown payment mode", func(r *domain.RawObligation) { r.PaymentMode = "weekly" }},
		{"single without effective date", func(r *domain.RawObligation) {
			r.PaymentMode = "single"
			r.EffectiveDate = nil
			r.Card = nil
			r.Installments = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawSingle()
			tt.mutate(&raw)
			_, err := domain.NormalizeObligation(raw)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNormalizeObligation_InstallmentErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RawObligation)
	}{
		{"missing billing cycle", func(r *domain.RawObligation) { r.Card = nil }},
		{"no installments", func(r *domain.RawObligation) { r.Installments = nil }},
		{"duplicate sequence numbers", func(r *domain.RawObligation) {
			r.Installments[1].SequenceNumber = 1
		}},
		{"sum does not match total", func(r *domain.RawObligation) {
			r.Installments[2].Amount = "33.33"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawInstallment()
			tt.mutate(&raw)
			_, err := domain.NormalizeObligation(raw)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "10", want: "10"},
		{raw: " 99.90 ", want: "99.90"},
		{raw: "0.01", want: "0.01"},
		{raw: "", wantErr: true},
		{raw: "ten", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "1.001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParseAmount(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(amount(tt.want)))
		})
	}
}
