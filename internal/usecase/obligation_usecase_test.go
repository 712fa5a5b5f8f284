package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
	"github.com/finwatch/finwatch/internal/usecase"
	"github.com/finwatch/finwatch/internal/usecase/mocks"
)

func TestObligationUseCase_CreatePurchase_Single(t *testing.T) {
	repo := mocks.NewMockObligationRepository()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewObligationUseCase(repo, idGen, nil, nil)

	effective := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	rec, err := uc.CreatePurchase(context.Background(), usecase.CreatePurchaseInput{
		Description:   "Electricity bill",
		CategoryID:    "utilities",
		TotalAmount:   "142.50",
		PaymentMode:   "single",
		EffectiveDate: &effective,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.PaymentMode != domain.PaymentSingle {
		t.Errorf("expected single mode, got %s", rec.PaymentMode)
	}
	if len(rec.Installments) != 0 {
		t.Errorf("single payment must have no installments, got %d", len(rec.Installments))
	}

	stored, err := repo.GetByID(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if !stored.TotalAmount.Equal(decimal.RequireFromString("142.50")) {
		t.Errorf("expected total 142.50, got %s", stored.TotalAmount)
	}
}

func TestObligationUseCase_CreatePurchase_Installment(t *testing.T) {
	repo := mocks.NewMockObligationRepository()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewObligationUseCase(repo, idGen, nil, nil)

	rec, err := uc.CreatePurchase(context.Background(), usecase.CreatePurchaseInput{
		Description:      "Washing machine",
		CategoryID:       "home",
		TotalAmount:      "100.00",
		PaymentMode:      "installment",
		PurchaseDate:     time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		InstallmentCount: 3,
		Cycle:            &domain.BillingCycle{ClosingDay: 10, DueDay: 15},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.Installments) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(rec.Installments))
	}
	// Purchase after the closing day rolls to the next cycle.
	wantFirst := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !rec.Installments[0].DueDate.Equal(wantFirst) {
		t.Errorf("expected first due date %s, got %s", wantFirst, rec.Installments[0].DueDate)
	}

	sum := decimal.Zero
	for _, ins := range rec.Installments {
		sum = sum.Add(ins.Amount)
	}
	if !sum.Equal(rec.TotalAmount) {
		t.Errorf("installments sum %s != total %s", sum, rec.TotalAmount)
	}
}

func TestObligationUseCase_RecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	origRegisterer, origGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	defer func() {
		prometheus.DefaultRegisterer = origRegisterer
		prometheus.DefaultGatherer = origGatherer
	}()
	m := metrics.New()

	repo := mocks.NewMockObligationRepository()
	uc := usecase.NewObligationUseCase(repo, mocks.NewMockIDGenerator(), nil, m)

	rec, err := uc.CreatePurchase(context.Background(), usecase.CreatePurchaseInput{
		Description:      "Washing machine",
		CategoryID:       "home",
		TotalAmount:      "100.00",
		PaymentMode:      "installment",
		PurchaseDate:     time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
		InstallmentCount: 3,
		Cycle:            &domain.BillingCycle{ClosingDay: 10, DueDay: 15},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(m.ObligationsCreated.WithLabelValues("installment")); got != 1 {
		t.Errorf("expected 1 installment obligation counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.InstallmentsScheduled); got != 3 {
		t.Errorf("expected 3 installments counted, got %v", got)
	}

	if _, err := uc.MarkInstallmentPaid(context.Background(), rec.ID, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(m.PaymentsRecorded.WithLabelValues("installment")); got != 1 {
		t.Errorf("expected 1 installment payment counted, got %v", got)
	}
}

func TestObligationUseCase_CreatePurchase_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreatePurchaseInput
		wantErr error
	}{
		{
			name: "non-numeric amount",
			input: usecase.CreatePurchaseInput{
				Description: "x", CategoryID: "food", TotalAmount: "abc", PaymentMode: "single",
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "single without effective date",
			input: usecase.CreatePurchaseInput{
				Description: "x", CategoryID: "food", TotalAmount: "10.00", PaymentMode: "single",
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "installment without cycle",
			input: usecase.CreatePurchaseInput{
				Description: "x", CategoryID: "food", TotalAmount: "10.00", PaymentMode: "installment",
				PurchaseDate: time.Now(), InstallmentCount: 3,
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "installment count below one",
			input: usecase.CreatePurchaseInput{
				Description: "x", CategoryID: "food", TotalAmount: "10.00", PaymentMode: "installment",
				PurchaseDate: time.Now(), InstallmentCount: 0,
				Cycle: &domain.BillingCycle{ClosingDay: 10, DueDay: 15},
			},
			wantErr: domain.ErrScheduling,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockObligationRepository()
			uc := usecase.NewObligationUseCase(repo, mocks.NewMockIDGenerator(), nil, nil)

			_, err := uc.CreatePurchase(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}

			all, _ := repo.ListAll(context.Background())
			if len(all) != 0 {
				t.Errorf("invalid input must not be persisted")
			}
		})
	}
}

func TestObligationUseCase_MarkPaid(t *testing.T) {
	repo := mocks.NewMockObligationRepository()
	idGen := mocks.NewMockIDGenerator()
	cache := mocks.NewMockCache()
	uc := usecase.NewObligationUseCase(repo, idGen, cache, nil)

	effective := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	rec, err := uc.CreatePurchase(context.Background(), usecase.CreatePurchaseInput{
		Description: "Water bill", CategoryID: "utilities", TotalAmount: "60.00",
		PaymentMode: "single", EffectiveDate: &effective,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid, err := uc.MarkPaid(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid.Paid || paid.PaidDate == nil {
		t.Error("expected record marked paid with a paid date")
	}

	if _, err := uc.MarkPaid(context.Background(), rec.ID); !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestObligationUseCase_MarkInstallmentPaid(t *testing.T) {
	repo := mocks.NewMockObligationRepository()
	uc := usecase.NewObligationUseCase(repo, mocks.NewMockIDGenerator(), nil, nil)

	rec, err := uc.CreatePurchase(context.Background(), usecase.CreatePurchaseInput{
		Description: "Phone", CategoryID: "home", TotalAmount: "900.00",
		PaymentMode: "installment",
		PurchaseDate: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		InstallmentCount: 3,
		Cycle:            &domain.BillingCycle{ClosingDay: 10, DueDay: 15},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := uc.MarkInstallmentPaid(context.Background(), rec.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Installments[1].Paid {
		t.Error("expected installment 2 marked paid")
	}
	if updated.Installments[0].Paid || updated.Installments[2].Paid {
		t.Error("other installments must stay pending")
	}

	if _, err := uc.MarkInstallmentPaid(context.Background(), rec.ID, 2); !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Errorf("expected ErrAlreadyPaid, got %v", err)
	}
	if _, err := uc.MarkInstallmentPaid(context.Background(), rec.ID, 9); !errors.Is(err, domain.ErrInstallmentNotFound) {
		t.Errorf("expected ErrInstallmentNotFound, got %v", err)
	}
	if _, err := uc.MarkPaid(context.Background(), rec.ID); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("marking a card purchase paid as a whole must fail, got %v", err)
	}
}
