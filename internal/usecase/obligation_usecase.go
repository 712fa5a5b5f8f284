package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// ObligationUseCase handles obligation lifecycle: creation (with
// installment scheduling for card purchases) and payment marking. A
// record is never restructured after creation; only paid flags change.
type ObligationUseCase struct {
	obligationRepo ObligationRepository
	idGen          IDGenerator
	cache          Cache
	metrics        *metrics.Metrics
}

// NewObligationUseCase creates a new ObligationUseCase. cache and m may
// be nil.
func NewObligationUseCase(obligationRepo ObligationRepository, idGen IDGenerator, cache Cache, m *metrics.Metrics) *ObligationUseCase {
	return &ObligationUseCase{
		obligationRepo: obligationRepo,
		idGen:          idGen,
		cache:          cache,
		metrics:        m,
	}
}

// CreatePurchaseInput represents input for entering a purchase.
type CreatePurchaseInput struct {
	Description string
	CategoryID  string
	TotalAmount string
	PaymentMode string

	// Single only.
	EffectiveDate *time.Time

	// Installment only.
	PurchaseDate     time.Time
	InstallmentCount int
	Cycle            *domain.BillingCycle
}

// CreatePurchase enters a purchase. A single payment is stored with its
// effective date; a card purchase is run through the installment
// scheduler first and stored with its full installment plan.
func (uc *ObligationUseCase) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*domain.ObligationRecord, error) {
	total, err := domain.ParseAmount(input.TotalAmount)
	if err != nil {
		return nil, err
	}

	rec := &domain.ObligationRecord{
		ID:          uc.idGen.Generate(),
		Description: input.Description,
		CategoryID:  input.CategoryID,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}

	switch domain.PaymentMode(input.PaymentMode) {
	case domain.PaymentSingle:
		rec.PaymentMode = domain.PaymentSingle
		if input.EffectiveDate != nil {
			d := input.EffectiveDate.UTC()
			rec.EffectiveDate = &d
		}

	case domain.PaymentInstallment:
		rec.PaymentMode = domain.PaymentInstallment
		if input.Cycle == nil {
			return nil, fmt.Errorf("%w: installment payment requires a billing cycle", domain.ErrValidation)
		}
		cycle := *input.Cycle
		rec.Cycle = &cycle

		installments, err := domain.BuildInstallmentPlan(input.PurchaseDate, total, input.InstallmentCount, cycle)
		if err != nil {
			if uc.metrics != nil {
				uc.metrics.SchedulingErrors.Inc()
			}
			return nil, err
		}
		rec.Installments = installments

	default:
		return nil, fmt.Errorf("%w: unknown payment mode %q", domain.ErrValidation, input.PaymentMode)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := uc.obligationRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObligationsCreated.WithLabelValues(string(rec.PaymentMode)).Inc()
		uc.metrics.ObligationAmount.Observe(total.InexactFloat64())
		uc.metrics.InstallmentsScheduled.Add(float64(len(rec.Installments)))
	}

	uc.invalidateAggregates(ctx, rec)

	return rec, nil
}

// GetObligation retrieves an obligation by ID.
func (uc *ObligationUseCase) GetObligation(ctx context.Context, id string) (*domain.ObligationRecord, error) {
	return uc.obligationRepo.GetByID(ctx, id)
}

// ListObligationsInput represents input for listing obligations.
type ListObligationsInput struct {
	Limit  int
	Offset int
}

// ListObligations lists obligations with pagination.
func (uc *ObligationUseCase) ListObligations(ctx context.Context, input ListObligationsInput) ([]*domain.ObligationRecord, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.obligationRepo.List(ctx, input.Limit, input.Offset)
}

// MarkPaid marks a single-payment obligation paid.
func (uc *ObligationUseCase) MarkPaid(ctx context.Context, id string) (*domain.ObligationRecord, error) {
	rec, err := uc.obligationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.PaymentMode != domain.PaymentSingle {
		return nil, fmt.Errorf("%w: installment obligations are paid per installment", domain.ErrValidation)
	}
	if rec.Paid {
		return nil, domain.ErrAlreadyPaid
	}

	now := time.Now().UTC()
	if err := uc.obligationRepo.MarkPaid(ctx, id, now); err != nil {
		return nil, err
	}

	rec.Paid = true
	rec.PaidDate = &now
	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.WithLabelValues("obligation").Inc()
	}
	uc.invalidateAggregates(ctx, rec)

	return rec, nil
}

// MarkInstallmentPaid marks one installment of a card purchase paid.
func (uc *ObligationUseCase) MarkInstallmentPaid(ctx context.Context, id string, sequenceNumber int) (*domain.ObligationRecord, error) {
	rec, err := uc.obligationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.PaymentMode != domain.PaymentInstallment {
		return nil, fmt.Errorf("%w: single obligations have no installments", domain.ErrValidation)
	}

	found := false
	for i := range rec.Installments {
		if rec.Installments[i].SequenceNumber != sequenceNumber {
			continue
		}
		if rec.Installments[i].Paid {
			return nil, domain.ErrAlreadyPaid
		}
		now := time.Now().UTC()
		if err := uc.obligationRepo.MarkInstallmentPaid(ctx, id, sequenceNumber, now); err != nil {
			return nil, err
		}
		rec.Installments[i].Paid = true
		rec.Installments[i].PaidDate = &now
		found = true
		break
	}
	if !found {
		return nil, domain.ErrInstallmentNotFound
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsRecorded.WithLabelValues("installment").Inc()
	}
	uc.invalidateAggregates(ctx, rec)

	return rec, nil
}

// invalidateAggregates drops cached monthly aggregates for every period
// the record contributes to. Cache misses after a write are cheaper than
// stale totals.
func (uc *ObligationUseCase) invalidateAggregates(ctx context.Context, rec *domain.ObligationRecord) {
	if uc.cache == nil {
		return
	}
	seen := make(map[string]bool)
	for _, entry := range rec.Entries() {
		key := aggregateCacheKey(domain.PeriodKey(entry.DueDate))
		if seen[key] {
			continue
		}
		seen[key] = true
		_ = uc.cache.Delete(ctx, key)
	}
}
