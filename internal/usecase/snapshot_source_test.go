package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/usecase"
	"github.com/finwatch/finwatch/internal/usecase/mocks"
)

func TestCompositeSnapshotSource_Fetch(t *testing.T) {
	obligations := mocks.NewMockObligationRepository()
	budgets := mocks.NewMockBudgetRepository()
	goals := mocks.NewMockGoalRepository()
	categories := mocks.NewMockCategoryRepository()
	ctx := context.Background()

	_ = obligations.Create(ctx, paidSingle("o1", "food", "10.00", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))
	_ = budgets.Upsert(ctx, &domain.Budget{
		Period:          "2024-06",
		Global:          decimal.RequireFromString("100.00"),
		AlertWindowDays: 3,
	})
	categories.Categories = domain.CategoryMap{"food": {ID: "food", Name: "Food"}}

	source := usecase.NewCompositeSnapshotSource(obligations, budgets, goals, categories)

	snap, err := source.Fetch(ctx, "2024-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Partial {
		t.Error("expected complete snapshot")
	}
	if len(snap.Obligations) != 1 || snap.Budget == nil || len(snap.Categories) != 1 {
		t.Error("expected all sections populated")
	}
}

func TestCompositeSnapshotSource_MissingBudgetIsNotPartial(t *testing.T) {
	source := usecase.NewCompositeSnapshotSource(
		mocks.NewMockObligationRepository(),
		mocks.NewMockBudgetRepository(),
		mocks.NewMockGoalRepository(),
		mocks.NewMockCategoryRepository(),
	)

	snap, err := source.Fetch(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Partial {
		t.Error("an unconfigured budget is not a degraded snapshot")
	}
	if snap.Budget != nil {
		t.Error("expected nil budget")
	}
}

func TestCompositeSnapshotSource_DegradesOnFailure(t *testing.T) {
	obligations := mocks.NewMockObligationRepository()
	goals := mocks.NewMockGoalRepository()
	goals.ListFunc = func(ctx context.Context) ([]*domain.Goal, error) {
		return nil, errors.New("timeout")
	}

	ctx := context.Background()
	_ = obligations.Create(ctx, paidSingle("o1", "food", "10.00", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)))

	source := usecase.NewCompositeSnapshotSource(
		obligations,
		mocks.NewMockBudgetRepository(),
		goals,
		mocks.NewMockCategoryRepository(),
	)

	snap, err := source.Fetch(ctx, "2024-06")
	if !errors.Is(err, domain.ErrPartialData) {
		t.Fatalf("expected ErrPartialData, got %v", err)
	}
	if snap == nil || !snap.Partial {
		t.Fatal("expected the partial snapshot alongside the error")
	}
	if len(snap.Obligations) != 1 {
		t.Error("available sections must still be populated")
	}
}

func TestCompositeSnapshotSource_InvalidPeriod(t *testing.T) {
	source := usecase.NewCompositeSnapshotSource(
		mocks.NewMockObligationRepository(),
		mocks.NewMockBudgetRepository(),
		mocks.NewMockGoalRepository(),
		mocks.NewMockCategoryRepository(),
	)

	if _, err := source.Fetch(context.Background(), "2024/06"); !errors.Is(err, domain.ErrInvalidPeriodKey) {
		t.Errorf("expected ErrInvalidPeriodKey, got %v", err)
	}
}
