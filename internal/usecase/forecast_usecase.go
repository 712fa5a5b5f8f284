package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// defaultHistoryMonths is how many trailing complete months feed the
// regression when the caller does not say otherwise.
const defaultHistoryMonths = 6

// ForecastUseCase projects near-future spending from historical monthly
// totals.
type ForecastUseCase struct {
	obligationRepo ObligationRepository
	categoryRepo   CategoryRepository
	metrics        *metrics.Metrics
}

// NewForecastUseCase creates a new ForecastUseCase. m may be nil.
func NewForecastUseCase(obligationRepo ObligationRepository, categoryRepo CategoryRepository, m *metrics.Metrics) *ForecastUseCase {
	return &ForecastUseCase{
		obligationRepo: obligationRepo,
		categoryRepo:   categoryRepo,
		metrics:        m,
	}
}

// SpendingForecast fits a trend over the trailing complete months and
// projects the next three. The current, still-running month is excluded
// from the history; months without any entries count as zero so the
// series stays continuous. Too little history surfaces as
// domain.ErrInsufficientData, never as NaN.
func (uc *ForecastUseCase) SpendingForecast(ctx context.Context, historyMonths int) (*domain.Forecast, error) {
	return uc.SpendingForecastAt(ctx, time.Now().UTC(), historyMonths)
}

// SpendingForecastAt is SpendingForecast with an explicit reference day.
func (uc *ForecastUseCase) SpendingForecastAt(ctx context.Context, now time.Time, historyMonths int) (*domain.Forecast, error) {
	if historyMonths <= 0 {
		historyMonths = defaultHistoryMonths
	}

	records, err := uc.obligationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		categories = domain.CategoryMap{}
	}

	// Oldest first, ending with the last complete month.
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	history := make([]decimal.Decimal, 0, historyMonths)
	for i := historyMonths; i >= 1; i-- {
		m := currentMonth.AddDate(0, -i, 0)
		agg := domain.AggregateMonth(&domain.Snapshot{
			Obligations: records,
			Categories:  categories,
		}, m.Year(), m.Month())
		history = append(history, agg.GrandTotal.Spend())
	}

	forecast, err := domain.FitTrend(history)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ForecastsComputed.WithLabelValues(string(forecast.Trend)).Inc()
	}

	return forecast, nil
}
