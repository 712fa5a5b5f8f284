package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// aggregateCacheTTL bounds staleness for cached monthly aggregates.
// Writes invalidate affected periods eagerly; the TTL is the backstop.
const aggregateCacheTTL = 10 * time.Minute

func aggregateCacheKey(period string) string {
	return "aggregate:" + period
}

// ReportUseCase produces monthly aggregates for UI and reporting
// consumers, caching complete results.
type ReportUseCase struct {
	snapshots SnapshotSource
	cache     Cache
	metrics   *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase. cache and m may be nil.
func NewReportUseCase(snapshots SnapshotSource, cache Cache, m *metrics.Metrics) *ReportUseCase {
	return &ReportUseCase{
		snapshots: snapshots,
		cache:     cache,
		metrics:   m,
	}
}

// MonthlyReport aggregates one calendar month. A partial snapshot does
// not abort the report: the aggregate is computed from the available
// data and flagged incomplete. Incomplete aggregates are never cached.
func (uc *ReportUseCase) MonthlyReport(ctx context.Context, year int, month time.Month) (*domain.MonthlyAggregate, error) {
	period := fmt.Sprintf("%04d-%02d", year, int(month))
	if err := domain.ValidatePeriodKey(period); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, aggregateCacheKey(period)); err == nil {
			var agg domain.MonthlyAggregate
			if err := json.Unmarshal(data, &agg); err == nil {
				if uc.metrics != nil {
					uc.metrics.ReportCacheHits.Inc()
				}
				return &agg, nil
			}
		}
		if uc.metrics != nil {
			uc.metrics.ReportCacheMisses.Inc()
		}
	}

	snap, err := uc.snapshots.Fetch(ctx, period)
	if err != nil && !errors.Is(err, domain.ErrPartialData) {
		return nil, err
	}

	agg := domain.AggregateMonth(snap, year, month)

	if uc.metrics != nil {
		uc.metrics.ReportsGenerated.Inc()
		if agg.Incomplete {
			uc.metrics.PartialSnapshots.Inc()
		}
	}

	if uc.cache != nil && !agg.Incomplete {
		if data, err := json.Marshal(agg); err == nil {
			_ = uc.cache.Set(ctx, aggregateCacheKey(period), data, aggregateCacheTTL)
		}
	}

	return &agg, nil
}
