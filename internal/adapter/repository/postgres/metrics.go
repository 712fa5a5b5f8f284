package postgres

import (
	"errors"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// observe records one repository call. Not-found results count as
// lookups, not failures.
func observe(m *metrics.Metrics, op, table string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.DBQueries.WithLabelValues(op, table).Inc()
	m.DBDuration.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
	if err != nil && !isNotFound(err) {
		m.DBErrors.WithLabelValues(op).Inc()
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrObligationNotFound) ||
		errors.Is(err, domain.ErrInstallmentNotFound) ||
		errors.Is(err, domain.ErrBudgetNotFound) ||
		errors.Is(err, domain.ErrGoalNotFound)
}
