package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Obligation metrics
	ObligationsCreated    *prometheus.CounterVec
	ObligationAmount      prometheus.Histogram
	InstallmentsScheduled prometheus.Counter
	PaymentsRecorded      *prometheus.CounterVec
	SchedulingErrors      prometheus.Counter

	// Budget and goal metrics
	BudgetsUpserted  prometheus.Counter
	GoalsCreated     prometheus.Counter
	GoalsCompleted   prometheus.Counter
	DepositsRecorded prometheus.Counter

	// Reporting metrics
	ReportsGenerated  prometheus.Counter
	ReportCacheHits   prometheus.Counter
	ReportCacheMisses prometheus.Counter
	PartialSnapshots  prometheus.Counter
	ForecastsComputed *prometheus.CounterVec

	// Alert metrics
	AlertsEmitted prometheus.Counter
	AlertsByKind  *prometheus.CounterVec
	SweepRuns     prometheus.Counter
	SweepErrors   prometheus.Counter
	SweepDuration prometheus.Histogram

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Obligation metrics
		ObligationsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_obligations_created_total",
				Help: "Total number of obligations created by payment mode",
			},
			[]string{"payment_mode"},
		),
		ObligationAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finwatch_obligation_amount",
			Help:    "Total amounts of created obligations",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
		}),
		InstallmentsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_installments_scheduled_total",
			Help: "Total number of installments scheduled",
		}),
		PaymentsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_payments_recorded_total",
				Help: "Total payments recorded by kind (obligation or installment)",
			},
			[]string{"kind"},
		),
		SchedulingErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_scheduling_errors_total",
			Help: "Total number of rejected installment schedules",
		}),

		// Budget and goal metrics
		BudgetsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_budgets_upserted_total",
			Help: "Total number of budget upserts",
		}),
		GoalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_goals_created_total",
			Help: "Total number of goals created",
		}),
		GoalsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_goals_completed_total",
			Help: "Total number of goals that reached their target",
		}),
		DepositsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_deposits_recorded_total",
			Help: "Total number of goal deposits recorded",
		}),

		// Reporting metrics
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_reports_generated_total",
			Help: "Total number of monthly reports generated",
		}),
		ReportCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_report_cache_hits_total",
			Help: "Total monthly report cache hits",
		}),
		ReportCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_report_cache_misses_total",
			Help: "Total monthly report cache misses",
		}),
		PartialSnapshots: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_partial_snapshots_total",
			Help: "Total snapshots served with missing sections",
		}),
		ForecastsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_forecasts_computed_total",
				Help: "Total forecasts computed by trend direction",
			},
			[]string{"trend"},
		),

		// Alert metrics
		AlertsEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_alerts_emitted_total",
			Help: "Total number of alerts emitted",
		}),
		AlertsByKind: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_alerts_by_kind_total",
				Help: "Total alerts emitted by kind",
			},
			[]string{"kind"},
		),
		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_alert_sweeps_total",
			Help: "Total number of background alert sweeps",
		}),
		SweepErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "finwatch_alert_sweep_errors_total",
			Help: "Total number of failed alert sweeps",
		}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "finwatch_alert_sweep_duration_seconds",
			Help:    "Duration of background alert sweeps",
			Buckets: prometheus.DefBuckets,
		}),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finwatch_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "finwatch_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finwatch_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
