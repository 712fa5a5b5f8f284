package domain_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwatch/finwatch/internal/domain"
)

func TestEvaluateDueDateAlerts_Window(t *testing.T) {
	today := date(2024, time.June, 10)

	records := []*domain.ObligationRecord{
		single("yesterday", "food", "10.00", date(2024, time.June, 9), false),
		single("today", "food", "20.00", date(2024, time.June, 10), false),
		single("in-window", "food", "30.00", date(2024, time.June, 13), false),
		single("edge-of-window", "food", "40.00", date(2024, time.June, 15), false),
		single("beyond-window", "food", "50.00", date(2024, time.June, 16), false),
		single("paid-in-window", "food", "60.00", date(2024, time.June, 12), true),
	}

	alerts := domain.EvaluateDueDateAlerts(today, records, 5)
	require.Len(t, alerts, 3)

	for _, a := range alerts {
		assert.Equal(t, domain.AlertDueDate, a.Kind)
		assert.Equal(t, domain.SeverityWarning, a.Severity)
	}

	// Headline is the entry closest to its due date.
	assert.True(t, alerts[0].Headline)
	assert.Equal(t, "today", alerts[0].ObligationID)
	assert.False(t, alerts[1].Headline)
	assert.False(t, alerts[2].Headline)
}

func TestEvaluateDueDateAlerts_HeadlineTieBreaksByOrder(t *testing.T) {
	today := date(2024, time.June, 10)
	records := []*domain.ObligationRecord{
		single("first", "food", "10.00", date(2024, time.June, 12), false),
		single("second", "food", "20.00", date(2024, time.June, 12), false),
	}

	alerts := domain.EvaluateDueDateAlerts(today, records, 5)
	require.Len(t, alerts, 2)
	assert.True(t, alerts[0].Headline)
	assert.False(t, alerts[1].Headline)
}

func TestEvaluateBudgetAlerts_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		spend string
		want  domain.AlertKind
		none  bool
	}{
		{name: "below warning threshold", spend: "79.00", none: true},
		{name: "exactly at warning threshold", spend: "80.00", want: domain.AlertBudgetWarning},
		{name: "at the limit", spend: "100.00", want: domain.AlertBudgetWarning},
		{name: "just above the limit", spend: "101.00", want: domain.AlertBudgetExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := &domain.Budget{
				Period:      "2024-06",
				Global:      amount("100.00"),
				PerCategory: map[string]decimal.Decimal{},
			}
			agg := domain.MonthlyAggregate{
				ByCategory: map[string]domain.Totals{},
				GrandTotal: domain.Totals{Paid: amount(tt.spend), Pending: decimal.Zero},
			}

			alerts := domain.EvaluateBudgetAlerts(agg, budget, categories())
			if tt.none {
				assert.Empty(t, alerts)
				return
			}
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.want, alerts[0].Kind)
			assert.True(t, alerts[0].Headline)
		})
	}
}

func TestEvaluateBudgetAlerts_HeadlineRanking(t *testing.T) {
	// Two exceeded categories and one warning: the headline is the
	// exceeded alert with the highest spend/limit ratio, and any
	// exceeded alert outranks every warning.
	budget := &domain.Budget{
		Period: "2024-06",
		Global: amount("10000.00"),
		PerCategory: map[string]decimal.Decimal{
			"food":      amount("100.00"),
			"home":      amount("100.00"),
			"utilities": amount("100.00"),
		},
	}
	agg := domain.MonthlyAggregate{
		ByCategory: map[string]domain.Totals{
			"food":      {Paid: amount("150.00"), Pending: decimal.Zero}, // ratio 1.5
			"home":      {Paid: amount("120.00"), Pending: decimal.Zero}, // ratio 1.2
			"utilities": {Paid: amount("95.00"), Pending: decimal.Zero},  // warning
		},
		GrandTotal: domain.Totals{Paid: amount("365.00"), Pending: decimal.Zero},
	}

	alerts := domain.EvaluateBudgetAlerts(agg, budget, categories())
	require.Len(t, alerts, 3)

	var headline *domain.Alert
	for i := range alerts {
		if alerts[i].Headline {
			require.Nil(t, headline, "only one headline per family")
			headline = &alerts[i]
		}
	}
	require.NotNil(t, headline)
	assert.Equal(t, domain.AlertBudgetExceeded, headline.Kind)
	assert.Equal(t, "food", headline.CategoryID)
}

func TestEvaluateBudgetAlerts_NilBudget(t *testing.T) {
	agg := domain.MonthlyAggregate{
		GrandTotal: domain.Totals{Paid: amount("9999.00"), Pending: decimal.Zero},
	}
	assert.Empty(t, domain.EvaluateBudgetAlerts(agg, nil, categories()))
}

func goal(id string, target, saved string, deadline time.Time, completed bool) *domain.Goal {
	g := &domain.Goal{
		ID:           id,
		Name:         id,
		TargetAmount: amount(target),
		Deadline:     deadline,
		Completed:    completed,
	}
	if saved != "" {
		g.Deposits = []domain.Deposit{{ID: "d-" + id, GoalID: id, Amount: amount(saved), Date: deadline.AddDate(0, -1, 0)}}
	}
	return g
}

func TestEvaluateGoalAlerts(t *testing.T) {
	today := date(2024, time.June, 10)

	goals := []*domain.Goal{
		goal("reached", "100.00", "100.00", date(2024, time.December, 1), false),
		goal("already-flagged", "100.00", "150.00", date(2024, time.December, 1), true),
		goal("deadline-close", "500.00", "200.00", date(2024, time.June, 15), false),
		goal("deadline-far", "500.00", "200.00", date(2024, time.June, 30), false),
		goal("deadline-past", "500.00", "200.00", date(2024, time.June, 9), false),
	}

	alerts := domain.EvaluateGoalAlerts(today, goals)
	require.Len(t, alerts, 2)

	assert.Equal(t, domain.AlertGoalCompleted, alerts[0].Kind)
	assert.Equal(t, "reached", alerts[0].GoalID)
	assert.True(t, alerts[0].Headline, "completion outranks deadline alerts")

	assert.Equal(t, domain.AlertGoalDeadline, alerts[1].Kind)
	assert.Equal(t, "deadline-close", alerts[1].GoalID)
}

func TestEvaluateGoalAlerts_CompletedFlagSuppressesReEmission(t *testing.T) {
	today := date(2024, time.June, 10)
	g := goal("trip", "100.00", "120.00", date(2024, time.December, 1), false)

	first := domain.EvaluateGoalAlerts(today, []*domain.Goal{g})
	require.Len(t, first, 1)
	require.Equal(t, domain.AlertGoalCompleted, first[0].Kind)

	// Once the caller persists the flag, re-evaluation stays silent.
	g.Completed = true
	assert.Empty(t, domain.EvaluateGoalAlerts(today, []*domain.Goal{g}))
}

func TestEvaluateAlerts_Idempotent(t *testing.T) {
	today := date(2024, time.June, 10)
	snap := &domain.Snapshot{
		Obligations: []*domain.ObligationRecord{
			single("rent", "home", "1200.00", date(2024, time.June, 12), false),
			single("market", "food", "90.00", date(2024, time.June, 14), false),
		},
		Budget: &domain.Budget{
			Period:          "2024-06",
			Global:          amount("1000.00"),
			PerCategory:     map[string]decimal.Decimal{"food": amount("100.00")},
			AlertWindowDays: 5,
		},
		Categories: categories(),
		Goals: []*domain.Goal{
			goal("trip", "500.00", "200.00", date(2024, time.June, 15), false),
		},
	}

	agg := domain.AggregateMonth(snap, 2024, time.June)

	first := domain.EvaluateAlerts(today, snap, agg)
	second := domain.EvaluateAlerts(today, snap, agg)

	require.NotEmpty(t, first)
	assert.True(t, reflect.DeepEqual(first, second), "re-evaluating an unchanged snapshot must yield the identical alert set")
}

func TestEvaluateAlerts_MissingConfigurationYieldsNoAlerts(t *testing.T) {
	today := date(2024, time.June, 10)
	snap := &domain.Snapshot{
		Obligations: []*domain.ObligationRecord{
			single("rent", "home", "1200.00", date(2024, time.June, 12), false),
		},
		Categories: categories(),
	}

	agg := domain.AggregateMonth(snap, 2024, time.June)
	assert.Empty(t, domain.EvaluateAlerts(today, snap, agg))
}
