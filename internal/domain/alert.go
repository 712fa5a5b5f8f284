package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AlertKind discriminates the alert union.
type AlertKind string

const (
	AlertDueDate        AlertKind = "due_date"
	AlertBudgetExceeded AlertKind = "budget_exceeded"
	AlertBudgetWarning  AlertKind = "budget_warning"
	AlertGoalDeadline   AlertKind = "goal_deadline"
	AlertGoalCompleted  AlertKind = "goal_completed"
)

// Severity of an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a derived notification. Alerts are values computed from a
// snapshot, not state: evaluating the same snapshot twice yields the
// same alerts in the same order. Exactly one alert per family carries
// the headline flag.
type Alert struct {
	Kind     AlertKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`

	ObligationID string `json:"obligationId,omitempty"`
	CategoryID   string `json:"categoryId,omitempty"`
	GoalID       string `json:"goalId,omitempty"`

	DueDate  *time.Time `json:"dueDate,omitempty"`
	Headline bool       `json:"headline"`
}

// warnThreshold is the fraction of a budget limit at which a warning fires.
var warnThreshold = decimal.NewFromFloat(0.8)

// EvaluateDueDateAlerts reports every pending entry falling due within
// windowDays of today (today itself included). The entry closest to its
// due date is the headline, ties broken by input order.
func EvaluateDueDateAlerts(today time.Time, records []*ObligationRecord, windowDays int) []Alert {
	var alerts []Alert
	headline := -1
	headlineDays := 0

	for _, rec := range records {
		for _, entry := range rec.Entries() {
			if !entry.Pending() {
				continue
			}
			days := daysUntil(today, entry.DueDate)
			if days < 0 || days > windowDays {
				continue
			}

			due := dateOnly(entry.DueDate)
			alerts = append(alerts, Alert{
				Kind:         AlertDueDate,
				Severity:     SeverityWarning,
				Message:      dueDateMessage(entry, days),
				ObligationID: entry.ObligationID,
				CategoryID:   entry.CategoryID,
				DueDate:      &due,
			})
			if headline < 0 || days < headlineDays {
				headline = len(alerts) - 1
				headlineDays = days
			}
		}
	}

	if headline >= 0 {
		alerts[headline].Headline = true
	}
	return alerts
}

func dueDateMessage(entry Entry, days int) string {
	label := entry.Description
	if entry.SequenceNumber > 0 {
		label = fmt.Sprintf("%s (installment %d)", entry.Description, entry.SequenceNumber)
	}
	switch days {
	case 0:
		return fmt.Sprintf("%s is due today (%s)", label, entry.Amount.StringFixed(2))
	case 1:
		return fmt.Sprintf("%s is due tomorrow (%s)", label, entry.Amount.StringFixed(2))
	default:
		return fmt.Sprintf("%s is due in %d days (%s)", label, days, entry.Amount.StringFixed(2))
	}
}

// EvaluateBudgetAlerts checks the period aggregate against the budget,
// per category and globally. Spend above the limit is an exceeded alert;
// spend between 80% of the limit and the limit is a warning. The
// headline is the exceeded alert with the highest spend/limit ratio, or
// failing any exceeded alert the warning with the highest ratio. A nil
// budget yields no alerts.
func EvaluateBudgetAlerts(agg MonthlyAggregate, budget *Budget, categories CategoryMap) []Alert {
	if budget == nil {
		return nil
	}

	var alerts []Alert
	headline := -1
	var headlineRatio decimal.Decimal

	consider := func(a Alert, exceeded bool, ratio decimal.Decimal) {
		alerts = append(alerts, a)
		idx := len(alerts) - 1
		if headline < 0 {
			headline = idx
			headlineRatio = ratio
			return
		}
		current := alerts[headline].Kind == AlertBudgetExceeded
		if exceeded != current {
			if exceeded {
				headline = idx
				headlineRatio = ratio
			}
			return
		}
		if ratio.GreaterThan(headlineRatio) {
			headline = idx
			headlineRatio = ratio
		}
	}

	check := func(name, categoryID string, spend, limit decimal.Decimal) {
		if limit.LessThanOrEqual(decimal.Zero) {
			return
		}
		ratio := spend.Div(limit)
		switch {
		case spend.GreaterThan(limit):
			consider(Alert{
				Kind:       AlertBudgetExceeded,
				Severity:   SeverityCritical,
				Message:    fmt.Sprintf("%s budget exceeded: %s of %s spent", name, spend.StringFixed(2), limit.StringFixed(2)),
				CategoryID: categoryID,
			}, true, ratio)
		case spend.GreaterThanOrEqual(limit.Mul(warnThreshold)):
			consider(Alert{
				Kind:       AlertBudgetWarning,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("%s budget almost used: %s of %s spent", name, spend.StringFixed(2), limit.StringFixed(2)),
				CategoryID: categoryID,
			}, false, ratio)
		}
	}

	check("Overall", "", agg.GrandTotal.Spend(), budget.Global)

	ids := make([]string, 0, len(budget.PerCategory))
	for id := range budget.PerCategory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		totals, ok := agg.ByCategory[id]
		if !ok {
			continue
		}
		check(categories.Name(id), id, totals.Spend(), budget.PerCategory[id])
	}

	if headline >= 0 {
		alerts[headline].Headline = true
	}
	return alerts
}

// goalDeadlineWindowDays is how close a deadline has to be before a
// pending goal is flagged.
const goalDeadlineWindowDays = 7

// EvaluateGoalAlerts reports completion and approaching deadlines. A
// goal whose deposits reach the target produces one completion alert;
// once its Completed flag is set, re-evaluation recognizes the flag and
// never re-emits. Deadline alerts fire only for goals that are neither
// flagged complete nor at target. The headline is the first completion
// alert, or failing one the deadline alert closest to its deadline.
func EvaluateGoalAlerts(today time.Time, goals []*Goal) []Alert {
	var alerts []Alert
	headline := -1
	headlineDays := 0

	for _, g := range goals {
		if g.Completed {
			continue
		}

		if g.ReachedTarget() {
			alerts = append(alerts, Alert{
				Kind:     AlertGoalCompleted,
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("Goal %q reached its target of %s", g.Name, g.TargetAmount.StringFixed(2)),
				GoalID:   g.ID,
			})
			if headline < 0 || alerts[headline].Kind != AlertGoalCompleted {
				headline = len(alerts) - 1
			}
			continue
		}

		days := daysUntil(today, g.Deadline)
		if days < 0 || days > goalDeadlineWindowDays {
			continue
		}
		deadline := dateOnly(g.Deadline)
		alerts = append(alerts, Alert{
			Kind:     AlertGoalDeadline,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Goal %q deadline in %d days, %s of %s saved", g.Name, days, g.CurrentAmount().StringFixed(2), g.TargetAmount.StringFixed(2)),
			GoalID:   g.ID,
			DueDate:  &deadline,
		})
		if headline < 0 || (alerts[headline].Kind == AlertGoalDeadline && days < headlineDays) {
			headline = len(alerts) - 1
			headlineDays = days
		}
	}

	if headline >= 0 {
		alerts[headline].Headline = true
	}
	return alerts
}

// EvaluateAlerts runs all three alert families over one snapshot and its
// current-period aggregate. Missing budget configuration or an empty
// goal list silently yields zero alerts for that family.
func EvaluateAlerts(today time.Time, snap *Snapshot, agg MonthlyAggregate) []Alert {
	var alerts []Alert

	if snap.Budget != nil {
		alerts = append(alerts, EvaluateDueDateAlerts(today, snap.Obligations, snap.Budget.AlertWindowDays)...)
		alerts = append(alerts, EvaluateBudgetAlerts(agg, snap.Budget, snap.Categories)...)
	}
	alerts = append(alerts, EvaluateGoalAlerts(today, snap.Goals)...)

	return alerts
}

// daysUntil is the whole calendar days from today to d.
func daysUntil(today, d time.Time) int {
	return int(dateOnly(d).Sub(dateOnly(today)).Hours() / 24)
}
