package advisor

import (
	"fmt"

	"github.com/Dan9191/finance-advisor/internal/models"
)

const (
	highRiskThreshold   = 0.6
	delayedGoalProgress = 0.8
)

// RaiseAlerts emits the qualitative warnings for a run. Alerts are not
// mutually exclusive.
func RaiseAlerts(proj Projection, plan BufferPlan, results []models.GoalResult) []models.Alert {
	alerts := []models.Alert{}
	if proj.ProjectedBalance < 0 {
		alerts = append(alerts, models.Alert{
			Type:   models.AlertNegativeLiquidity,
			Detail: "Projected balance is negative. Reduce spending or defer goals.",
		})
	}
	if plan.LiquidityRisk > highRiskThreshold {
		alerts = append(alerts, models.Alert{
			Type:   models.AlertHighRisk,
			Detail: "Expense volatility is high relative to income.",
		})
	}
	for _, r := range results {
		if !goalDelayed(r) {
			continue
		}
		id := r.ID
		alerts = append(alerts, models.Alert{
			Type:   models.AlertDelayedGoal,
			Detail: fmt.Sprintf("Goal '%s' is behind schedule.", r.Name),
			GoalID: &id,
		})
	}
	return alerts
}

// goalDelayed reports whether the funded progress of a goal trails its
// schedule while the goal is in the back half of its timeline.
func goalDelayed(r models.GoalResult) bool {
	if r.RequiredInstallment <= 0 || r.AmountRemaining <= 0 || r.MonthsRemaining <= 0 {
		return false
	}
	funded := r.SuggestedAllocation * float64(r.MonthsRemaining)
	progress := 1 - r.AmountRemaining/(r.AmountRemaining+funded)
	return progress < delayedGoalProgress && r.MonthsRemaining <= max(1, r.MonthsRemaining/2)
}
