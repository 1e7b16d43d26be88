package advisor

import (
	"math"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

// Score weights
const (
	urgencyWeight  = 0.5
	effortWeight   = 0.3
	priorityWeight = 0.2
)

// MonthsBetween counts whole calendar months from a to b, floored at 0.
// Days within the month are ignored.
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}

// effortBase is the income figure goal amounts are measured against
func effortBase(proj Projection) float64 {
	base := proj.MeanIncome
	if base <= 0 {
		base = proj.ProjectedIncome
	}
	return math.Max(base, 1)
}

// ScoreGoals computes remaining amount, months left, priority score and the
// installment each goal needs. SuggestedAllocation is left at zero.
func ScoreGoals(goals []models.Goal, referenceDate time.Time, proj Projection) []models.GoalResult {
	if len(goals) == 0 {
		return []models.GoalResult{}
	}

	base := effortBase(proj)
	results := make([]models.GoalResult, len(goals))
	efforts := make([]float64, len(goals))
	for i, g := range goals {
		remaining := math.Max(g.TargetAmount-g.CurrentSavings, 0)
		months := MonthsBetween(referenceDate, g.Deadline)

		var installment float64
		if remaining > 0 {
			installment = remaining / float64(max(months, 1))
		}

		results[i] = models.GoalResult{
			ID:                  g.ID,
			Name:                g.Name,
			AmountRemaining:     remaining,
			MonthsRemaining:     months,
			RequiredInstallment: installment,
		}
		efforts[i] = remaining / base
	}

	p50 := percentile(efforts, 50)
	p90 := percentile(efforts, 90)
	for i, g := range goals {
		urgency := 1 / float64(results[i].MonthsRemaining+1)
		priority := clamp(float64(g.Priority-1)/4, 0, 1)
		score := urgencyWeight*urgency +
			effortWeight*normalize(efforts[i], p50, p90) +
			priorityWeight*priority
		results[i].PriorityScore = clamp(score, 0, 1)
	}
	return results
}

// Capital is the surplus available for goals in the next period
type Capital struct {
	Total       float64 // projected balance minus safety buffer
	AfterBuffer float64 // Total minus the emergency fund installment
}

// AvailableCapital computes the surplus left for goals
func AvailableCapital(proj Projection, plan BufferPlan) Capital {
	total := math.Max(proj.ProjectedBalance-plan.SafetyBuffer, 0)
	return Capital{
		Total:       total,
		AfterBuffer: math.Max(total-plan.SuggestedInstallment, 0),
	}
}

// Allocate splits capital across goals by softmax of their scores, capping
// each share at the goal's required installment. Capital freed by the cap is
// not handed to other goals.
func Allocate(results []models.GoalResult, capital float64, lambda float64) {
	if len(results) == 0 {
		return
	}
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.PriorityScore
	}
	for i, w := range softmax(scores, lambda) {
		results[i].SuggestedAllocation = math.Min(capital*w, results[i].RequiredInstallment)
	}
}
