package advisor

import (
	"math"

	"github.com/Dan9191/finance-advisor/internal/models"
)

// bufferCatchUpMonths spreads an emergency fund shortfall over this many periods.
const bufferCatchUpMonths = 6

// BufferPlan holds the risk figures and emergency fund sizing
type BufferPlan struct {
	SafetyBuffer         float64
	LiquidityRisk        float64
	EssentialMonthlyAvg  float64
	Target               float64
	Shortfall            float64
	SuggestedInstallment float64
}

// isDiscretionary reports whether tx is an expense outside the essential set
func isDiscretionary(tx models.Transaction, essentials map[string]struct{}) bool {
	if tx.Kind != models.KindExpense {
		return false
	}
	_, essential := essentials[tx.Category]
	return !essential
}

// SizeBuffer derives the safety buffer, liquidity risk and emergency fund
// installment. The safety buffer looks at every supplied transaction; the
// essential average only at months in the window.
func SizeBuffer(txs []models.Transaction, window []MonthKey, proj Projection, cfg Config) BufferPlan {
	essentials := cfg.essentials()

	var discretionary []float64
	essentialByMonth := make(map[MonthKey]float64)
	for _, tx := range txs {
		if isDiscretionary(tx, essentials) {
			discretionary = append(discretionary, tx.Amount)
			continue
		}
		if tx.Kind == models.KindExpense {
			essentialByMonth[monthOf(tx.Date)] += tx.Amount
		}
	}

	var plan BufferPlan
	plan.SafetyBuffer = nearestRank95(discretionary)
	plan.LiquidityRisk = clamp(proj.ExpenseStdDev/math.Max(proj.MeanIncome, 1), 0, 1)

	if len(window) > 0 {
		perMonth := make([]float64, len(window))
		for i, k := range window {
			perMonth[i] = essentialByMonth[k]
		}
		plan.EssentialMonthlyAvg = mean(perMonth)
	}

	plan.Target = plan.EssentialMonthlyAvg * float64(cfg.BufferTargetMonths)
	plan.Shortfall = math.Max(plan.Target-cfg.BufferSavings, 0)

	var catchUp float64
	if plan.Shortfall > 0 {
		catchUp = plan.Shortfall / bufferCatchUpMonths
	}
	plan.SuggestedInstallment = math.Min(math.Max(proj.ProjectedBalance-plan.SafetyBuffer, 0), catchUp)
	return plan
}
