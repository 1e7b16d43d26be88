package advisor

import (
	"sort"

	"github.com/Dan9191/finance-advisor/internal/models"
)

const (
	// cutRate is the share of a category's monthly average proposed as a cut.
	// Cuts are only suggested when there is a deficit, so the rate is fixed.
	cutRate = 0.20
	maxCuts = 5
)

// Deficit is how far goal installments plus the buffer installment exceed
// the available capital. Positive means the plan cannot be fully funded.
func Deficit(results []models.GoalResult, plan BufferPlan, capital Capital) float64 {
	need := plan.SuggestedInstallment
	for _, r := range results {
		need += r.RequiredInstallment
	}
	return need - capital.Total
}

// SuggestCuts ranks discretionary categories in the window by spend and
// proposes trimming the top ones. It returns nothing unless deficit > 0.
func SuggestCuts(txs []models.Transaction, window []MonthKey, deficit float64, cfg Config) []models.CutSuggestion {
	cuts := []models.CutSuggestion{}
	if deficit <= 0 || len(window) == 0 {
		return cuts
	}

	inWindow := make(map[MonthKey]struct{}, len(window))
	for _, k := range window {
		inWindow[k] = struct{}{}
	}
	essentials := cfg.essentials()

	byCategory := make(map[string]float64)
	for _, tx := range txs {
		if _, ok := inWindow[monthOf(tx.Date)]; !ok || !isDiscretionary(tx, essentials) {
			continue
		}
		byCategory[tx.Category] += tx.Amount
	}

	type categoryTotal struct {
		name  string
		total float64
	}
	ranked := make([]categoryTotal, 0, len(byCategory))
	for name, total := range byCategory {
		ranked = append(ranked, categoryTotal{name, total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].total != ranked[j].total {
			return ranked[i].total > ranked[j].total
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > maxCuts {
		ranked = ranked[:maxCuts]
	}

	for _, c := range ranked {
		avg := c.total / float64(len(window))
		savings := avg * cutRate
		if savings <= 0 {
			continue
		}
		cuts = append(cuts, models.CutSuggestion{
			Category:         c.name,
			MonthlyAverage:   roundMoney(avg),
			CutPct:           roundMoney(cutRate),
			EstimatedSavings: roundMoney(savings),
		})
	}
	return cuts
}
