// Package advisor turns a user's transaction history and savings goals into
// an advisory report: a cash flow projection, an emergency fund plan, goal
// priorities with suggested allocations, spending cuts and alerts.
//
// Every stage is a pure function of its inputs. Analyze composes them and
// holds no state between calls, so it is safe for concurrent use.
package advisor

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

// ErrInvalidInput is wrapped by every error caused by malformed input
var ErrInvalidInput = errors.New("invalid advisor input")

// Analyze builds the advisory report for txs and goals as of referenceDate.
// A zero referenceDate means today; a nil cfg means DefaultConfig.
func Analyze(txs []models.Transaction, goals []models.Goal, referenceDate time.Time, cfg *Config) (*models.AdvisoryReport, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateTransactions(txs); err != nil {
		return nil, err
	}
	if err := validateGoals(goals); err != nil {
		return nil, err
	}

	if referenceDate.IsZero() {
		referenceDate = time.Now()
	}
	y, m, d := referenceDate.Date()
	referenceDate = time.Date(y, m, d, 0, 0, 0, 0, referenceDate.Location())

	buckets := GroupMonthly(txs)
	window := HistoryWindow(buckets, c.HistoryMonths)
	proj := Project(buckets, window, c.EMAAlpha)
	plan := SizeBuffer(txs, window, proj, c)

	results := ScoreGoals(goals, referenceDate, proj)
	capital := AvailableCapital(proj, plan)
	Allocate(results, capital.AfterBuffer, c.SoftmaxLambda)

	cuts := SuggestCuts(txs, window, Deficit(results, plan, capital), c)
	alerts := RaiseAlerts(proj, plan, results)

	return &models.AdvisoryReport{
		ReferenceDate: referenceDate.Format("2006-01-02"),
		Summary:       summarize(proj, plan),
		Buffer:        bufferReport(plan, c),
		Goals:         results,
		Cuts:          cuts,
		Alerts:        alerts,
		History:       history(buckets, window),
	}, nil
}

func summarize(proj Projection, plan BufferPlan) models.Summary {
	return models.Summary{
		ProjectedIncome:   roundMoney(proj.ProjectedIncome),
		ProjectedExpense:  roundMoney(proj.ProjectedExpense),
		ProjectedBalance:  roundMoney(proj.ProjectedBalance),
		MeanIncome:        roundMoney(proj.MeanIncome),
		MeanExpense:       roundMoney(proj.MeanExpense),
		ExpenseVolatility: roundMoney(proj.ExpenseStdDev),
		LiquidityRisk:     roundMoney(plan.LiquidityRisk),
		SafetyBuffer:      roundMoney(plan.SafetyBuffer),
	}
}

func bufferReport(plan BufferPlan, c Config) models.BufferPlan {
	priority := models.BufferPriorityMet
	if plan.Shortfall > 0 {
		priority = models.BufferPriorityHigh
	}
	return models.BufferPlan{
		TargetMonths:         c.BufferTargetMonths,
		EssentialMonthlyAvg:  roundMoney(plan.EssentialMonthlyAvg),
		EstimatedRequired:    roundMoney(plan.Target),
		CurrentSavings:       roundMoney(c.BufferSavings),
		Shortfall:            roundMoney(plan.Shortfall),
		SuggestedInstallment: roundMoney(plan.SuggestedInstallment),
		Priority:             priority,
	}
}

func history(buckets map[MonthKey]MonthlyBucket, window []MonthKey) []models.MonthlySummary {
	out := make([]models.MonthlySummary, len(window))
	for i, k := range window {
		b := buckets[k]
		out[i] = models.MonthlySummary{
			Year:    k.Year,
			Month:   int(k.Month),
			Income:  roundMoney(b.Income),
			Expense: roundMoney(b.Expense),
			Net:     roundMoney(b.Income - b.Expense),
		}
	}
	return out
}

func validateTransactions(txs []models.Transaction) error {
	for i, tx := range txs {
		switch {
		case tx.Date.IsZero():
			return fmt.Errorf("%w: transaction %d has no date", ErrInvalidInput, i)
		case !isFinite(tx.Amount):
			return fmt.Errorf("%w: transaction %d has non-finite amount", ErrInvalidInput, i)
		case tx.Amount < 0:
			return fmt.Errorf("%w: transaction %d has negative amount %v", ErrInvalidInput, i, tx.Amount)
		case !tx.Kind.Valid():
			return fmt.Errorf("%w: transaction %d has unknown kind %q", ErrInvalidInput, i, tx.Kind)
		}
	}
	return nil
}

func validateGoals(goals []models.Goal) error {
	for _, g := range goals {
		switch {
		case g.Deadline.IsZero():
			return fmt.Errorf("%w: goal %d has no deadline", ErrInvalidInput, g.ID)
		case !isFinite(g.TargetAmount) || !isFinite(g.CurrentSavings):
			return fmt.Errorf("%w: goal %d has non-finite amounts", ErrInvalidInput, g.ID)
		}
	}
	return nil
}
