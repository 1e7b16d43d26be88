package models

// AlertType names a qualitative warning raised by the advisor
type AlertType string

const (
	AlertNegativeLiquidity AlertType = "NegativeLiquidity"
	AlertHighRisk          AlertType = "HighRisk"
	AlertDelayedGoal       AlertType = "DelayedGoal"
)

// Buffer plan priorities
const (
	BufferPriorityHigh = "high"
	BufferPriorityMet  = "met"
)

// AdvisoryReport is the full output of one advisor run
type AdvisoryReport struct {
	ReferenceDate string           `json:"reference_date"` // Format: YYYY-MM-DD
	Summary       Summary          `json:"summary"`
	Buffer        BufferPlan       `json:"buffer"`
	Goals         []GoalResult     `json:"goals"`
	Cuts          []CutSuggestion  `json:"cuts"`
	Alerts        []Alert          `json:"alerts"`
	History       []MonthlySummary `json:"history"`
}

// Summary holds next-period projections and risk figures
type Summary struct {
	ProjectedIncome   float64 `json:"projected_income"`
	ProjectedExpense  float64 `json:"projected_expense"`
	ProjectedBalance  float64 `json:"projected_balance"`
	MeanIncome        float64 `json:"mean_income"`
	MeanExpense       float64 `json:"mean_expense"`
	ExpenseVolatility float64 `json:"expense_volatility"`
	LiquidityRisk     float64 `json:"liquidity_risk"` // 0..1
	SafetyBuffer      float64 `json:"safety_buffer"`
}

// BufferPlan describes the emergency fund target and catch-up installment
type BufferPlan struct {
	TargetMonths         int     `json:"target_months"`
	EssentialMonthlyAvg  float64 `json:"essential_monthly_avg"`
	EstimatedRequired    float64 `json:"estimated_required"`
	CurrentSavings       float64 `json:"current_savings"`
	Shortfall            float64 `json:"shortfall"`
	SuggestedInstallment float64 `json:"suggested_installment"`
	Priority             string  `json:"priority"` // "high" or "met"
}

// GoalResult is the scored and funded view of one goal
type GoalResult struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	AmountRemaining     float64 `json:"amount_remaining"`
	MonthsRemaining     int     `json:"months_remaining"`
	PriorityScore       float64 `json:"priority_score"` // 0..1
	RequiredInstallment float64 `json:"required_installment"`
	SuggestedAllocation float64 `json:"suggested_allocation"`
}

// CutSuggestion proposes trimming a discretionary category
type CutSuggestion struct {
	Category         string  `json:"category"`
	MonthlyAverage   float64 `json:"monthly_average"`
	CutPct           float64 `json:"cut_pct"`
	EstimatedSavings float64 `json:"estimated_savings"`
}

// Alert is a qualitative warning attached to a report
type Alert struct {
	Type   AlertType `json:"type"`
	Detail string    `json:"detail"`
	GoalID *int64    `json:"goal_id,omitempty"`
}

// MonthlySummary represents income and expense totals of one historical month
type MonthlySummary struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}
