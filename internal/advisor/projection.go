package advisor

// Projection is the next-period cash flow forecast
type Projection struct {
	MeanIncome       float64
	MeanExpense      float64
	IncomeStdDev     float64
	ExpenseStdDev    float64
	ProjectedIncome  float64
	ProjectedExpense float64
	ProjectedBalance float64
}

// Project forecasts next-period income and expense over the window using an
// exponential moving average with smoothing factor alpha.
func Project(buckets map[MonthKey]MonthlyBucket, window []MonthKey, alpha float64) Projection {
	incomes := make([]float64, len(window))
	expenses := make([]float64, len(window))
	for i, k := range window {
		incomes[i] = buckets[k].Income
		expenses[i] = buckets[k].Expense
	}

	p := Projection{
		MeanIncome:       mean(incomes),
		MeanExpense:      mean(expenses),
		IncomeStdDev:     pstdev(incomes),
		ExpenseStdDev:    pstdev(expenses),
		ProjectedIncome:  EMA(incomes, alpha),
		ProjectedExpense: EMA(expenses, alpha),
	}
	p.ProjectedBalance = p.ProjectedIncome - p.ProjectedExpense
	return p
}
