// Package export renders advisory reports for transports other than JSON.
package export

import (
	"fmt"
	"strconv"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/beevik/etree"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// ReportXML renders report as an indented XML document
func ReportXML(report *models.AdvisoryReport) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("AdvisoryReport")
	root.CreateAttr("referenceDate", report.ReferenceDate)

	summary := root.CreateElement("Summary")
	summary.CreateElement("ProjectedIncome").SetText(money(report.Summary.ProjectedIncome))
	summary.CreateElement("ProjectedExpense").SetText(money(report.Summary.ProjectedExpense))
	summary.CreateElement("ProjectedBalance").SetText(money(report.Summary.ProjectedBalance))
	summary.CreateElement("MeanIncome").SetText(money(report.Summary.MeanIncome))
	summary.CreateElement("MeanExpense").SetText(money(report.Summary.MeanExpense))
	summary.CreateElement("ExpenseVolatility").SetText(money(report.Summary.ExpenseVolatility))
	summary.CreateElement("LiquidityRisk").SetText(money(report.Summary.LiquidityRisk))
	summary.CreateElement("SafetyBuffer").SetText(money(report.Summary.SafetyBuffer))

	buffer := root.CreateElement("Buffer")
	buffer.CreateAttr("priority", report.Buffer.Priority)
	buffer.CreateElement("TargetMonths").SetText(strconv.Itoa(report.Buffer.TargetMonths))
	buffer.CreateElement("EssentialMonthlyAvg").SetText(money(report.Buffer.EssentialMonthlyAvg))
	buffer.CreateElement("EstimatedRequired").SetText(money(report.Buffer.EstimatedRequired))
	buffer.CreateElement("CurrentSavings").SetText(money(report.Buffer.CurrentSavings))
	buffer.CreateElement("Shortfall").SetText(money(report.Buffer.Shortfall))
	buffer.CreateElement("SuggestedInstallment").SetText(money(report.Buffer.SuggestedInstallment))

	goals := root.CreateElement("Goals")
	for _, g := range report.Goals {
		el := goals.CreateElement("Goal")
		el.CreateAttr("id", strconv.FormatInt(g.ID, 10))
		el.CreateElement("Name").SetText(g.Name)
		el.CreateElement("AmountRemaining").SetText(money(g.AmountRemaining))
		el.CreateElement("MonthsRemaining").SetText(strconv.Itoa(g.MonthsRemaining))
		el.CreateElement("PriorityScore").SetText(ratio(g.PriorityScore))
		el.CreateElement("RequiredInstallment").SetText(money(g.RequiredInstallment))
		el.CreateElement("SuggestedAllocation").SetText(money(g.SuggestedAllocation))
	}

	cuts := root.CreateElement("Cuts")
	for _, c := range report.Cuts {
		el := cuts.CreateElement("Cut")
		el.CreateAttr("category", c.Category)
		el.CreateElement("MonthlyAverage").SetText(money(c.MonthlyAverage))
		el.CreateElement("CutPct").SetText(money(c.CutPct))
		el.CreateElement("EstimatedSavings").SetText(money(c.EstimatedSavings))
	}

	alerts := root.CreateElement("Alerts")
	for _, a := range report.Alerts {
		el := alerts.CreateElement("Alert")
		el.CreateAttr("type", string(a.Type))
		if a.GoalID != nil {
			el.CreateAttr("goalId", strconv.FormatInt(*a.GoalID, 10))
		}
		el.SetText(a.Detail)
	}

	history := root.CreateElement("History")
	for _, h := range report.History {
		el := history.CreateElement("Month")
		el.CreateAttr("period", fmt.Sprintf("%04d-%02d", h.Year, h.Month))
		el.CreateElement("Income").SetText(money(h.Income))
		el.CreateElement("Expense").SetText(money(h.Expense))
		el.CreateElement("Net").SetText(money(h.Net))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render report xml: %w", err)
	}
	return out, nil
}
