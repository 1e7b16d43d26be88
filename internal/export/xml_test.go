package export

import (
	"testing"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/beevik/etree"
)

func TestReportXML(t *testing.T) {
	goalID := int64(9)
	report := &models.AdvisoryReport{
		ReferenceDate: "2025-07-15",
		Summary:       models.Summary{ProjectedBalance: -120.5, LiquidityRisk: 0.75},
		Buffer:        models.BufferPlan{TargetMonths: 4, EstimatedRequired: 8000, Priority: models.BufferPriorityHigh},
		Goals:         []models.GoalResult{{ID: 9, Name: "Trip & Tour", MonthsRemaining: 1, PriorityScore: 0.6, RequiredInstallment: 500}},
		Cuts:          []models.CutSuggestion{{Category: "Dining", MonthlyAverage: 300, CutPct: 0.2, EstimatedSavings: 60}},
		Alerts: []models.Alert{
			{Type: models.AlertNegativeLiquidity, Detail: "negative"},
			{Type: models.AlertDelayedGoal, Detail: "late", GoalID: &goalID},
		},
		History: []models.MonthlySummary{{Year: 2025, Month: 6, Income: 100, Expense: 220.5, Net: -120.5}},
	}

	out, err := ReportXML(report)
	if err != nil {
		t.Fatalf("ReportXML: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not valid xml: %v\n%s", err, out)
	}

	checks := []struct {
		path string
		want string
	}{
		{"/AdvisoryReport/Summary/ProjectedBalance", "-120.50"},
		{"/AdvisoryReport/Buffer/EstimatedRequired", "8000.00"},
		{"/AdvisoryReport/Goals/Goal/Name", "Trip & Tour"},
		{"/AdvisoryReport/Goals/Goal/PriorityScore", "0.6000"},
		{"/AdvisoryReport/Cuts/Cut/EstimatedSavings", "60.00"},
		{"/AdvisoryReport/History/Month/Net", "-120.50"},
	}
	for _, c := range checks {
		el := doc.FindElement(c.path)
		if el == nil {
			t.Fatalf("%s missing in\n%s", c.path, out)
		}
		if el.Text() != c.want {
			t.Fatalf("%s = %q, want %q", c.path, el.Text(), c.want)
		}
	}

	if got := doc.Root().SelectAttrValue("referenceDate", ""); got != "2025-07-15" {
		t.Fatalf("referenceDate = %q", got)
	}
	delayed := doc.FindElement("//Alert[@type='DelayedGoal']")
	if delayed == nil || delayed.SelectAttrValue("goalId", "") != "9" {
		t.Fatalf("delayed goal alert missing goal id in\n%s", out)
	}
	if month := doc.FindElement("//Month"); month.SelectAttrValue("period", "") != "2025-06" {
		t.Fatalf("history period = %q", month.SelectAttrValue("period", ""))
	}
}
