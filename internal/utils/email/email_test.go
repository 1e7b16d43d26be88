package email

import (
	"strings"
	"testing"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/models"
)

func TestNewDigest(t *testing.T) {
	s := NewSender(&config.Config{SenderEmail: "advisor@finflow.local"}, nil)
	report := &models.AdvisoryReport{
		ReferenceDate: "2025-07-01",
		Summary:       models.Summary{ProjectedIncome: 1000, ProjectedExpense: 1500, ProjectedBalance: -500},
		Buffer:        models.BufferPlan{Shortfall: 8000, SuggestedInstallment: 0, Priority: models.BufferPriorityHigh},
		Alerts:        []models.Alert{{Type: models.AlertNegativeLiquidity, Detail: "Projected balance is negative."}},
		Cuts:          []models.CutSuggestion{{Category: "Dining", CutPct: 0.2, EstimatedSavings: 60}},
	}

	e := s.newDigest("ana@example.com", "ana", report)
	if e.From != "advisor@finflow.local" || len(e.To) != 1 || e.To[0] != "ana@example.com" {
		t.Fatalf("envelope = from %q to %v", e.From, e.To)
	}
	if !strings.Contains(e.Subject, "2025-07-01") {
		t.Fatalf("subject = %q, want the reference date", e.Subject)
	}

	body := string(e.Text)
	for _, want := range []string{
		"Dear ana,",
		"Projected balance for next month: -500.00",
		"Emergency fund: 8000.00 still needed",
		"[NegativeLiquidity] Projected balance is negative.",
		"Dining: cut 20% to save about 60.00 per month",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestDigestBodyOmitsEmptySections(t *testing.T) {
	body := digestBody("bo", &models.AdvisoryReport{Buffer: models.BufferPlan{Priority: models.BufferPriorityMet}})
	for _, unwanted := range []string{"Alerts:", "Suggested cuts:", "Emergency fund"} {
		if strings.Contains(body, unwanted) {
			t.Fatalf("body contains %q:\n%s", unwanted, body)
		}
	}
}
