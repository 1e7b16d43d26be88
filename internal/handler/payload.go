package handler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

const (
	defaultCategory = "Other"
	defaultPriority = 3
)

// recommendRequest is the body of POST /advisor/recommend
type recommendRequest struct {
	ReferenceDate string               `json:"reference_date"`
	BufferSavings float64              `json:"buffer_savings"`
	Transactions  []transactionPayload `json:"transactions"`
	Goals         []goalPayload        `json:"goals"`
}

type transactionPayload struct {
	Date      string   `json:"date"`
	Amount    *float64 `json:"amount"`
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	Recurring bool     `json:"recurring"`
}

type goalPayload struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	TargetAmount   *float64 `json:"target_amount"`
	CurrentSavings float64  `json:"current_savings"`
	Deadline       string   `json:"deadline"`
	Priority       *int     `json:"priority"`
}

// parseDate accepts YYYY-MM-DD or RFC3339
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// toModels validates the payload and applies the input defaults: absolute
// amounts, "Other" for a missing category, priority 3 when omitted
func (req recommendRequest) toModels() ([]models.Transaction, []models.Goal, time.Time, error) {
	var ref time.Time
	if req.ReferenceDate != "" {
		var err error
		if ref, err = parseDate(req.ReferenceDate); err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("reference_date: %w", err)
		}
	}

	txs := make([]models.Transaction, 0, len(req.Transactions))
	for i, p := range req.Transactions {
		date, err := parseDate(p.Date)
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		if p.Amount == nil {
			return nil, nil, time.Time{}, fmt.Errorf("transactions[%d]: amount is required", i)
		}
		kind := models.TransactionKind(strings.ToLower(strings.TrimSpace(p.Type)))
		if !kind.Valid() {
			return nil, nil, time.Time{}, fmt.Errorf("transactions[%d]: unknown type %q", i, p.Type)
		}
		category := strings.TrimSpace(p.Category)
		if category == "" {
			category = defaultCategory
		}
		txs = append(txs, models.Transaction{
			Date:      date,
			Amount:    math.Abs(*p.Amount),
			Kind:      kind,
			Category:  category,
			Recurring: p.Recurring,
		})
	}

	goals := make([]models.Goal, 0, len(req.Goals))
	for i, p := range req.Goals {
		deadline, err := parseDate(p.Deadline)
		if err != nil {
			return nil, nil, time.Time{}, fmt.Errorf("goals[%d]: deadline: %w", i, err)
		}
		if p.TargetAmount == nil {
			return nil, nil, time.Time{}, fmt.Errorf("goals[%d]: target_amount is required", i)
		}
		priority := defaultPriority
		if p.Priority != nil {
			priority = *p.Priority
		}
		goals = append(goals, models.Goal{
			ID:             p.ID,
			Name:           p.Name,
			TargetAmount:   *p.TargetAmount,
			CurrentSavings: p.CurrentSavings,
			Deadline:       deadline,
			Priority:       priority,
		})
	}
	return txs, goals, ref, nil
}
