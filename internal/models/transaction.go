package models

import "time"

// TransactionKind distinguishes money coming in from money going out
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid reports whether k is a known kind
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single income or expense record.
// Amount is always positive; Kind carries the direction.
type Transaction struct {
	Date      time.Time       `json:"date"`
	Amount    float64         `json:"amount"`
	Kind      TransactionKind `json:"type"`
	Category  string          `json:"category"`
	Recurring bool            `json:"recurring"`
}
