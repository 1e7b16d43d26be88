package advisor

import (
	"sort"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

// MonthKey identifies a calendar month
type MonthKey struct {
	Year  int
	Month time.Month
}

func monthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Before reports whether k is chronologically earlier than other
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthlyBucket holds the income and expense totals of one month
type MonthlyBucket struct {
	Income  float64
	Expense float64
}

// GroupMonthly sums transaction amounts per calendar month and kind
func GroupMonthly(txs []models.Transaction) map[MonthKey]MonthlyBucket {
	buckets := make(map[MonthKey]MonthlyBucket)
	for _, tx := range txs {
		key := monthOf(tx.Date)
		b := buckets[key]
		switch tx.Kind {
		case models.KindIncome:
			b.Income += tx.Amount
		case models.KindExpense:
			b.Expense += tx.Amount
		}
		buckets[key] = b
	}
	return buckets
}

// HistoryWindow returns the most recent n months present in buckets, oldest
// first. Fewer months than n is not an error.
func HistoryWindow(buckets map[MonthKey]MonthlyBucket, n int) []MonthKey {
	keys := make([]MonthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	if n >= 0 && len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	return keys
}
