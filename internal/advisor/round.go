package advisor

import "github.com/shopspring/decimal"

// roundMoney rounds half away from zero to two decimal places
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
