package entities

import "github.com/shopspring/decimal"

// RoundMoney rounds v to cents.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Subtotal sums price*quantity over items using decimal arithmetic and rounds to cents.
func Subtotal(items []OrderItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum.Round(2).InexactFloat64()
}
