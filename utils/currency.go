package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders a rupee amount with exactly two decimals ("250.50").
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatINR prefixes the currency marker used on receipts.
// Example: 250.5 -> "Rs. 250.50"
func FormatINR(amount float64) string {
	return "Rs. " + FormatAmount(amount)
}
