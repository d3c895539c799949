// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as pesos with thousands separators and two
// decimals, e.g. 1234567.891 -> "$1,234,567.89".
func FormatMoney(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	intPart, err := decimal.NewFromString(whole)
	if err != nil || !intPart.IsInteger() {
		return sign + "$" + fixed
	}
	return fmt.Sprintf("%s$%s.%s", sign, humanize.Comma(intPart.IntPart()), frac)
}

// FormatQuantity formats a take-off quantity with at most two decimals and
// no trailing zeros, e.g. 220.00 -> "220", 12.5 -> "12.5".
func FormatQuantity(q decimal.Decimal) string {
	return q.Round(2).String()
}

// FormatArea formats a built area in square meters.
func FormatArea(area decimal.Decimal) string {
	return FormatQuantity(area) + " m²"
}

// FormatPercent formats a 0-1 ratio as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// Share returns part/whole as a float ratio, zero when whole is zero.
func Share(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).InexactFloat64()
}
