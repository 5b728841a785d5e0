package services

import (
	"fmt"
	"strings"
)

// FormatINR formats an amount into Indian Rupee notation: after the rightmost
// 3 digits, digits group in pairs (₹1,23,45,678.90), always with 2 decimals.
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	result := "₹" + applyIndianGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatOptionalINR renders an optional amount for documents. A value the
// workbook never stated prints as a dash, never as ₹0.00.
func FormatOptionalINR(amount *float64) string {
	if amount == nil {
		return "—"
	}
	return FormatINR(*amount)
}

// FormatOptionalNumber renders an optional plain number (area, cost rate,
// width) with up to 2 decimals, or a dash when absent.
func FormatOptionalNumber(v *float64) string {
	if v == nil {
		return "—"
	}
	s := fmt.Sprintf("%.2f", *v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// applyIndianGrouping inserts commas using the Indian numbering system: the
// rightmost 3 digits form the first group, then pairs.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}
