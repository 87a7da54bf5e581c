package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyINR formats an amount in Indian Rupees with lakh grouping.
// Example: 123456.5 -> "₹1,23,456.50"
func FormatCurrencyINR(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	formatted := amount.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	integerPart, decimalPart := parts[0], parts[1]

	// last three digits, then groups of two
	if len(integerPart) > 3 {
		head, tail := integerPart[:len(integerPart)-3], integerPart[len(integerPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		integerPart = strings.Join(groups, ",") + "," + tail
	}

	return sign + "₹" + integerPart + "." + decimalPart
}
