package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNaira renders an amount as whole naira with thousands separators, e.g. ₦1,250,000.
func FormatNaira(amount float64) string {
	digits := decimal.NewFromFloat(amount).Round(0).String()
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-₦" + b.String()
	}
	return "₦" + b.String()
}
