// Package money formats rupee amounts for API responses and CLI output.
// Amounts use the Indian digit grouping (12,34,567) and the lakh/crore
// compact notation used across the product.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var enIN = message.NewPrinter(language.MustParse("en-IN"))

var (
	lakh  = decimal.NewFromInt(100_000)
	crore = decimal.NewFromInt(10_000_000)
)

// FormatINR renders an amount as "₹12,34,567" or "₹12,34,567.50" when the
// amount carries paise. The decimal math stays exact; only the grouped
// integer part goes through the locale printer.
func FormatINR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	amount = amount.Abs().Round(2)

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("₹")
	b.WriteString(enIN.Sprintf("%d", rupees))
	if paise != 0 {
		b.WriteString(enIN.Sprintf(".%02d", paise))
	}
	return b.String()
}

// FormatCompact renders an amount in lakh/crore notation: "₹1.5 Cr",
// "₹25 L", or the full grouped form below one lakh.
func FormatCompact(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	abs := amount.Abs()

	prefix := ""
	if neg {
		prefix = "-"
	}

	switch {
	case abs.GreaterThanOrEqual(crore):
		return prefix + "₹" + trimZeros(abs.Div(crore).Round(2)) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return prefix + "₹" + trimZeros(abs.Div(lakh).Round(2)) + " L"
	default:
		return FormatINR(amount)
	}
}

func trimZeros(d decimal.Decimal) string {
	s := d.StringFixed(2)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
