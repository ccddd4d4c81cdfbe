package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

var croreUnit = decimal.NewFromInt(crore)

// AmountInWords spells a rupee amount the way it is printed on an Indian
// tax invoice, e.g. "One Lakh Twenty Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		if abs := Round2(amount.Abs()); !abs.IsZero() {
			return "Negative " + AmountInWords(abs)
		}
	}

	amount = Round2(amount)
	if amount.IsZero() {
		return "Zero Rupees Only"
	}

	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(hundred).IntPart()

	var b strings.Builder
	if rupees.IsPositive() {
		b.WriteString(indianWords(rupees))
		b.WriteString(" Rupees")
	}
	if paise > 0 {
		if rupees.IsPositive() {
			b.WriteString(" and ")
		}
		b.WriteString(belowThousand(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// indianWords spells a whole n > 0 using crore, lakh, thousand and hundred
// groups. Crore counts of a thousand or more are themselves grouped the same
// way, so n is not limited to the int64 range.
func indianWords(n decimal.Decimal) string {
	var parts []string
	c, below := n.QuoRem(croreUnit, 0)
	if c.IsPositive() {
		parts = append(parts, indianWords(c)+" Crore")
	}
	rest := below.IntPart()
	if l := rest / lakh; l > 0 {
		parts = append(parts, belowThousand(l)+" Lakh")
	}
	if t := (rest % lakh) / thousand; t > 0 {
		parts = append(parts, belowThousand(t)+" Thousand")
	}
	if h := rest % thousand; h > 0 {
		parts = append(parts, belowThousand(h))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	default:
		if n%100 == 0 {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred " + belowThousand(n%100)
	}
}
