package gst

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns value × rate / 100 without rounding.
func Percent(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(rate).Div(hundred)
}
