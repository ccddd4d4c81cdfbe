package gst

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatNumber renders amount with en-IN digit grouping and two decimals.
func FormatNumber(amount decimal.Decimal) string {
	f, _ := Round2(amount).Float64()
	return indianPrinter.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatCurrency is FormatNumber with the rupee sign.
func FormatCurrency(amount decimal.Decimal) string {
	return "₹" + FormatNumber(amount)
}

// FormatDate renders t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
