package gst

import (
	"fmt"
	"time"
)

// FinancialYear renders the April–March year containing t as "YY-YY".
func FinancialYear(t time.Time) string {
	start := FinancialYearStart(t)
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

// FinancialYearStart is the calendar year in which t's financial year began.
func FinancialYearStart(t time.Time) int {
	if t.Month() < time.April {
		return t.Year() - 1
	}
	return t.Year()
}
