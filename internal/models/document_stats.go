package models

import "github.com/shopspring/decimal"

// DocumentStats summarises one financial year of a document kind.
type DocumentStats struct {
	FinancialYear string          `json:"financial_year"`
	Count         int64           `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}
