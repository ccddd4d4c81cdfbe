package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is an item as entered on the form, before tax is computed.
type LineItem struct {
	Description string          `json:"description" validate:"required"`
	HSNSACCode  string          `json:"hsn_sac_code" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	Unit        string          `json:"unit,omitempty"`
}

// ComputedLineItem is a billed item with its derived tax breakdown.
type ComputedLineItem struct {
	LineItem
	ItemOrder    int             `json:"item_order"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	IGSTRate     decimal.Decimal `json:"igst_rate"`
	CGSTAmount   decimal.Decimal `json:"cgst_amount"`
	SGSTAmount   decimal.Decimal `json:"sgst_amount"`
	IGSTAmount   decimal.Decimal `json:"igst_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// DocumentTotals is the aggregate tax breakdown of a bill.
type DocumentTotals struct {
	Items          []ComputedLineItem `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TotalCGST      decimal.Decimal    `json:"total_cgst"`
	TotalSGST      decimal.Decimal    `json:"total_sgst"`
	TotalIGST      decimal.Decimal    `json:"total_igst"`
	TotalTaxAmount decimal.Decimal    `json:"total_tax_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
}

// StoredLineItem is a persisted item row of either document kind.
type StoredLineItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DocumentID uuid.UUID `json:"document_id" db:"document_id"`
	ComputedLineItem
}
