package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceHeader is the customer-facing part of an invoice supplied on submit.
type InvoiceHeader struct {
	InvoiceDate     time.Time `json:"invoice_date" validate:"required"`
	CustomerName    string    `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string    `json:"customer_phone,omitempty" validate:"max=20"`
	CustomerGSTIN   string    `json:"customer_gstin,omitempty"`
	CustomerAddress string    `json:"customer_address,omitempty" validate:"max=500"`
	ShippingName    string    `json:"shipping_name,omitempty" validate:"max=200"`
	ShippingPhone   string    `json:"shipping_phone,omitempty" validate:"max=20"`
	ShippingAddress string    `json:"shipping_address,omitempty" validate:"max=500"`
	PlaceOfSupply   string    `json:"place_of_supply" validate:"required"`
}

type Invoice struct {
	ID             uuid.UUID `json:"id" db:"id"`
	InvoiceNumber  string    `json:"invoice_number" db:"invoice_number"`
	FinancialYear  string    `json:"financial_year" db:"financial_year"`
	SequenceNumber int64     `json:"sequence_number" db:"sequence_number"`
	InvoiceHeader
	Subtotal       decimal.Decimal  `json:"subtotal" db:"subtotal"`
	TotalCGST      decimal.Decimal  `json:"total_cgst" db:"total_cgst"`
	TotalSGST      decimal.Decimal  `json:"total_sgst" db:"total_sgst"`
	TotalIGST      decimal.Decimal  `json:"total_igst" db:"total_igst"`
	TotalTaxAmount decimal.Decimal  `json:"total_tax_amount" db:"total_tax_amount"`
	GrandTotal     decimal.Decimal  `json:"grand_total" db:"grand_total"`
	CreatedBy      *uuid.UUID       `json:"created_by,omitempty" db:"created_by"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	Items          []StoredLineItem `json:"items,omitempty"`
}
