package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderHeader is the vendor-facing part of a purchase order supplied on submit.
type PurchaseOrderHeader struct {
	PODate               time.Time  `json:"po_date" validate:"required"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	VendorName           string     `json:"vendor_name" validate:"required,max=200"`
	VendorPhone          string     `json:"vendor_phone,omitempty" validate:"max=20"`
	VendorEmail          string     `json:"vendor_email,omitempty" validate:"omitempty,email"`
	VendorGSTIN          string     `json:"vendor_gstin,omitempty"`
	VendorAddress        string     `json:"vendor_address,omitempty" validate:"max=500"`
	DeliveryAddress      string     `json:"delivery_address,omitempty" validate:"max=500"`
	PlaceOfSupply        string     `json:"place_of_supply" validate:"required"`
	PaymentTerms         string     `json:"payment_terms,omitempty"`
	DeliveryTerms        string     `json:"delivery_terms,omitempty"`
	Notes                string     `json:"notes,omitempty" validate:"max=2000"`
	TermsConditions      []string   `json:"terms_conditions,omitempty"`
}

type PurchaseOrder struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PONumber       string    `json:"po_number" db:"po_number"`
	FinancialYear  string    `json:"financial_year" db:"financial_year"`
	SequenceNumber int64     `json:"sequence_number" db:"sequence_number"`
	PurchaseOrderHeader
	Status         string           `json:"status" db:"status"`
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

const PurchaseOrderStatusDraft = "draft"
