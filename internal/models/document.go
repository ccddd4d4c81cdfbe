package models

import "fmt"

// DocumentKind distinguishes the two numbered document types.
type DocumentKind string

const (
	KindInvoice       DocumentKind = "invoice"
	KindPurchaseOrder DocumentKind = "purchase_order"
)

// Marker is the type segment placed between prefix and financial year.
func (k DocumentKind) Marker() string {
	if k == KindPurchaseOrder {
		return "PO"
	}
	return ""
}

// MaxNumberLength is the longest rendered document number allowed for the kind.
// Invoices are bound by GST Rule 46(b).
func (k DocumentKind) MaxNumberLength() int {
	if k == KindPurchaseOrder {
		return 20
	}
	return 16
}

func (k DocumentKind) Label() string {
	if k == KindPurchaseOrder {
		return "Purchase Order"
	}
	return "Tax Invoice"
}

// DocumentState is the lifecycle position of a document being prepared.
type DocumentState int

const (
	StateDraft DocumentState = iota
	StateBilled
	StateNumbered
	StatePersisted
	StateFailed
)

func (s DocumentState) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateBilled:
		return "billed"
	case StateNumbered:
		return "numbered"
	case StatePersisted:
		return "persisted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s DocumentState) Terminal() bool {
	return s == StatePersisted || s == StateFailed
}

// DocumentFilter holds list criteria shared by invoices and purchase orders.
type DocumentFilter struct {
	FinancialYear string `json:"financial_year,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	Offset        int    `json:"offset,omitempty"`
}
