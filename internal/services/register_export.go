package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ecsbilling/internal/common"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const registerPageSize = 1000

type invoiceLister interface {
	List(ctx context.Context, filter models.DocumentFilter) ([]*models.Invoice, error)
}

type purchaseOrderLister interface {
	List(ctx context.Context, filter models.DocumentFilter) ([]*models.PurchaseOrder, error)
}

// RegisterExporter builds the per financial year document registers as
// xlsx workbooks.
type RegisterExporter struct {
	invoices invoiceLister
	orders   purchaseOrderLister
}

func NewRegisterExporter(invoices invoiceLister, orders purchaseOrderLister) *RegisterExporter {
	return &RegisterExporter{invoices: invoices, orders: orders}
}

type registerRow struct {
	sequence int64
	number   string
	date     time.Time
	party    string
	gstin    string
	place    string
	taxable  decimal.Decimal
	cgst     decimal.Decimal
	sgst     decimal.Decimal
	igst     decimal.Decimal
	total    decimal.Decimal
}

func (e *RegisterExporter) InvoiceRegister(ctx context.Context, financialYear string) ([]byte, error) {
	if err := common.ValidateFinancialYear(financialYear, "financial_year"); err != nil {
		return nil, err
	}
	var rows []registerRow
	for offset := 0; ; offset += registerPageSize {
		page, err := e.invoices.List(ctx, models.DocumentFilter{FinancialYear: financialYear, Limit: registerPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, inv := range page {
			rows = append(rows, registerRow{
				sequence: inv.SequenceNumber,
				number:   inv.InvoiceNumber,
				date:     inv.InvoiceDate,
				party:    inv.CustomerName,
				gstin:    inv.CustomerGSTIN,
				place:    inv.PlaceOfSupply,
				taxable:  inv.Subtotal,
				cgst:     inv.TotalCGST,
				sgst:     inv.TotalSGST,
				igst:     inv.TotalIGST,
				total:    inv.GrandTotal,
			})
		}
		if len(page) < registerPageSize {
			break
		}
	}
	return buildRegister("Invoices", "Invoice No", "Customer", rows)
}

func (e *RegisterExporter) PurchaseOrderRegister(ctx context.Context, financialYear string) ([]byte, error) {
	if err := common.ValidateFinancialYear(financialYear, "financial_year"); err != nil {
		return nil, err
	}
	var rows []registerRow
	for offset := 0; ; offset += registerPageSize {
		page, err := e.orders.List(ctx, models.DocumentFilter{FinancialYear: financialYear, Limit: registerPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, po := range page {
			rows = append(rows, registerRow{
				sequence: po.SequenceNumber,
				number:   po.PONumber,
				date:     po.PODate,
				party:    po.VendorName,
				gstin:    po.VendorGSTIN,
				place:    po.PlaceOfSupply,
				taxable:  po.Subtotal,
				cgst:     po.TotalCGST,
				sgst:     po.TotalSGST,
				igst:     po.TotalIGST,
				total:    po.GrandTotal,
			})
		}
		if len(page) < registerPageSize {
			break
		}
	}
	return buildRegister("Purchase Orders", "PO No", "Vendor", rows)
}

var registerHeaders = []string{"", "Date", "", "GSTIN", "Place of Supply", "Taxable Value", "CGST", "SGST", "IGST", "Grand Total"}

func money(d decimal.Decimal) float64 {
	f, _ := gst.Round2(d).Float64()
	return f
}

func buildRegister(sheet, numberHeader, partyHeader string, rows []registerRow) ([]byte, error) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].sequence < rows[j].sequence })

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F0F0F0"}},
	})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	headers := append([]string(nil), registerHeaders...)
	headers[0], headers[2] = numberHeader, partyHeader
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "J1", headerStyle)

	var taxable, cgst, sgst, igst, total decimal.Decimal
	for i, r := range rows {
		rowNo := i + 2
		values := []interface{}{
			r.number, gst.FormatDate(r.date), r.party, r.gstin, r.place,
			money(r.taxable), money(r.cgst), money(r.sgst), money(r.igst), money(r.total),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNo)
			f.SetCellValue(sheet, cell, v)
		}
		taxable = taxable.Add(r.taxable)
		cgst = cgst.Add(r.cgst)
		sgst = sgst.Add(r.sgst)
		igst = igst.Add(r.igst)
		total = total.Add(r.total)
	}
	if len(rows) > 0 {
		f.SetCellStyle(sheet, "F2", fmt.Sprintf("J%d", len(rows)+1), moneyStyle)
	}

	totalRow := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	for col, v := range []decimal.Decimal{taxable, cgst, sgst, igst, total} {
		cell, _ := excelize.CoordinatesToCellName(col+6, totalRow)
		f.SetCellValue(sheet, cell, money(v))
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("J%d", totalRow), totalStyle)
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "C", "C", 32)
	f.SetColWidth(sheet, "D", "E", 18)
	f.SetColWidth(sheet, "F", "J", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write register: %w", err)
	}
	return buf.Bytes(), nil
}
