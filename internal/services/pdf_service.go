package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"ecsbilling/internal/config"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// DocumentRenderer produces the printable form of a stored document.
type DocumentRenderer interface {
	RenderInvoice(invoice *models.Invoice) ([]byte, error)
	RenderPurchaseOrder(po *models.PurchaseOrder) ([]byte, error)
}

type pdfRenderer struct {
	firm config.FirmProfile
}

func NewPDFRenderer(firm config.FirmProfile) DocumentRenderer {
	return &pdfRenderer{firm: firm}
}

// printable is the layout input shared by both document kinds.
type printable struct {
	kind          models.DocumentKind
	number        string
	date          time.Time
	partyTitle    string
	partyLines    []string
	extraTitle    string
	extraLines    []string
	metaLines     []string
	placeOfSupply string
	items         []models.StoredLineItem
	subtotal      decimal.Decimal
	cgst          decimal.Decimal
	sgst          decimal.Decimal
	igst          decimal.Decimal
	grandTotal    decimal.Decimal
	terms         []string
	showBank      bool
}

const (
	marginX = 15.0
	marginY = 15.0
)

var (
	itemHeaders = []string{"#", "Description", "HSN/SAC", "Qty", "Rate", "Taxable", "GST%", "Tax", "Amount"}
	itemWidths  = []float64{8, 50, 18, 16, 20, 22, 12, 16, 18}
)

func nonEmpty(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func (r *pdfRenderer) RenderInvoice(invoice *models.Invoice) ([]byte, error) {
	doc := printable{
		kind:       models.KindInvoice,
		number:     invoice.InvoiceNumber,
		date:       invoice.InvoiceDate,
		partyTitle: "BILL TO:",
		partyLines: nonEmpty(
			invoice.CustomerName,
			invoice.CustomerAddress,
			labelled("Phone", invoice.CustomerPhone),
			labelled("GSTIN", invoice.CustomerGSTIN),
		),
		placeOfSupply: invoice.PlaceOfSupply,
		items:         invoice.Items,
		subtotal:      invoice.Subtotal,
		cgst:          invoice.TotalCGST,
		sgst:          invoice.TotalSGST,
		igst:          invoice.TotalIGST,
		grandTotal:    invoice.GrandTotal,
		terms: []string{
			"Goods once sold will not be taken back.",
			"This is a computer generated invoice.",
		},
		showBank: true,
	}
	if invoice.ShippingName != "" || invoice.ShippingAddress != "" {
		doc.extraTitle = "SHIP TO:"
		doc.extraLines = nonEmpty(invoice.ShippingName, invoice.ShippingAddress, labelled("Phone", invoice.ShippingPhone))
	}
	return r.render(doc)
}

func (r *pdfRenderer) RenderPurchaseOrder(po *models.PurchaseOrder) ([]byte, error) {
	doc := printable{
		kind:       models.KindPurchaseOrder,
		number:     po.PONumber,
		date:       po.PODate,
		partyTitle: "VENDOR:",
		partyLines: nonEmpty(
			po.VendorName,
			po.VendorAddress,
			labelled("Phone", po.VendorPhone),
			labelled("Email", po.VendorEmail),
			labelled("GSTIN", po.VendorGSTIN),
		),
		extraTitle:    "DELIVER TO:",
		extraLines:    nonEmpty(po.DeliveryAddress),
		placeOfSupply: po.PlaceOfSupply,
		items:         po.Items,
		subtotal:      po.Subtotal,
		cgst:          po.TotalCGST,
		sgst:          po.TotalSGST,
		igst:          po.TotalIGST,
		grandTotal:    po.GrandTotal,
		terms:         po.TermsConditions,
	}
	if po.ExpectedDeliveryDate != nil {
		doc.metaLines = append(doc.metaLines, "Expected Delivery: "+gst.FormatDate(*po.ExpectedDeliveryDate))
	}
	doc.metaLines = append(doc.metaLines, nonEmpty(
		labelled("Payment Terms", po.PaymentTerms),
		labelled("Delivery Terms", po.DeliveryTerms),
	)...)
	if po.Notes != "" {
		doc.metaLines = append(doc.metaLines, "Notes: "+po.Notes)
	}
	return r.render(doc)
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

// fit shortens s until it fits a cell of width w.
func fit(pdf *gofpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w-2 {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > w-2 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func (r *pdfRenderer) render(doc printable) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)
	pdf.SetTitle(fmt.Sprintf("%s %s", doc.kind.Label(), doc.number), true)
	pdf.AddPage()

	// Firm header
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, tr(r.firm.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 4.5, tr(r.firm.Address), "", "L", false)
	pdf.CellFormat(0, 4.5, tr(strings.Join(nonEmpty(labelled("Phone", r.firm.Phone), labelled("Email", r.firm.Email)), " | ")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4.5, fmt.Sprintf("GSTIN: %s  State: %s (%s)", r.firm.GSTIN, r.firm.State, r.firm.StateCode), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, strings.ToUpper(doc.kind.Label()), "TB", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	numberLabel := "Invoice No"
	if doc.kind == models.KindPurchaseOrder {
		numberLabel = "PO No"
	}
	pdf.CellFormat(90, 6, fmt.Sprintf("%s: %s", numberLabel, doc.number), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+gst.FormatDate(doc.date), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr("Place of Supply: "+doc.placeOfSupply), "", 1, "L", false, 0, "")
	for _, line := range doc.metaLines {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Party blocks side by side
	top := pdf.GetY()
	r.block(pdf, tr, marginX, top, doc.partyTitle, doc.partyLines)
	leftBottom := pdf.GetY()
	if doc.extraTitle != "" {
		r.block(pdf, tr, marginX+95, top, doc.extraTitle, doc.extraLines)
	}
	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(4)

	r.itemsTable(pdf, tr, doc)
	r.totals(pdf, doc)

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, "Amount in words:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, gst.AmountInWords(doc.grandTotal), "", "L", false)
	pdf.Ln(3)

	if doc.showBank {
		bank := r.firm.Bank
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Bank Details:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, line := range nonEmpty(
			labelled("Bank", bank.BankName),
			labelled("A/c No", bank.AccountNumber),
			labelled("IFSC", bank.IFSCCode),
			labelled("Branch", bank.BranchName),
		) {
			pdf.CellFormat(0, 4.5, tr(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(doc.terms) > 0 {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Terms & Conditions:", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		for i, term := range doc.terms {
			pdf.MultiCell(0, 4, tr(fmt.Sprintf("%d. %s", i+1, term)), "", "L", false)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, tr("For "+r.firm.Name), "", 1, "R", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 4, "Authorised Signatory", "", 1, "R", false, 0, "")

	if jurisdiction := r.firm.Jurisdiction; jurisdiction != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 7)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 4, tr("Subject to "+jurisdiction+" jurisdiction"), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) block(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, title string, lines []string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 5, title, "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, line := range lines {
		pdf.SetX(x)
		pdf.MultiCell(90, 4.5, tr(line), "", "L", false)
	}
}

func (r *pdfRenderer) itemsTable(pdf *gofpdf.Fpdf, tr func(string) string, doc printable) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(240, 240, 240)
	for i, header := range itemHeaders {
		pdf.CellFormat(itemWidths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, it := range doc.items {
		qty := it.Quantity.String()
		if it.Unit != "" {
			qty += " " + it.Unit
		}
		tax := it.CGSTAmount.Add(it.SGSTAmount).Add(it.IGSTAmount)
		cells := []struct {
			text  string
			align string
		}{
			{fmt.Sprintf("%d", it.ItemOrder), "C"},
			{fit(pdf, tr(it.Description), itemWidths[1]), "L"},
			{it.HSNSACCode, "C"},
			{fit(pdf, qty, itemWidths[3]), "R"},
			{gst.FormatNumber(it.UnitPrice), "R"},
			{gst.FormatNumber(it.TaxableValue), "R"},
			{it.GSTRate.String(), "C"},
			{gst.FormatNumber(tax), "R"},
			{gst.FormatNumber(it.TotalAmount), "R"},
		}
		for i, c := range cells {
			pdf.CellFormat(itemWidths[i], 6, c.text, "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

type taxRow struct {
	label  string
	amount decimal.Decimal
}

// taxRows lists the tax components the stored totals actually carry, so a
// reprint matches the document as saved whatever the place of supply says.
func taxRows(doc printable) []taxRow {
	var rows []taxRow
	if !doc.cgst.IsZero() || !doc.sgst.IsZero() {
		rows = append(rows, taxRow{"CGST:", doc.cgst}, taxRow{"SGST:", doc.sgst})
	}
	if !doc.igst.IsZero() {
		rows = append(rows, taxRow{"IGST:", doc.igst})
	}
	if len(rows) == 0 {
		rows = append(rows, taxRow{"GST:", decimal.Zero})
	}
	return rows
}

func (r *pdfRenderer) totals(pdf *gofpdf.Fpdf, doc printable) {
	row := func(label string, amount decimal.Decimal) {
		pdf.CellFormat(140, 5.5, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 5.5, gst.FormatNumber(amount), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	row("Taxable Value:", doc.subtotal)
	for _, t := range taxRows(doc) {
		row(t.label, t.amount)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(140, 8, "Grand Total (Rs.):", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, gst.FormatNumber(doc.grandTotal), "T", 1, "R", false, 0, "")
}
