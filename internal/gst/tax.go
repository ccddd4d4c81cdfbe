package gst

import (
	"strings"

	"ecsbilling/internal/models"

	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// ItemTax is the tax split of one taxable value.
type ItemTax struct {
	CGSTRate    decimal.Decimal
	SGSTRate    decimal.Decimal
	IGSTRate    decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	IGSTAmount  decimal.Decimal
	TotalTax    decimal.Decimal
	TotalAmount decimal.Decimal
}

// Calculator splits GST into CGST+SGST for supplies inside the firm's home
// jurisdictions and IGST for everything else.
type Calculator struct {
	home map[string]struct{}
}

// NewCalculator builds a calculator for the given home jurisdictions.
// Names are matched case-insensitively after trimming.
func NewCalculator(home ...string) *Calculator {
	c := &Calculator{home: make(map[string]struct{}, len(home))}
	for _, h := range home {
		if key := jurisdictionKey(h); key != "" {
			c.home[key] = struct{}{}
		}
	}
	return c
}

func jurisdictionKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsIntraState reports whether placeOfSupply is one of the home jurisdictions.
func (c *Calculator) IsIntraState(placeOfSupply string) bool {
	_, ok := c.home[jurisdictionKey(placeOfSupply)]
	return ok
}

// ItemGST computes the tax breakdown of a single taxable value.
func (c *Calculator) ItemGST(taxableValue, gstRate decimal.Decimal, placeOfSupply string) ItemTax {
	var t ItemTax
	if c.IsIntraState(placeOfSupply) {
		half := gstRate.Div(two)
		t.CGSTRate = half
		t.SGSTRate = half
		t.IGSTRate = decimal.Zero
		t.CGSTAmount = Round2(Percent(taxableValue, half))
		t.SGSTAmount = t.CGSTAmount
		t.IGSTAmount = decimal.Zero
	} else {
		t.CGSTRate = decimal.Zero
		t.SGSTRate = decimal.Zero
		t.IGSTRate = gstRate
		t.CGSTAmount = decimal.Zero
		t.SGSTAmount = decimal.Zero
		t.IGSTAmount = Round2(Percent(taxableValue, gstRate))
	}
	t.TotalTax = t.CGSTAmount.Add(t.SGSTAmount).Add(t.IGSTAmount)
	t.TotalAmount = Round2(taxableValue.Add(t.TotalTax))
	return t
}

// DocumentTotals computes every item's breakdown and the document aggregate.
// Sums are accumulated unrounded and rounded once at the end.
func (c *Calculator) DocumentTotals(items []models.LineItem, placeOfSupply string) models.DocumentTotals {
	out := models.DocumentTotals{Items: make([]models.ComputedLineItem, 0, len(items))}

	subtotal := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero

	for i, item := range items {
		taxable := Round2(item.Quantity.Mul(item.UnitPrice))
		tax := c.ItemGST(taxable, item.GSTRate, placeOfSupply)

		out.Items = append(out.Items, models.ComputedLineItem{
			LineItem:     item,
			ItemOrder:    i + 1,
			TaxableValue: taxable,
			CGSTRate:     tax.CGSTRate,
			SGSTRate:     tax.SGSTRate,
			IGSTRate:     tax.IGSTRate,
			CGSTAmount:   tax.CGSTAmount,
			SGSTAmount:   tax.SGSTAmount,
			IGSTAmount:   tax.IGSTAmount,
			TotalAmount:  tax.TotalAmount,
		})

		subtotal = subtotal.Add(taxable)
		cgst = cgst.Add(tax.CGSTAmount)
		sgst = sgst.Add(tax.SGSTAmount)
		igst = igst.Add(tax.IGSTAmount)
	}

	out.Subtotal = Round2(subtotal)
	out.TotalCGST = Round2(cgst)
	out.TotalSGST = Round2(sgst)
	out.TotalIGST = Round2(igst)
	out.TotalTaxAmount = Round2(out.TotalCGST.Add(out.TotalSGST).Add(out.TotalIGST))
	out.GrandTotal = Round2(out.Subtotal.Add(out.TotalTaxAmount))
	return out
}
