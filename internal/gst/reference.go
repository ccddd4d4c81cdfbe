package gst

import "github.com/shopspring/decimal"

// Rates are the GST slabs accepted on a line item.
var Rates = []int64{0, 5, 12, 18, 28}

// IsSupportedRate reports whether rate is exactly one of Rates.
func IsSupportedRate(rate decimal.Decimal) bool {
	for _, r := range Rates {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// DefaultUnit is applied to purchase order items entered without a unit.
const DefaultUnit = "Nos"

var Units = []string{"Nos", "Pcs", "Kgs", "Ltrs", "Mtrs", "Sqm", "Sqft", "Box", "Set", "Pack", "Pair", "Hrs", "Days"}

func IsSupportedUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}

var PaymentTerms = []string{
	"Advance Payment",
	"Payment on Delivery",
	"Net 7 Days",
	"Net 15 Days",
	"Net 30 Days",
	"Net 45 Days",
	"Net 60 Days",
	"50% Advance, 50% on Delivery",
	"As per Agreement",
}

var DeliveryTerms = []string{
	"Ex-Works",
	"FOR (Free on Road) - Destination",
	"FOR (Free on Road) - Origin",
	"Door Delivery",
	"CIF (Cost, Insurance, Freight)",
	"FOB (Free on Board)",
	"As per Agreement",
}

// DefaultTermsConditions are printed on a purchase order when none are given.
var DefaultTermsConditions = []string{
	"Prices are inclusive of all taxes unless otherwise specified.",
	"Delivery must be made as per the schedule mentioned in the PO.",
	"All goods must be accompanied by proper invoice and delivery challan.",
	"Quality must conform to the specifications mentioned.",
	"Payment will be processed after satisfactory receipt of goods/services.",
	"This PO is subject to our standard terms and conditions.",
	"Any deviation from the PO requires prior written approval.",
	"GST invoice must be provided for claiming input tax credit.",
}
