package handlers

import (
	"net/http"

	"ecsbilling/internal/config"
	"ecsbilling/internal/gst"

	"github.com/labstack/echo/v4"
)

// ReferenceData is everything a document form needs to render its pickers.
type ReferenceData struct {
	Firm                   config.FirmProfile `json:"firm"`
	States                 []gst.State        `json:"states"`
	GSTRates               []int64            `json:"gst_rates"`
	Units                  []string           `json:"units"`
	PaymentTerms           []string           `json:"payment_terms"`
	DeliveryTerms          []string           `json:"delivery_terms"`
	DefaultTermsConditions []string           `json:"default_terms_conditions"`
}

type ReferenceHandlers struct {
	data ReferenceData
}

func NewReferenceHandlers(firm config.FirmProfile) *ReferenceHandlers {
	return &ReferenceHandlers{data: ReferenceData{
		Firm:                   firm,
		States:                 gst.States,
		GSTRates:               gst.Rates,
		Units:                  gst.Units,
		PaymentTerms:           gst.PaymentTerms,
		DeliveryTerms:          gst.DeliveryTerms,
		DefaultTermsConditions: gst.DefaultTermsConditions,
	}}
}

// GetReference handles GET /reference
func (h *ReferenceHandlers) GetReference(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data)
}
