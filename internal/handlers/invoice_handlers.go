package handlers

import (
	"net/http"
	"strings"
	"time"

	"ecsbilling/internal/common"
	"ecsbilling/internal/config"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"
	"ecsbilling/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// InvoiceHandlers handles HTTP requests for invoices
type InvoiceHandlers struct {
	invoiceService services.InvoiceServiceInterface
	archive        DocumentArchiver
	registers      RegisterExporter
	now            func() time.Time
	log            *logrus.Entry
}

// NewInvoiceHandlers creates a new invoice handlers instance
func NewInvoiceHandlers(invoiceService services.InvoiceServiceInterface, archive DocumentArchiver, registers RegisterExporter, log *logrus.Entry) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService: invoiceService,
		archive:        archive,
		registers:      registers,
		now:            time.Now,
		log:            log.WithField("component", "invoice_handlers"),
	}
}

// submitInvoiceRequest is the invoice form. Dates arrive as yyyy-mm-dd and
// shadow the header's time fields.
type submitInvoiceRequest struct {
	models.InvoiceHeader `validate:"-"`
	InvoiceDate          string            `json:"invoice_date"`
	Items                []models.LineItem `json:"items" validate:"required,min=1,max=100"`
}

// RegisterRoutes mounts the invoice endpoints on g.
func (h *InvoiceHandlers) RegisterRoutes(g *echo.Group) {
	invoices := g.Group("/invoices")
	invoices.GET("/next-number", h.PreviewNumber)
	invoices.POST("", h.CreateInvoice)
	invoices.GET("", h.ListInvoices)
	invoices.GET("/stats", h.GetStats)
	invoices.GET("/register", h.ExportRegister)
	invoices.GET("/by-number", h.GetInvoiceByNumber)
	invoices.GET("/:id", h.GetInvoice)
	invoices.DELETE("/:id", h.DeleteInvoice)
	invoices.POST("/:id/pdf", h.ArchivePDF)
}

// PreviewNumber handles GET /invoices/next-number
// The preview never consumes a number.
func (h *InvoiceHandlers) PreviewNumber(c echo.Context) error {
	date, err := parseDate(c.QueryParam("date"), "date")
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	alloc, err := h.invoiceService.PreviewNumber(c.Request().Context(), date)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	return c.JSON(http.StatusOK, alloc)
}

// CreateInvoice handles POST /invoices
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	var req submitInvoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return common.SendDomainError(c, "invoice", err)
	}

	header := req.InvoiceHeader
	date, err := parseDate(req.InvoiceDate, "invoice_date")
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	header.InvoiceDate = date

	bill, err := buildBill(models.KindInvoice, req.Items)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}

	invoice, err := h.invoiceService.Submit(c.Request().Context(), header, bill)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	return c.JSON(http.StatusCreated, invoice)
}

// ListInvoices handles GET /invoices
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	filter, err := documentFilter(c)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	invoices, err := h.invoiceService.List(c.Request().Context(), filter)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	return c.JSON(http.StatusOK, listResponse[*models.Invoice]{Data: invoices, Filter: filter, Count: len(invoices)})
}

// GetStats handles GET /invoices/stats
func (h *InvoiceHandlers) GetStats(c echo.Context) error {
	stats, err := h.invoiceService.Stats(c.Request().Context(), strings.TrimSpace(c.QueryParam("financial_year")))
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ExportRegister handles GET /invoices/register
// Defaults to the current financial year.
func (h *InvoiceHandlers) ExportRegister(c echo.Context) error {
	fy := strings.TrimSpace(c.QueryParam("financial_year"))
	if fy == "" {
		fy = gst.FinancialYear(h.now())
	}
	data, err := h.registers.InvoiceRegister(c.Request().Context(), fy)
	if err != nil {
		return common.SendDomainError(c, "invoice register", err)
	}
	return sendWorkbook(c, registerFilename("invoice", fy), data)
}

// GetInvoiceByNumber handles GET /invoices/by-number?number=
func (h *InvoiceHandlers) GetInvoiceByNumber(c echo.Context) error {
	number := strings.TrimSpace(c.QueryParam("number"))
	if err := common.ValidateDocumentNumber(number, models.KindInvoice.MaxNumberLength(), "number"); err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	invoice, err := h.invoiceService.GetByNumber(c.Request().Context(), number)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	return c.JSON(http.StatusOK, invoice)
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	invoice, err := h.invoiceService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	ctx := c.Request().Context()
	invoice, err := h.invoiceService.Get(ctx, id)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	if err := h.invoiceService.Delete(ctx, id); err != nil {
		return common.SendDomainError(c, "invoice", err)
	}

	object := services.ObjectName(models.KindInvoice, invoice.FinancialYear, invoice.InvoiceNumber)
	if err := h.archive.Remove(ctx, object); err != nil {
		h.log.WithError(err).WithField("object", object).Warn("archived invoice PDF not removed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ArchivePDF handles POST /invoices/:id/pdf
// Renders the stored invoice, uploads it and returns a presigned URL.
func (h *InvoiceHandlers) ArchivePDF(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	invoice, err := h.invoiceService.Get(ctx, id)
	if err != nil {
		return common.SendDomainError(c, "invoice", err)
	}
	doc, err := h.archive.ArchiveInvoice(ctx, invoice)
	if err != nil {
		config.LogError(h.log, "ArchivePDF", invoice.InvoiceNumber, err)
		return common.SendServerError(c, "Failed to archive invoice PDF")
	}
	return c.JSON(http.StatusCreated, doc)
}
