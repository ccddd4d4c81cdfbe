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

// PurchaseOrderHandlers handles HTTP requests for purchase orders
type PurchaseOrderHandlers struct {
	poService services.PurchaseOrderServiceInterface
	archive   DocumentArchiver
	registers RegisterExporter
	now       func() time.Time
	log       *logrus.Entry
}

func NewPurchaseOrderHandlers(poService services.PurchaseOrderServiceInterface, archive DocumentArchiver, registers RegisterExporter, log *logrus.Entry) *PurchaseOrderHandlers {
	return &PurchaseOrderHandlers{
		poService: poService,
		archive:   archive,
		registers: registers,
		now:       time.Now,
		log:       log.WithField("component", "purchase_order_handlers"),
	}
}

type submitPurchaseOrderRequest struct {
	models.PurchaseOrderHeader `validate:"-"`
	PODate                     string            `json:"po_date"`
	ExpectedDeliveryDate       string            `json:"expected_delivery_date"`
	Items                      []models.LineItem `json:"items" validate:"required,min=1,max=100"`
}

func (h *PurchaseOrderHandlers) RegisterRoutes(g *echo.Group) {
	orders := g.Group("/purchase-orders")
	orders.GET("/next-number", h.PreviewNumber)
	orders.POST("", h.CreatePurchaseOrder)
	orders.GET("", h.ListPurchaseOrders)
	orders.GET("/stats", h.GetStats)
	orders.GET("/register", h.ExportRegister)
	orders.GET("/by-number", h.GetPurchaseOrderByNumber)
	orders.GET("/:id", h.GetPurchaseOrder)
	orders.DELETE("/:id", h.DeletePurchaseOrder)
	orders.POST("/:id/pdf", h.ArchivePDF)
}

// PreviewNumber handles GET /purchase-orders/next-number
func (h *PurchaseOrderHandlers) PreviewNumber(c echo.Context) error {
	date, err := parseDate(c.QueryParam("date"), "date")
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	alloc, err := h.poService.PreviewNumber(c.Request().Context(), date)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	return c.JSON(http.StatusOK, alloc)
}

// CreatePurchaseOrder handles POST /purchase-orders
func (h *PurchaseOrderHandlers) CreatePurchaseOrder(c echo.Context) error {
	var req submitPurchaseOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}

	header := req.PurchaseOrderHeader
	poDate, err := parseDate(req.PODate, "po_date")
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	header.PODate = poDate

	expected, err := parseDate(req.ExpectedDeliveryDate, "expected_delivery_date")
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	header.ExpectedDeliveryDate = nil
	if !expected.IsZero() {
		header.ExpectedDeliveryDate = &expected
	}

	bill, err := buildBill(models.KindPurchaseOrder, req.Items)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}

	po, err := h.poService.Submit(c.Request().Context(), header, bill)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	return c.JSON(http.StatusCreated, po)
}

// ListPurchaseOrders handles GET /purchase-orders
func (h *PurchaseOrderHandlers) ListPurchaseOrders(c echo.Context) error {
	filter, err := documentFilter(c)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	orders, err := h.poService.List(c.Request().Context(), filter)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	return c.JSON(http.StatusOK, listResponse[*models.PurchaseOrder]{Data: orders, Filter: filter, Count: len(orders)})
}

func (h *PurchaseOrderHandlers) GetStats(c echo.Context) error {
	stats, err := h.poService.Stats(c.Request().Context(), strings.TrimSpace(c.QueryParam("financial_year")))
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *PurchaseOrderHandlers) ExportRegister(c echo.Context) error {
	fy := strings.TrimSpace(c.QueryParam("financial_year"))
	if fy == "" {
		fy = gst.FinancialYear(h.now())
	}
	data, err := h.registers.PurchaseOrderRegister(c.Request().Context(), fy)
	if err != nil {
		return common.SendDomainError(c, "purchase order register", err)
	}
	return sendWorkbook(c, registerFilename("purchase-order", fy), data)
}

func (h *PurchaseOrderHandlers) GetPurchaseOrderByNumber(c echo.Context) error {
	number := strings.TrimSpace(c.QueryParam("number"))
	if err := common.ValidateDocumentNumber(number, models.KindPurchaseOrder.MaxNumberLength(), "number"); err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	po, err := h.poService.GetByNumber(c.Request().Context(), number)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	return c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandlers) GetPurchaseOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	po, err := h.poService.Get(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	return c.JSON(http.StatusOK, po)
}

func (h *PurchaseOrderHandlers) DeletePurchaseOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	ctx := c.Request().Context()
	po, err := h.poService.Get(ctx, id)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	if err := h.poService.Delete(ctx, id); err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}

	object := services.ObjectName(models.KindPurchaseOrder, po.FinancialYear, po.PONumber)
	if err := h.archive.Remove(ctx, object); err != nil {
		h.log.WithError(err).WithField("object", object).Warn("archived purchase order PDF not removed")
	}
	return c.NoContent(http.StatusNoContent)
}

// ArchivePDF handles POST /purchase-orders/:id/pdf
func (h *PurchaseOrderHandlers) ArchivePDF(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	po, err := h.poService.Get(ctx, id)
	if err != nil {
		return common.SendDomainError(c, "purchase order", err)
	}
	doc, err := h.archive.ArchivePurchaseOrder(ctx, po)
	if err != nil {
		config.LogError(h.log, "ArchivePDF", po.PONumber, err)
		return common.SendServerError(c, "Failed to archive purchase order PDF")
	}
	return c.JSON(http.StatusCreated, doc)
}
