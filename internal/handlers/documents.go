package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecsbilling/internal/common"
	"ecsbilling/internal/models"
	"ecsbilling/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	dateLayout = "2006-01-02"
	xlsxMIME   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DocumentArchiver renders a stored document to PDF and returns where it was
// kept. Remove drops the archived copy of a deleted document.
type DocumentArchiver interface {
	ArchiveInvoice(ctx context.Context, invoice *models.Invoice) (*services.ArchivedDocument, error)
	ArchivePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*services.ArchivedDocument, error)
	Remove(ctx context.Context, objectName string) error
}

// RegisterExporter builds the xlsx registers for a financial year.
type RegisterExporter interface {
	InvoiceRegister(ctx context.Context, financialYear string) ([]byte, error)
	PurchaseOrderRegister(ctx context.Context, financialYear string) ([]byte, error)
}

// RequestValidator plugs the shared struct validator into echo.
type RequestValidator struct{}

func (RequestValidator) Validate(i interface{}) error {
	return common.ValidateStruct(i)
}

// parseDate reads a yyyy-mm-dd value. Empty input yields the zero time so
// the service can default it.
func parseDate(value, field string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, common.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// buildBill adds each item in order and reports the first rejected one by
// its position.
func buildBill(kind models.DocumentKind, items []models.LineItem) (*services.Bill, error) {
	bill := services.NewBill(kind)
	for i, item := range items {
		if err := bill.AddItem(item); err != nil {
			var vErr *common.ValidationError
			if errors.As(err, &vErr) {
				return nil, common.NewValidationError(fmt.Sprintf("items[%d].%s", i, vErr.Field), vErr.Message)
			}
			return nil, err
		}
	}
	return bill, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return common.NewValidationError("body", "invalid request format")
	}
	return c.Validate(req)
}

func documentFilter(c echo.Context) (models.DocumentFilter, error) {
	filter := models.DocumentFilter{FinancialYear: strings.TrimSpace(c.QueryParam("financial_year"))}
	var err error
	if v := c.QueryParam("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			return filter, common.NewValidationError("limit", "must be a number")
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil {
			return filter, common.NewValidationError("offset", "must be a number")
		}
	}
	return filter, nil
}

func registerFilename(prefix, financialYear string) string {
	return fmt.Sprintf("%s-register-%s.xlsx", prefix, financialYear)
}

func sendWorkbook(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxMIME, data)
}

// listResponse wraps a page of documents with the filter that produced it.
type listResponse[T any] struct {
	Data   []T                   `json:"data"`
	Filter models.DocumentFilter `json:"filter"`
	Count  int                   `json:"count"`
}
