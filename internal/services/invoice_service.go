package services

import (
	"context"
	"strings"
	"time"

	"ecsbilling/internal/caching"
	"ecsbilling/internal/common"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"
	"ecsbilling/internal/numbering"
	"ecsbilling/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InvoiceServiceInterface defines the interface for invoice service
type InvoiceServiceInterface interface {
	PreviewNumber(ctx context.Context, date time.Time) (numbering.Allocation, error)
	Submit(ctx context.Context, header models.InvoiceHeader, bill *Bill) (*models.Invoice, error)

	Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]*models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error)
}

type invoiceService struct {
	documentDeps
	repo repositories.InvoiceRepository
}

// NewInvoiceService creates a new invoice service. cache may be nil.
func NewInvoiceService(repo repositories.InvoiceRepository, numbers DocumentNumberer, calc *gst.Calculator,
	cache caching.CacheService, log *logrus.Entry) InvoiceServiceInterface {
	return &invoiceService{
		documentDeps: documentDeps{
			numbers: numbers,
			calc:    calc,
			cache:   cache,
			now:     time.Now,
			log:     log.WithField("component", "invoice_service"),
		},
		repo: repo,
	}
}

func (s *invoiceService) PreviewNumber(ctx context.Context, date time.Time) (numbering.Allocation, error) {
	if date.IsZero() {
		date = today(s.now)
	}
	return s.numbers.PreviewNext(ctx, models.KindInvoice, date)
}

// validateHeader normalises h in place and rejects it before any number is
// consumed.
func (s *invoiceService) validateHeader(h *models.InvoiceHeader) error {
	h.CustomerName = strings.TrimSpace(h.CustomerName)
	h.CustomerPhone = strings.TrimSpace(h.CustomerPhone)
	h.CustomerAddress = strings.TrimSpace(h.CustomerAddress)
	h.ShippingName = strings.TrimSpace(h.ShippingName)
	h.ShippingPhone = strings.TrimSpace(h.ShippingPhone)
	h.ShippingAddress = strings.TrimSpace(h.ShippingAddress)
	if h.InvoiceDate.IsZero() {
		h.InvoiceDate = today(s.now)
	}

	place, err := canonicalPlace(h.PlaceOfSupply)
	if err != nil {
		return err
	}
	h.PlaceOfSupply = place

	if err := common.ValidateStruct(h); err != nil {
		return err
	}
	return normalizeGSTIN(&h.CustomerGSTIN, "customer_gstin")
}

// Submit validates the header and bill, commits the next invoice number and
// stores the invoice. A failure after numbering returns a
// *common.PersistenceError carrying the consumed number; it is not retried.
func (s *invoiceService) Submit(ctx context.Context, header models.InvoiceHeader, bill *Bill) (*models.Invoice, error) {
	if err := s.validateHeader(&header); err != nil {
		return nil, err
	}
	if err := bill.readyForNumbering(models.KindInvoice); err != nil {
		return nil, err
	}

	alloc, err := s.numbers.CommitNext(ctx, models.KindInvoice, header.InvoiceDate)
	if err != nil {
		s.log.WithError(err).Error("invoice number allocation failed")
		return nil, err
	}
	if err := bill.markNumbered(alloc.Number); err != nil {
		return nil, err
	}
	log := s.log.WithField("invoice_number", alloc.Number)

	totals := bill.Totals(s.calc, header.PlaceOfSupply)
	id := uuid.New()
	invoice := &models.Invoice{
		ID:             id,
		InvoiceNumber:  alloc.Number,
		FinancialYear:  alloc.FinancialYear,
		SequenceNumber: alloc.Sequence,
		InvoiceHeader:  header,
		Subtotal:       totals.Subtotal,
		TotalCGST:      totals.TotalCGST,
		TotalSGST:      totals.TotalSGST,
		TotalIGST:      totals.TotalIGST,
		TotalTaxAmount: totals.TotalTaxAmount,
		GrandTotal:     totals.GrandTotal,
		CreatedBy:      createdBy(ctx),
		CreatedAt:      s.now().UTC(),
		Items:          storedItems(id, totals),
	}

	if err := s.repo.Save(ctx, invoice); err != nil {
		err = failPersistence(bill, alloc.Number, err)
		log.WithError(err).Error("invoice could not be saved, number is consumed")
		return nil, err
	}
	_ = bill.markPersisted()

	s.invalidateStats(ctx, models.KindInvoice, invoice.FinancialYear)
	log.WithFields(logrus.Fields{
		"grand_total": invoice.GrandTotal.StringFixed(2),
		"items":       len(invoice.Items),
	}).Info("invoice saved")
	return invoice, nil
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	number = strings.TrimSpace(number)
	if err := common.ValidateDocumentNumber(number, models.KindInvoice.MaxNumberLength(), "invoice_number"); err != nil {
		return nil, err
	}
	return s.repo.GetByNumber(ctx, number)
}

func (s *invoiceService) List(ctx context.Context, filter models.DocumentFilter) ([]*models.Invoice, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx, models.KindInvoice, invoice.FinancialYear)
	s.log.WithField("invoice_number", invoice.InvoiceNumber).Info("invoice deleted")
	return nil
}

func (s *invoiceService) Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error) {
	return s.cachedStats(ctx, models.KindInvoice, financialYear, s.repo.Stats)
}
