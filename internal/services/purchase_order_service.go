package services

import (
	"context"
	"strings"
	"time"

	"ecsbilling/internal/caching"
	"ecsbilling/internal/common"
	"ecsbilling/internal/config"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"
	"ecsbilling/internal/numbering"
	"ecsbilling/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PurchaseOrderServiceInterface interface {
	PreviewNumber(ctx context.Context, date time.Time) (numbering.Allocation, error)
	Submit(ctx context.Context, header models.PurchaseOrderHeader, bill *Bill) (*models.PurchaseOrder, error)

	Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*models.PurchaseOrder, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]*models.PurchaseOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error)
}

type purchaseOrderService struct {
	documentDeps
	repo repositories.PurchaseOrderRepository
	firm config.FirmProfile
}

// NewPurchaseOrderService creates a purchase order service. Orders without a
// delivery address are delivered to the firm's address.
func NewPurchaseOrderService(repo repositories.PurchaseOrderRepository, numbers DocumentNumberer, calc *gst.Calculator,
	cache caching.CacheService, firm config.FirmProfile, log *logrus.Entry) PurchaseOrderServiceInterface {
	return &purchaseOrderService{
		documentDeps: documentDeps{
			numbers: numbers,
			calc:    calc,
			cache:   cache,
			now:     time.Now,
			log:     log.WithField("component", "purchase_order_service"),
		},
		repo: repo,
		firm: firm,
	}
}

func (s *purchaseOrderService) PreviewNumber(ctx context.Context, date time.Time) (numbering.Allocation, error) {
	if date.IsZero() {
		date = today(s.now)
	}
	return s.numbers.PreviewNext(ctx, models.KindPurchaseOrder, date)
}

func (s *purchaseOrderService) validateHeader(h *models.PurchaseOrderHeader) error {
	h.VendorName = strings.TrimSpace(h.VendorName)
	h.VendorPhone = strings.TrimSpace(h.VendorPhone)
	h.VendorEmail = strings.TrimSpace(h.VendorEmail)
	h.VendorAddress = strings.TrimSpace(h.VendorAddress)
	h.DeliveryAddress = strings.TrimSpace(h.DeliveryAddress)
	h.PaymentTerms = strings.TrimSpace(h.PaymentTerms)
	h.DeliveryTerms = strings.TrimSpace(h.DeliveryTerms)
	h.Notes = strings.TrimSpace(h.Notes)
	if h.PODate.IsZero() {
		h.PODate = today(s.now)
	}
	if h.DeliveryAddress == "" {
		h.DeliveryAddress = s.firm.Address
	}

	terms := make([]string, 0, len(h.TermsConditions))
	for _, t := range h.TermsConditions {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		terms = append(terms, gst.DefaultTermsConditions...)
	}
	h.TermsConditions = terms

	place, err := canonicalPlace(h.PlaceOfSupply)
	if err != nil {
		return err
	}
	h.PlaceOfSupply = place

	if err := common.ValidateStruct(h); err != nil {
		return err
	}
	if h.ExpectedDeliveryDate != nil && h.ExpectedDeliveryDate.Before(h.PODate) {
		return common.NewValidationError("expected_delivery_date", "cannot be before the PO date")
	}
	return normalizeGSTIN(&h.VendorGSTIN, "vendor_gstin")
}

// Submit follows the same steps as invoice submission with the PO scope.
func (s *purchaseOrderService) Submit(ctx context.Context, header models.PurchaseOrderHeader, bill *Bill) (*models.PurchaseOrder, error) {
	if err := s.validateHeader(&header); err != nil {
		return nil, err
	}
	if err := bill.readyForNumbering(models.KindPurchaseOrder); err != nil {
		return nil, err
	}

	alloc, err := s.numbers.CommitNext(ctx, models.KindPurchaseOrder, header.PODate)
	if err != nil {
		s.log.WithError(err).Error("purchase order number allocation failed")
		return nil, err
	}
	if err := bill.markNumbered(alloc.Number); err != nil {
		return nil, err
	}
	log := s.log.WithField("po_number", alloc.Number)

	totals := bill.Totals(s.calc, header.PlaceOfSupply)
	id := uuid.New()
	po := &models.PurchaseOrder{
		ID:                  id,
		PONumber:            alloc.Number,
		FinancialYear:       alloc.FinancialYear,
		SequenceNumber:      alloc.Sequence,
		PurchaseOrderHeader: header,
		Status:              models.PurchaseOrderStatusDraft,
		Subtotal:            totals.Subtotal,
		TotalCGST:           totals.TotalCGST,
		TotalSGST:           totals.TotalSGST,
		TotalIGST:           totals.TotalIGST,
		TotalTaxAmount:      totals.TotalTaxAmount,
		GrandTotal:          totals.GrandTotal,
		CreatedBy:           createdBy(ctx),
		CreatedAt:           s.now().UTC(),
		Items:               storedItems(id, totals),
	}

	if err := s.repo.Save(ctx, po); err != nil {
		err = failPersistence(bill, alloc.Number, err)
		log.WithError(err).Error("purchase order could not be saved, number is consumed")
		return nil, err
	}
	_ = bill.markPersisted()

	s.invalidateStats(ctx, models.KindPurchaseOrder, po.FinancialYear)
	log.WithFields(logrus.Fields{
		"grand_total": po.GrandTotal.StringFixed(2),
		"items":       len(po.Items),
	}).Info("purchase order saved")
	return po, nil
}

func (s *purchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *purchaseOrderService) GetByNumber(ctx context.Context, number string) (*models.PurchaseOrder, error) {
	number = strings.TrimSpace(number)
	if err := common.ValidateDocumentNumber(number, models.KindPurchaseOrder.MaxNumberLength(), "po_number"); err != nil {
		return nil, err
	}
	return s.repo.GetByNumber(ctx, number)
}

func (s *purchaseOrderService) List(ctx context.Context, filter models.DocumentFilter) ([]*models.PurchaseOrder, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *purchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	po, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx, models.KindPurchaseOrder, po.FinancialYear)
	s.log.WithField("po_number", po.PONumber).Info("purchase order deleted")
	return nil
}

func (s *purchaseOrderService) Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error) {
	return s.cachedStats(ctx, models.KindPurchaseOrder, financialYear, s.repo.Stats)
}
