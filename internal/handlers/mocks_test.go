package handlers

import (
	"context"
	"time"

	"ecsbilling/internal/models"
	"ecsbilling/internal/numbering"
	"ecsbilling/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) PreviewNumber(ctx context.Context, date time.Time) (numbering.Allocation, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(numbering.Allocation), args.Error(1)
}

func (m *MockInvoiceService) Submit(ctx context.Context, header models.InvoiceHeader, bill *services.Bill) (*models.Invoice, error) {
	args := m.Called(ctx, header, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, filter models.DocumentFilter) ([]*models.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceService) Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error) {
	args := m.Called(ctx, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentStats), args.Error(1)
}

type MockPurchaseOrderService struct {
	mock.Mock
}

func (m *MockPurchaseOrderService) PreviewNumber(ctx context.Context, date time.Time) (numbering.Allocation, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(numbering.Allocation), args.Error(1)
}

func (m *MockPurchaseOrderService) Submit(ctx context.Context, header models.PurchaseOrderHeader, bill *services.Bill) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, header, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) GetByNumber(ctx context.Context, number string) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) List(ctx context.Context, filter models.DocumentFilter) ([]*models.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderService) Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error) {
	args := m.Called(ctx, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentStats), args.Error(1)
}

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) ArchiveInvoice(ctx context.Context, invoice *models.Invoice) (*services.ArchivedDocument, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ArchivedDocument), args.Error(1)
}

func (m *MockArchiver) ArchivePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*services.ArchivedDocument, error) {
	args := m.Called(ctx, po)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ArchivedDocument), args.Error(1)
}

func (m *MockArchiver) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

type MockRegisterExporter struct {
	mock.Mock
}

func (m *MockRegisterExporter) InvoiceRegister(ctx context.Context, financialYear string) ([]byte, error) {
	args := m.Called(ctx, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRegisterExporter) PurchaseOrderRegister(ctx context.Context, financialYear string) ([]byte, error) {
	args := m.Called(ctx, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
