package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"ecsbilling/internal/common"
	"ecsbilling/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var purchaseOrderRowColumns = []string{
	"id", "po_number", "financial_year", "sequence_number", "po_date", "expected_delivery_date",
	"vendor_name", "vendor_phone", "vendor_email", "vendor_gstin", "vendor_address",
	"delivery_address", "place_of_supply", "payment_terms", "delivery_terms", "notes", "terms_conditions", "status",
	"subtotal", "total_cgst", "total_sgst", "total_igst", "total_tax_amount", "grand_total",
	"created_by", "created_at",
}

type PurchaseOrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    PurchaseOrderRepository
	po      *models.PurchaseOrder
	userID  uuid.UUID
	context context.Context
}

func (suite *PurchaseOrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewPurchaseOrderRepo(mock)
	suite.context = context.Background()
	suite.userID = uuid.New()

	id := uuid.New()
	delivery := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	item := storedItem(id, 1, "Toner cartridge", "1000.00")
	item.Unit = "Box"
	suite.po = &models.PurchaseOrder{
		ID:             id,
		PONumber:       "ECS/PO/25-26/00003",
		FinancialYear:  "25-26",
		SequenceNumber: 3,
		PurchaseOrderHeader: models.PurchaseOrderHeader{
			PODate:               time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			ExpectedDeliveryDate: &delivery,
			VendorName:           "Office Supplies Co",
			VendorEmail:          "sales@officesupplies.example",
			PlaceOfSupply:        "Tamil Nadu",
			PaymentTerms:         "Net 30",
			TermsConditions:      []string{"Goods once sold will not be taken back."},
		},
		Status:         models.PurchaseOrderStatusDraft,
		Subtotal:       decimal.RequireFromString("1000.00"),
		TotalCGST:      decimal.Zero,
		TotalSGST:      decimal.Zero,
		TotalIGST:      decimal.RequireFromString("180.00"),
		TotalTaxAmount: decimal.RequireFromString("180.00"),
		GrandTotal:     decimal.RequireFromString("1180.00"),
		CreatedBy:      &suite.userID,
		CreatedAt:      time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
		Items:          []models.StoredLineItem{item},
	}
}

func (suite *PurchaseOrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestPurchaseOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseOrderRepoTestSuite))
}

func (suite *PurchaseOrderRepoTestSuite) poRow() []interface{} {
	po := suite.po
	return []interface{}{
		po.ID, po.PONumber, po.FinancialYear, po.SequenceNumber, po.PODate, po.ExpectedDeliveryDate,
		po.VendorName, po.VendorPhone, po.VendorEmail, po.VendorGSTIN, po.VendorAddress,
		po.DeliveryAddress, po.PlaceOfSupply, po.PaymentTerms, po.DeliveryTerms, po.Notes, po.TermsConditions, po.Status,
		po.Subtotal, po.TotalCGST, po.TotalSGST, po.TotalIGST, po.TotalTaxAmount, po.GrandTotal,
		po.CreatedBy, po.CreatedAt,
	}
}

func (suite *PurchaseOrderRepoTestSuite) TestSave_Success() {
	suite.mock.ExpectExec(regexp.QuoteMeta(insertPurchaseOrderSQL)).
		WithArgs(suite.poRow()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCopyFrom(pgx.Identifier{"purchase_order_items"}, itemColumns("purchase_order_id")).
		WillReturnResult(1)

	require.NoError(suite.T(), suite.repo.Save(suite.context, suite.po))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PurchaseOrderRepoTestSuite) TestSave_ItemsFailDeletesHeader() {
	suite.mock.ExpectExec(regexp.QuoteMeta(insertPurchaseOrderSQL)).
		WithArgs(suite.poRow()...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCopyFrom(pgx.Identifier{"purchase_order_items"}, itemColumns("purchase_order_id")).
		WillReturnError(errors.New("violates check constraint"))
	suite.mock.ExpectExec(regexp.QuoteMeta(deletePurchaseOrderSQL)).
		WithArgs(suite.po.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Save(suite.context, suite.po)
	assert.ErrorIs(suite.T(), err, common.ErrItemsNotSaved)
	assert.ErrorIs(suite.T(), err, common.ErrPersistence)

	var pe *common.PersistenceError
	require.ErrorAs(suite.T(), err, &pe)
	assert.Equal(suite.T(), "ECS/PO/25-26/00003", pe.Number)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PurchaseOrderRepoTestSuite) TestGetByNumber_LoadsItems() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectPurchaseOrderByNumberSQL)).
		WithArgs("ECS/PO/25-26/00003").
		WillReturnRows(pgxmock.NewRows(purchaseOrderRowColumns).AddRow(suite.poRow()...))
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectPurchaseOrderItems)).
		WithArgs(suite.po.ID).
		WillReturnRows(itemResultRows("purchase_order_id", suite.po.Items))

	got, err := suite.repo.GetByNumber(suite.context, "ECS/PO/25-26/00003")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), got.ExpectedDeliveryDate)
	assert.Equal(suite.T(), 2025, got.ExpectedDeliveryDate.Year())
	assert.Equal(suite.T(), suite.userID, *got.CreatedBy)
	assert.Equal(suite.T(), []string{"Goods once sold will not be taken back."}, got.TermsConditions)
	require.Len(suite.T(), got.Items, 1)
	assert.Equal(suite.T(), "Box", got.Items[0].Unit)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PurchaseOrderRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectPurchaseOrderByIDSQL)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByID(suite.context, id)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *PurchaseOrderRepoTestSuite) TestList_AllYears() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(listPurchaseOrdersSQL)).
		WithArgs("", 10, 20).
		WillReturnRows(pgxmock.NewRows(purchaseOrderRowColumns))

	got, err := suite.repo.List(suite.context, models.DocumentFilter{Limit: 10, Offset: 20})
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got)
	assert.Empty(suite.T(), got)
}

func (suite *PurchaseOrderRepoTestSuite) TestStats_NoDocumentsInYear() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(purchaseOrderStatsSQL)).
		WithArgs("24-25").
		WillReturnRows(pgxmock.NewRows([]string{"count", "coalesce"}).AddRow(int64(0), decimal.Zero))

	stats, err := suite.repo.Stats(suite.context, "24-25")
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), stats.Count)
	assert.True(suite.T(), stats.TotalAmount.IsZero())
}

func (suite *PurchaseOrderRepoTestSuite) TestStats_AllYears() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(purchaseOrderStatsSQL)).
		WithArgs("").
		WillReturnRows(pgxmock.NewRows([]string{"count", "coalesce"}).
			AddRow(int64(4), decimal.RequireFromString("2360.00")))

	stats, err := suite.repo.Stats(suite.context, "")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), stats.Count)
	assert.Equal(suite.T(), "2360", stats.TotalAmount.String())
}
