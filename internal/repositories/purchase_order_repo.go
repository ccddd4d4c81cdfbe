package repositories

import (
	"context"
	"errors"
	"fmt"

	"ecsbilling/internal/common"
	"ecsbilling/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const purchaseOrderColumns = `id, po_number, financial_year, sequence_number, po_date, expected_delivery_date,
		vendor_name, vendor_phone, vendor_email, vendor_gstin, vendor_address,
		delivery_address, place_of_supply, payment_terms, delivery_terms, notes, terms_conditions, status,
		subtotal, total_cgst, total_sgst, total_igst, total_tax_amount, grand_total,
		created_by, created_at`

var (
	insertPurchaseOrderSQL = `
		INSERT INTO purchase_orders (` + purchaseOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`
	selectPurchaseOrderByIDSQL = `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE id = $1
	`
	selectPurchaseOrderByNumberSQL = `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE po_number = $1
	`
	listPurchaseOrdersSQL = `
		SELECT ` + purchaseOrderColumns + `
		FROM purchase_orders
		WHERE ($1 = '' OR financial_year = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	deletePurchaseOrderSQL   = `DELETE FROM purchase_orders WHERE id = $1`
	purchaseOrderStatsSQL    = `SELECT COUNT(*), COALESCE(SUM(grand_total), 0) FROM purchase_orders WHERE ($1 = '' OR financial_year = $1)`
	selectPurchaseOrderItems = selectItemsSQL("purchase_order_items", "purchase_order_id")
)

type PurchaseOrderRepository interface {
	Save(ctx context.Context, po *models.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	GetByNumber(ctx context.Context, number string) (*models.PurchaseOrder, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]*models.PurchaseOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error)
}

type purchaseOrderRepo struct {
	db DBTX
}

func NewPurchaseOrderRepo(db DBTX) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Save(ctx context.Context, po *models.PurchaseOrder) error {
	save := twoStepSave{
		number:     po.PONumber,
		documentID: po.ID,
		headerSQL:  insertPurchaseOrderSQL,
		headerArgs: []interface{}{
			po.ID, po.PONumber, po.FinancialYear, po.SequenceNumber, po.PODate, po.ExpectedDeliveryDate,
			po.VendorName, po.VendorPhone, po.VendorEmail, po.VendorGSTIN, po.VendorAddress,
			po.DeliveryAddress, po.PlaceOfSupply, po.PaymentTerms, po.DeliveryTerms, po.Notes, po.TermsConditions, po.Status,
			po.Subtotal, po.TotalCGST, po.TotalSGST, po.TotalIGST, po.TotalTaxAmount, po.GrandTotal,
			po.CreatedBy, po.CreatedAt,
		},
		itemsTable: "purchase_order_items",
		itemCols:   itemColumns("purchase_order_id"),
		items:      itemRows(po.ID, po.Items),
		deleteSQL:  deletePurchaseOrderSQL,
	}
	return save.run(ctx, r.db)
}

func scanPurchaseOrder(row pgx.Row) (*models.PurchaseOrder, error) {
	po := &models.PurchaseOrder{}
	err := row.Scan(&po.ID, &po.PONumber, &po.FinancialYear, &po.SequenceNumber, &po.PODate, &po.ExpectedDeliveryDate,
		&po.VendorName, &po.VendorPhone, &po.VendorEmail, &po.VendorGSTIN, &po.VendorAddress,
		&po.DeliveryAddress, &po.PlaceOfSupply, &po.PaymentTerms, &po.DeliveryTerms, &po.Notes, &po.TermsConditions, &po.Status,
		&po.Subtotal, &po.TotalCGST, &po.TotalSGST, &po.TotalIGST, &po.TotalTaxAmount, &po.GrandTotal,
		&po.CreatedBy, &po.CreatedAt)
	if err != nil {
		return nil, err
	}
	return po, nil
}

func (r *purchaseOrderRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if po.Items, err = listItems(ctx, r.db, selectPurchaseOrderItems, po.ID); err != nil {
		return nil, fmt.Errorf("load items of %s: %w", po.PONumber, err)
	}
	return po, nil
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	return r.getOne(ctx, selectPurchaseOrderByIDSQL, id)
}

func (r *purchaseOrderRepo) GetByNumber(ctx context.Context, number string) (*models.PurchaseOrder, error) {
	return r.getOne(ctx, selectPurchaseOrderByNumberSQL, number)
}

func (r *purchaseOrderRepo) List(ctx context.Context, filter models.DocumentFilter) ([]*models.PurchaseOrder, error) {
	rows, err := r.db.Query(ctx, listPurchaseOrdersSQL, filter.FinancialYear, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*models.PurchaseOrder{}
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, po)
	}
	return orders, rows.Err()
}

func (r *purchaseOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deletePurchaseOrderSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *purchaseOrderRepo) Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error) {
	stats := &models.DocumentStats{FinancialYear: financialYear}
	if err := r.db.QueryRow(ctx, purchaseOrderStatsSQL, financialYear).Scan(&stats.Count, &stats.TotalAmount); err != nil {
		return nil, err
	}
	return stats, nil
}
