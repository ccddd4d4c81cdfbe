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

const invoiceColumns = `id, invoice_number, financial_year, sequence_number, invoice_date,
		customer_name, customer_phone, customer_gstin, customer_address,
		shipping_name, shipping_phone, shipping_address, place_of_supply,
		subtotal, total_cgst, total_sgst, total_igst, total_tax_amount, grand_total,
		created_by, created_at`

var (
	insertInvoiceSQL = `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	selectInvoiceByIDSQL = `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1
	`
	selectInvoiceByNumberSQL = `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_number = $1
	`
	listInvoicesSQL = `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR financial_year = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	deleteInvoiceSQL   = `DELETE FROM invoices WHERE id = $1`
	invoiceStatsSQL    = `SELECT COUNT(*), COALESCE(SUM(grand_total), 0) FROM invoices WHERE ($1 = '' OR financial_year = $1)`
	selectInvoiceItems = selectItemsSQL("invoice_items", "invoice_id")
)

type InvoiceRepository interface {
	Save(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	List(ctx context.Context, filter models.DocumentFilter) ([]*models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error)
}

type invoiceRepo struct {
	db DBTX
}

func NewInvoiceRepo(db DBTX) InvoiceRepository {
	return &invoiceRepo{db: db}
}

// Save stores the invoice header and then its items, deleting the header
// again if the items cannot be written.
func (r *invoiceRepo) Save(ctx context.Context, invoice *models.Invoice) error {
	save := twoStepSave{
		number:     invoice.InvoiceNumber,
		documentID: invoice.ID,
		headerSQL:  insertInvoiceSQL,
		headerArgs: []interface{}{
			invoice.ID, invoice.InvoiceNumber, invoice.FinancialYear, invoice.SequenceNumber, invoice.InvoiceDate,
			invoice.CustomerName, invoice.CustomerPhone, invoice.CustomerGSTIN, invoice.CustomerAddress,
			invoice.ShippingName, invoice.ShippingPhone, invoice.ShippingAddress, invoice.PlaceOfSupply,
			invoice.Subtotal, invoice.TotalCGST, invoice.TotalSGST, invoice.TotalIGST, invoice.TotalTaxAmount, invoice.GrandTotal,
			invoice.CreatedBy, invoice.CreatedAt,
		},
		itemsTable: "invoice_items",
		itemCols:   itemColumns("invoice_id"),
		items:      itemRows(invoice.ID, invoice.Items),
		deleteSQL:  deleteInvoiceSQL,
	}
	return save.run(ctx, r.db)
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.FinancialYear, &inv.SequenceNumber, &inv.InvoiceDate,
		&inv.CustomerName, &inv.CustomerPhone, &inv.CustomerGSTIN, &inv.CustomerAddress,
		&inv.ShippingName, &inv.ShippingPhone, &inv.ShippingAddress, &inv.PlaceOfSupply,
		&inv.Subtotal, &inv.TotalCGST, &inv.TotalSGST, &inv.TotalIGST, &inv.TotalTaxAmount, &inv.GrandTotal,
		&inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv.Items, err = listItems(ctx, r.db, selectInvoiceItems, inv.ID); err != nil {
		return nil, fmt.Errorf("load items of %s: %w", inv.InvoiceNumber, err)
	}
	return inv, nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return r.getOne(ctx, selectInvoiceByIDSQL, id)
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return r.getOne(ctx, selectInvoiceByNumberSQL, number)
}

// List returns headers only, newest first.
func (r *invoiceRepo) List(ctx context.Context, filter models.DocumentFilter) ([]*models.Invoice, error) {
	rows, err := r.db.Query(ctx, listInvoicesSQL, filter.FinancialYear, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Delete removes an invoice; its items go with it through the foreign key cascade.
func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteInvoiceSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Stats(ctx context.Context, financialYear string) (*models.DocumentStats, error) {
	stats := &models.DocumentStats{FinancialYear: financialYear}
	if err := r.db.QueryRow(ctx, invoiceStatsSQL, financialYear).Scan(&stats.Count, &stats.TotalAmount); err != nil {
		return nil, err
	}
	return stats, nil
}
