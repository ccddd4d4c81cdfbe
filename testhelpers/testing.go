package testhelpers

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"ecsbilling/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// the document tables. The test is skipped when no database is configured.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	schema, err := os.ReadFile(migrationPath("0001_documents.sql"))
	if err != nil {
		pool.Close()
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		pool.Close()
		t.Fatalf("Failed to apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE document_sequences, invoice_items, invoices, purchase_order_items, purchase_orders`); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset tables: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	t.Cleanup(func() { _ = db.Cleanup() })
	return db
}

func migrationPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "migrations", name)
}

// SampleInvoice builds a fully computed intra-state invoice with two items.
func SampleInvoice(number string, sequence int64) *models.Invoice {
	id := uuid.New()
	return &models.Invoice{
		ID:             id,
		InvoiceNumber:  number,
		FinancialYear:  "25-26",
		SequenceNumber: sequence,
		InvoiceHeader: models.InvoiceHeader{
			InvoiceDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Lakeshore Hospital",
			CustomerGSTIN: "32AABCL1234M1Z5",
			PlaceOfSupply: "Kerala",
		},
		Subtotal:       decimal.RequireFromString("3750"),
		TotalCGST:      decimal.RequireFromString("315"),
		TotalSGST:      decimal.RequireFromString("315"),
		TotalIGST:      decimal.Zero,
		TotalTaxAmount: decimal.RequireFromString("630"),
		GrandTotal:     decimal.RequireFromString("4380"),
		CreatedAt:      time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		Items: []models.StoredLineItem{
			storedItem(id, 0, "Nursing care", "2", "1500", "18"),
			storedItem(id, 1, "Consumables", "3", "250", "12"),
		},
	}
}

func storedItem(documentID uuid.UUID, order int, description, qty, price, rate string) models.StoredLineItem {
	quantity := decimal.RequireFromString(qty)
	unitPrice := decimal.RequireFromString(price)
	gstRate := decimal.RequireFromString(rate)
	taxable := quantity.Mul(unitPrice)
	half := gstRate.Div(decimal.NewFromInt(2))
	tax := taxable.Mul(half).Div(decimal.NewFromInt(100)).Round(2)
	return models.StoredLineItem{
		ID:         uuid.New(),
		DocumentID: documentID,
		ComputedLineItem: models.ComputedLineItem{
			LineItem: models.LineItem{
				Description: description,
				HSNSACCode:  "999312",
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				GSTRate:     gstRate,
			},
			ItemOrder:    order,
			TaxableValue: taxable,
			CGSTRate:     half,
			SGSTRate:     half,
			IGSTRate:     decimal.Zero,
			CGSTAmount:   tax,
			SGSTAmount:   tax,
			IGSTAmount:   decimal.Zero,
			TotalAmount:  taxable.Add(tax).Add(tax),
		},
	}
}
