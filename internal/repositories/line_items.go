package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecsbilling/internal/common"
	"ecsbilling/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const rollbackTimeout = 5 * time.Second

// lineItemColumns lists item columns after the id and parent key columns.
var lineItemColumns = []string{
	"description", "hsn_sac_code", "quantity", "unit", "unit_price", "taxable_value",
	"gst_rate", "cgst_rate", "sgst_rate", "igst_rate",
	"cgst_amount", "sgst_amount", "igst_amount", "total_amount", "item_order",
}

func itemColumns(parentKey string) []string {
	return append([]string{"id", parentKey}, lineItemColumns...)
}

func itemRows(documentID uuid.UUID, items []models.StoredLineItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{
			it.ID, documentID,
			it.Description, it.HSNSACCode, it.Quantity, it.Unit, it.UnitPrice, it.TaxableValue,
			it.GSTRate, it.CGSTRate, it.SGSTRate, it.IGSTRate,
			it.CGSTAmount, it.SGSTAmount, it.IGSTAmount, it.TotalAmount, it.ItemOrder,
		})
	}
	return rows
}

func selectItemsSQL(table, parentKey string) string {
	return fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY item_order ASC
	`, strings.Join(itemColumns(parentKey), ", "), table, parentKey)
}

func listItems(ctx context.Context, db DBTX, query string, documentID uuid.UUID) ([]models.StoredLineItem, error) {
	rows, err := db.Query(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.StoredLineItem{}
	for rows.Next() {
		var it models.StoredLineItem
		if err := rows.Scan(&it.ID, &it.DocumentID,
			&it.Description, &it.HSNSACCode, &it.Quantity, &it.Unit, &it.UnitPrice, &it.TaxableValue,
			&it.GSTRate, &it.CGSTRate, &it.SGSTRate, &it.IGSTRate,
			&it.CGSTAmount, &it.SGSTAmount, &it.IGSTAmount, &it.TotalAmount, &it.ItemOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// twoStepSave writes a document header and then its items. There is no
// enclosing transaction: when the items write fails the header is deleted
// again and the failure is reported as an items-stage PersistenceError.
type twoStepSave struct {
	number     string
	documentID uuid.UUID
	headerSQL  string
	headerArgs []interface{}
	itemsTable string
	itemCols   []string
	items      [][]interface{}
	deleteSQL  string
}

func (s twoStepSave) run(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, s.headerSQL, s.headerArgs...); err != nil {
		return &common.PersistenceError{Number: s.number, Stage: common.StageHeader, Err: err}
	}

	n, err := db.CopyFrom(ctx, pgx.Identifier{s.itemsTable}, s.itemCols, pgx.CopyFromRows(s.items))
	if err == nil && n != int64(len(s.items)) {
		err = fmt.Errorf("copied %d of %d items", n, len(s.items))
	}
	if err == nil {
		return nil
	}

	// The request context may already be done; the delete still has to run.
	rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()
	_, rbErr := db.Exec(rbCtx, s.deleteSQL, s.documentID)

	return &common.PersistenceError{
		Number:            s.number,
		Stage:             common.StageItems,
		RollbackAttempted: true,
		RollbackErr:       rbErr,
		Err:               err,
	}
}
