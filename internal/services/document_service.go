package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecsbilling/internal/caching"
	"ecsbilling/internal/common"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"
	"ecsbilling/internal/numbering"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DocumentNumberer previews and commits document numbers. *numbering.Service
// implements it.
type DocumentNumberer interface {
	PreviewNext(ctx context.Context, kind models.DocumentKind, date time.Time) (numbering.Allocation, error)
	CommitNext(ctx context.Context, kind models.DocumentKind, date time.Time) (numbering.Allocation, error)
}

// documentDeps is shared by the invoice and purchase order services.
type documentDeps struct {
	numbers DocumentNumberer
	calc    *gst.Calculator
	cache   caching.CacheService
	now     func() time.Time
	log     *logrus.Entry
}

func today(now func() time.Time) time.Time {
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// canonicalPlace resolves a state name or code to the state's name.
func canonicalPlace(place string) (string, error) {
	if strings.TrimSpace(place) == "" {
		return "", common.NewValidationError("place_of_supply", "is required")
	}
	state, ok := gst.LookupState(place)
	if !ok {
		return "", common.NewValidationError("place_of_supply", "is not a recognised state or union territory")
	}
	return state.Name, nil
}

func normalizeGSTIN(gstin *string, field string) error {
	*gstin = common.NormalizeGSTIN(*gstin)
	return common.ValidateGSTIN(*gstin, field)
}

func storedItems(documentID uuid.UUID, totals models.DocumentTotals) []models.StoredLineItem {
	items := make([]models.StoredLineItem, 0, len(totals.Items))
	for _, it := range totals.Items {
		items = append(items, models.StoredLineItem{
			ID:               uuid.New(),
			DocumentID:       documentID,
			ComputedLineItem: it,
		})
	}
	return items
}

func createdBy(ctx context.Context) *uuid.UUID {
	if id, ok := common.GetUserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}

// cachedStats serves statistics from the cache when possible. An empty
// financial year covers every year.
// Cache failures are logged and never fail the request.
func (d *documentDeps) cachedStats(ctx context.Context, kind models.DocumentKind, financialYear string,
	load func(context.Context, string) (*models.DocumentStats, error)) (*models.DocumentStats, error) {
	if err := common.ValidateFinancialYear(financialYear, "financial_year"); err != nil {
		return nil, err
	}

	if d.cache != nil {
		stats, err := d.cache.GetDocumentStats(ctx, kind, financialYear)
		if err != nil {
			d.log.WithError(err).WithField("financial_year", financialYear).Warn("stats cache read failed")
		} else if stats != nil {
			return stats, nil
		}
	}

	stats, err := load(ctx, financialYear)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if err := d.cache.SetDocumentStats(ctx, kind, stats); err != nil {
			d.log.WithError(err).WithField("financial_year", financialYear).Warn("stats cache write failed")
		}
	}
	return stats, nil
}

func (d *documentDeps) invalidateStats(ctx context.Context, kind models.DocumentKind, financialYear string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.InvalidateDocumentStats(ctx, kind, financialYear); err != nil {
		d.log.WithError(err).WithField("financial_year", financialYear).Warn("stats cache invalidation failed")
	}
}

func normalizeFilter(filter models.DocumentFilter) (models.DocumentFilter, error) {
	if filter.FinancialYear != "" {
		if err := common.ValidateFinancialYear(filter.FinancialYear, "financial_year"); err != nil {
			return filter, err
		}
	}
	limit, offset, err := common.ValidatePaginationParams(filter.Limit, filter.Offset)
	if err != nil {
		return filter, err
	}
	filter.Limit, filter.Offset = limit, offset
	return filter, nil
}

// failPersistence moves bill to Failed and makes sure the returned error
// carries the consumed number.
func failPersistence(bill *Bill, number string, err error) error {
	_ = bill.markFailed()
	var pe *common.PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &common.PersistenceError{Number: number, Stage: common.StageHeader, Err: err}
}
