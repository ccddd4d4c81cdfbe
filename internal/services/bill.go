package services

import (
	"errors"
	"fmt"
	"strings"

	"ecsbilling/internal/common"
	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"
)

var ErrInvalidTransition = errors.New("invalid document state transition")

// Bill collects the line items of one document while it is being prepared
// and tracks the document's lifecycle state. It is not safe for concurrent use.
type Bill struct {
	kind   models.DocumentKind
	items  []models.LineItem
	state  models.DocumentState
	number string
}

func NewBill(kind models.DocumentKind) *Bill {
	return &Bill{kind: kind, state: models.StateDraft}
}

func (b *Bill) Kind() models.DocumentKind   { return b.kind }
func (b *Bill) State() models.DocumentState { return b.state }
func (b *Bill) Len() int                    { return len(b.items) }

// Number is the committed document number, empty before numbering.
func (b *Bill) Number() string { return b.number }

// Items returns a copy of the current items.
func (b *Bill) Items() []models.LineItem {
	out := make([]models.LineItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Bill) editable() error {
	if b.state != models.StateDraft && b.state != models.StateBilled {
		return fmt.Errorf("%w: cannot edit items in state %s", ErrInvalidTransition, b.state)
	}
	return nil
}

// AddItem validates item and appends it. Purchase order items without a
// unit get gst.DefaultUnit.
func (b *Bill) AddItem(item models.LineItem) error {
	if err := b.editable(); err != nil {
		return err
	}

	item.Description = strings.TrimSpace(item.Description)
	item.HSNSACCode = strings.TrimSpace(item.HSNSACCode)
	requireUnit := b.kind == models.KindPurchaseOrder
	if requireUnit {
		item.Unit = strings.TrimSpace(item.Unit)
		if item.Unit == "" {
			item.Unit = gst.DefaultUnit
		}
	} else {
		item.Unit = ""
	}

	if err := common.ValidateLineItem(item, requireUnit); err != nil {
		return err
	}

	b.items = append(b.items, item)
	b.state = models.StateBilled
	return nil
}

func (b *Bill) RemoveItem(index int) error {
	if err := b.editable(); err != nil {
		return err
	}
	if index < 0 || index >= len(b.items) {
		return common.NewValidationError("index", fmt.Sprintf("no item at position %d", index))
	}

	b.items = append(b.items[:index:index], b.items[index+1:]...)
	if len(b.items) == 0 {
		b.state = models.StateDraft
	}
	return nil
}

// Totals computes the live tax breakdown for the current items.
func (b *Bill) Totals(calc *gst.Calculator, placeOfSupply string) models.DocumentTotals {
	return calc.DocumentTotals(b.items, placeOfSupply)
}

func (b *Bill) markNumbered(number string) error {
	if b.state != models.StateBilled {
		return fmt.Errorf("%w: numbering requires a billed document, state is %s", ErrInvalidTransition, b.state)
	}
	b.number = number
	b.state = models.StateNumbered
	return nil
}

func (b *Bill) markPersisted() error {
	if b.state != models.StateNumbered {
		return fmt.Errorf("%w: %s -> persisted", ErrInvalidTransition, b.state)
	}
	b.state = models.StatePersisted
	return nil
}

// markFailed keeps the consumed number; it is never reused.
func (b *Bill) markFailed() error {
	if b.state != models.StateNumbered {
		return fmt.Errorf("%w: %s -> failed", ErrInvalidTransition, b.state)
	}
	b.state = models.StateFailed
	return nil
}

// readyForNumbering rejects empty or already numbered bills before a
// number is consumed.
func (b *Bill) readyForNumbering(kind models.DocumentKind) error {
	if b == nil {
		return common.NewValidationError("items", "at least one line item is required")
	}
	if b.kind != kind {
		return common.NewValidationError("kind", fmt.Sprintf("bill is for %s, not %s", b.kind.Label(), kind.Label()))
	}
	switch b.state {
	case models.StateDraft:
		return common.NewValidationError("items", "at least one line item is required")
	case models.StateBilled:
		return nil
	default:
		return fmt.Errorf("%w: document already %s", ErrInvalidTransition, b.state)
	}
}
