package common

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrAllocation  = errors.New("document number allocation failed")
	ErrPersistence = errors.New("document could not be saved")
	ErrNotFound    = errors.New("not found")

	// ErrItemsNotSaved marks a save where the header was written, the items
	// insert failed and the header delete was attempted.
	ErrItemsNotSaved = errors.New("line items not saved, header rolled back")
)

// ValidationError reports a rejected input field. It is never auto-corrected.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AllocationError means no document number could be produced.
type AllocationError struct {
	Scope string
	Err   error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate number for %s: %v", e.Scope, e.Err)
}

func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

// PersistStage identifies which write of the two-step save failed.
type PersistStage string

const (
	StageHeader PersistStage = "header"
	StageItems  PersistStage = "items"
)

// PersistenceError means a numbered document failed to save. The number it
// carries is consumed and must not be reissued.
type PersistenceError struct {
	Number            string
	Stage             PersistStage
	RollbackAttempted bool
	RollbackErr       error
	Err               error
}

func (e *PersistenceError) Error() string {
	msg := fmt.Sprintf("save %s of %s: %v", e.Stage, e.Number, e.Err)
	if e.RollbackAttempted {
		if e.RollbackErr != nil {
			msg += fmt.Sprintf(" (header rollback failed: %v)", e.RollbackErr)
		} else {
			msg += " (header rolled back)"
		}
	}
	return msg
}

func (e *PersistenceError) Is(target error) bool {
	switch target {
	case ErrPersistence:
		return true
	case ErrItemsNotSaved:
		return e.Stage == StageItems && e.RollbackAttempted
	}
	return false
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SecureErrorMessage hides internal failure details from API clients.
func SecureErrorMessage(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: operation could not be completed", operation)
}
