package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ecsbilling/internal/gst"
	"ecsbilling/internal/models"

	"github.com/google/uuid"
)

var (
	gstinPattern          = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	documentNumberPattern = regexp.MustCompile(`^[A-Za-z0-9/-]+$`)
	financialYearPattern  = regexp.MustCompile(`^[0-9]{2}-[0-9]{2}$`)
)

// NormalizeGSTIN trims and uppercases a GSTIN.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// IsValidGSTIN reports whether gstin is empty or a well-formed 15 character GSTIN.
func IsValidGSTIN(gstin string) bool {
	g := NormalizeGSTIN(gstin)
	return g == "" || gstinPattern.MatchString(g)
}

// ValidateGSTIN validates an optional GSTIN field.
func ValidateGSTIN(gstin, fieldName string) error {
	if IsValidGSTIN(gstin) {
		return nil
	}
	if len(NormalizeGSTIN(gstin)) != 15 {
		return NewValidationError(fieldName, "must be exactly 15 characters")
	}
	return NewValidationError(fieldName, "has invalid GSTIN format")
}

// ValidateDocumentNumber checks a rendered document number against the
// allowed character set and maximum length.
func ValidateDocumentNumber(number string, maxLength int, fieldName string) error {
	if number == "" {
		return NewValidationError(fieldName, "is required")
	}
	if len(number) > maxLength {
		return NewValidationError(fieldName, fmt.Sprintf("cannot exceed %d characters", maxLength))
	}
	if !documentNumberPattern.MatchString(number) {
		return NewValidationError(fieldName, "may only contain letters, digits, '/' and '-'")
	}
	return nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, "is required")
	}
	return nil
}

// ValidateUUID parses a path or query identifier.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, NewValidationError(fieldName, "is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, NewValidationError(fieldName, "must be a valid UUID")
	}
	return id, nil
}

// ValidateFinancialYear accepts an empty value or the "YY-YY" form with consecutive years.
func ValidateFinancialYear(fy, fieldName string) error {
	if fy == "" {
		return nil
	}
	if !financialYearPattern.MatchString(fy) {
		return NewValidationError(fieldName, "must look like 24-25")
	}
	start, _ := strconv.Atoi(fy[:2])
	end, _ := strconv.Atoi(fy[3:])
	if (start+1)%100 != end {
		return NewValidationError(fieldName, "must span two consecutive years")
	}
	return nil
}

// ValidatePaginationParams clamps pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	if offset > 1000000 {
		return 0, 0, NewValidationError("offset", "cannot exceed 1,000,000")
	}
	return limit, offset, nil
}

// ValidateLineItem checks an item before it is added to a bill. Purchase
// order items also carry a unit of measure from gst.Units.
func ValidateLineItem(item models.LineItem, requireUnit bool) error {
	if err := ValidateRequiredString(item.Description, "description"); err != nil {
		return err
	}
	if err := ValidateRequiredString(item.HSNSACCode, "hsn_sac_code"); err != nil {
		return err
	}
	if !item.Quantity.IsPositive() {
		return NewValidationError("quantity", "must be greater than zero")
	}
	if item.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "cannot be negative")
	}
	if !gst.IsSupportedRate(item.GSTRate) {
		return NewValidationError("gst_rate", fmt.Sprintf("must be one of %v", gst.Rates))
	}
	if requireUnit && !gst.IsSupportedUnit(item.Unit) {
		return NewValidationError("unit", "is not a supported unit")
	}
	return nil
}
