package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// SendDomainError maps the error taxonomy onto HTTP responses.
func SendDomainError(c echo.Context, resource string, err error) error {
	var vErr *ValidationError
	var aErr *AllocationError
	var pErr *PersistenceError

	switch {
	case errors.As(err, &vErr):
		return SendValidationError(c, vErr.Field, vErr.Message)
	case errors.As(err, &aErr):
		return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse("ALLOCATION_ERROR",
			"Document number could not be allocated, please retry", nil))
	case errors.As(err, &pErr):
		details := map[string]string{
			"document_number": pErr.Number,
			"stage":           string(pErr.Stage),
		}
		if pErr.RollbackAttempted {
			details["rollback"] = "attempted"
		}
		return c.JSON(http.StatusInternalServerError, CreateErrorResponse("PERSISTENCE_ERROR",
			fmt.Sprintf("%s %s was numbered but could not be saved; the number is consumed", resource, pErr.Number), details))
	case errors.Is(err, ErrNotFound):
		return SendNotFoundError(c, resource)
	default:
		return SendServerError(c, SecureErrorMessage("process "+resource, err).Error())
	}
}
