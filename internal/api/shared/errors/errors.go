package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/feral-file/ff-marketplace-mirror/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest         ErrorCode = "bad_request"
	ErrCodeNotFound           ErrorCode = "not_found"
	ErrCodeValidationFailed   ErrorCode = "validation_failed"
	ErrCodeUnauthorized       ErrorCode = "unauthorized"
	ErrCodeForbidden          ErrorCode = "forbidden"
	ErrCodePreconditionFailed ErrorCode = "precondition_failed"
	ErrCodeReceiptInvalid     ErrorCode = "receipt_invalid"
	ErrCodeEventMismatch      ErrorCode = "event_mismatch"
	ErrCodeConflict           ErrorCode = "data_integrity_conflict"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

func newAPIError(code ErrorCode, message string, details []string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newAPIError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeForbidden, message, details)
}

func NewInternalError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeInternalError, message, details)
}

func NewServiceError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeServiceError, message, details)
}

// FromDomainError maps a classified error to an HTTP status and API error.
// Unclassified errors become a 500 without leaking their message.
func FromDomainError(err error) (int, *APIError) {
	message := err.Error()
	switch domain.KindOf(err) {
	case domain.ErrorKindNotFound:
		return http.StatusNotFound, newAPIError(ErrCodeNotFound, message, nil)
	case domain.ErrorKindInvalidInput:
		return http.StatusBadRequest, newAPIError(ErrCodeBadRequest, message, nil)
	case domain.ErrorKindUnauthorized:
		return http.StatusForbidden, newAPIError(ErrCodeForbidden, message, nil)
	case domain.ErrorKindPreconditionFailed:
		return http.StatusConflict, newAPIError(ErrCodePreconditionFailed, message, nil)
	case domain.ErrorKindDataIntegrityConflict:
		return http.StatusConflict, newAPIError(ErrCodeConflict, message, nil)
	case domain.ErrorKindReceiptInvalid:
		return http.StatusUnprocessableEntity, newAPIError(ErrCodeReceiptInvalid, message, nil)
	case domain.ErrorKindEventMismatch:
		return http.StatusUnprocessableEntity, newAPIError(ErrCodeEventMismatch, message, nil)
	case domain.ErrorKindTransient:
		return http.StatusServiceUnavailable, NewServiceError("Chain temporarily unavailable", message)
	default:
		return http.StatusInternalServerError, newAPIError(ErrCodeInternalError, "Internal server error", nil)
	}
}
