package dto

import "net/http"

// Error codes used across the HTTP API.
const (
	// Generic errors
	ErrCodeInternalError = "ERR_INTERNAL"
	ErrCodeInvalidInput  = "ERR_INVALID_INPUT"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeForbidden     = "ERR_FORBIDDEN"
	ErrCodeInvalidState  = "ERR_INVALID_STATE"

	// Stock and settlement errors
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeStockNotTracked   = "ERR_STOCK_NOT_TRACKED"
	ErrCodeLockTimeout       = "ERR_LOCK_TIMEOUT"

	// Payment errors
	ErrCodePaymentFailed = "ERR_PAYMENT_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternalError:     http.StatusInternalServerError,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeInvalidState:      http.StatusConflict,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeStockNotTracked:   http.StatusUnprocessableEntity,
	ErrCodeLockTimeout:       http.StatusConflict,
	ErrCodePaymentFailed:     http.StatusBadGateway,
}

// LegacyErrorCodeMapping maps domain error codes to API error codes.
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_STATE":      ErrCodeInvalidState,
	"UNAUTHORIZED":       ErrCodeUnauthorized,
	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,
}

// NormalizeErrorCode converts a domain error code into an API error code.
func NormalizeErrorCode(code string) string {
	if normalized, ok := LegacyErrorCodeMapping[code]; ok {
		return normalized
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternalError
}

// GetHTTPStatus returns the HTTP status for an error code.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
