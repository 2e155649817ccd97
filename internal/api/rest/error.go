package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/journal"
	"github.com/objectledger/custodian/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"
	errCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	errCodeInternalError  ErrorCode = "internal_error"
	errCodeLedgerRejected ErrorCode = "ledger_rejected"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondDomainError maps custody domain errors onto HTTP statuses.
// Unrecognized errors fall back to 500.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrObjectNotFound),
		errors.Is(err, domain.ErrTransferNotFound),
		errors.Is(err, journal.ErrNotFound):
		respondNotFound(c, err.Error())

	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrUnauthorized):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, err.Error())

	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrAlreadyExecuted),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrNotForSale),
		errors.Is(err, domain.ErrSelfPurchase):
		respondWithError(c, http.StatusConflict, errCodeConflict, err.Error())

	case errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrNotYetDue),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRecipient),
		errors.Is(err, domain.ErrUnsupportedToken),
		errors.Is(err, domain.ErrTokenTypeMismatch):
		respondWithError(c, http.StatusUnprocessableEntity, errCodeValidationFailed, err.Error())

	case errors.Is(err, domain.ErrInsufficientBalance):
		respondWithError(c, http.StatusPaymentRequired, errCodeValidationFailed, err.Error())

	case errors.Is(err, domain.ErrLedgerRejected):
		logger.Error(err)
		respondWithError(c, http.StatusBadGateway, errCodeLedgerRejected, err.Error())

	default:
		respondInternalError(c, err, "Operation failed")
	}
}
