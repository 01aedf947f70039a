package handlers

import (
	"net/http"

	"starbank/internal/errors"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
//    Use cases:
//    - Validation errors: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//    - Not found errors: SendError(c, errors.AccountNotFound)
//    - Business rule violations: SendError(c, errors.TransferInsufficientFunds)
//
// 2. SendValidationError - For accumulated field-error maps produced by the
//    transfer validator (400 with the full field → messages map)
//
// 3. SendSystemError - For system/internal errors (500 responses)
//    Use cases:
//    - Database errors from repositories
//    - Service layer internal errors
//    - Unexpected errors that should not expose internal details to client
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions
//    - return err without wrapping - Use SendSystemError to protect internal details

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	errorResponse := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError sends a 400 carrying the full field → messages map
func SendValidationError(c echo.Context, fieldErrors errors.ValidationErrors) error {
	errorResponse := errors.NewValidationError(fieldErrors, getTraceID(c))
	return c.JSON(http.StatusBadRequest, errorResponse)
}

// SendSystemError wraps a system error with a generic message so internal
// details never reach the client
func SendSystemError(c echo.Context, err error) error {
	errorResponse, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
