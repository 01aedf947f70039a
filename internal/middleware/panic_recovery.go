package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"starbank/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts handler panics into a standardized 500 response so a
// single broken request cannot take the process down. The stack trace goes to
// the log, never to the client.
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				logger.Error("Panic recovered",
					"trace_id", traceID,
					"panic", r,
					"stack_trace", string(debug.Stack()),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
				)

				response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, response); err != nil {
					logger.Error("Failed to send panic recovery response",
						"trace_id", traceID,
						"error", err.Error(),
					)
				}
			}()

			return next(c)
		}
	}
}
