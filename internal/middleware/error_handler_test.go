package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"starbank/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, errors.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	CustomHTTPErrorHandler(err, c)

	var response errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return rec, response
}

func TestCustomHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, response := callErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "route missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(errors.SystemRouteNotFound), response.Error.Code)
	assert.Equal(t, "route missing", response.Error.Message)
	assert.Equal(t, "test-trace-id", response.Error.TraceID)
}

func TestCustomHTTPErrorHandler_GenericError(t *testing.T) {
	rec, response := callErrorHandler(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, string(errors.SystemInternalError), response.Error.Code)
	// Internal details must not leak to the client
	assert.NotContains(t, response.Error.Message, assert.AnError.Error())
}

func TestCustomHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, c.NoContent(http.StatusOK))
	CustomHTTPErrorHandler(assert.AnError, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
