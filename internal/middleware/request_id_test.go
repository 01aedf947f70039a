package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) TestRequestID_GeneratesTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		traceID := c.Get(TraceIDContextKey)
		s.NotNil(traceID)
		s.NotEmpty(traceID.(string))
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	s.NoError(err)

	s.NotEmpty(rec.Header().Get(TraceIDHeader))
}

func (s *RequestIDTestSuite) TestRequestID_UsesExistingTraceID() {
	existingTraceID := "existing-trace-id-12345"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, existingTraceID)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		s.Equal(existingTraceID, c.Get(TraceIDContextKey).(string))
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
	s.Equal(existingTraceID, rec.Header().Get(TraceIDHeader))
}

// Services log with the trace ID from the request context, so the middleware
// must propagate it there too, not only into the Echo context.
func (s *RequestIDTestSuite) TestRequestID_InjectsIntoRequestContext() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		fromRequest, ok := c.Request().Context().Value(TraceIDContextKey).(string)
		s.True(ok)
		s.Equal(c.Get(TraceIDContextKey).(string), fromRequest)
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
}

func (s *RequestIDTestSuite) TestGetTraceID_Missing() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Empty(GetTraceID(c))
}
