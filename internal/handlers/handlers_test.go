package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"starbank/internal/database"
	"starbank/internal/repositories"
	"starbank/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// testMetrics is a no-op recorder so handler tests never touch the global
// prometheus registry
type testMetrics struct{}

func (testMetrics) IncrementCounter(string, map[string]string)     {}
func (testMetrics) RecordProcessingTime(string, time.Duration)     {}
func (testMetrics) RecordGauge(string, float64, map[string]string) {}

// handlerSuite boots the full stack below the HTTP layer: real services over
// real repositories over in-memory sqlite.
type handlerSuite struct {
	suite.Suite
	db   *database.DB
	echo *echo.Echo

	userService     services.UserServiceInterface
	accountService  services.AccountServiceInterface
	transferService services.TransferServiceInterface
	catalogService  services.CatalogServiceInterface
}

func (s *handlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := testMetrics{}

	userRepo := repositories.NewUserRepository(s.db.DB)
	accountRepo := repositories.NewBankAccountRepository(s.db.DB)
	cardRepo := repositories.NewCardRepository(s.db.DB)
	depositRepo := repositories.NewDepositRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	typeRepo := repositories.NewTransactionTypeRepository(s.db.DB)
	cashbackRepo := repositories.NewCashbackRepository(s.db.DB)
	cardTypeRepo := repositories.NewCardTypeRepository(s.db.DB)
	designRepo := repositories.NewCardDesignRepository(s.db.DB)

	s.userService = services.NewUserService(userRepo, services.NewPasswordService(), logger, metrics)
	s.accountService = services.NewAccountService(accountRepo, cardRepo, depositRepo, userRepo, logger, metrics)
	s.transferService = services.NewTransferService(accountRepo, transactionRepo, typeRepo, logger, metrics)
	s.catalogService = services.NewCatalogService(typeRepo, cashbackRepo, cardTypeRepo, designRepo)
}

func (s *handlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// newContext builds an echo context for a handler call. Path params are set
// from pairs of name, value.
func (s *handlerSuite) newContext(method, path string, body interface{}, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	return c, rec
}

func (s *handlerSuite) decodeError(rec *httptest.ResponseRecorder) ErrorResponse {
	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}
