package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"starbank/internal/database"
	"starbank/internal/dto"
	"starbank/internal/errors"
	"starbank/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransferHandler(t *testing.T) {
	suite.Run(t, new(TransferHandlerSuite))
}

type TransferHandlerSuite struct {
	handlerSuite
	handler  *TransferHandler
	user     *models.User
	transfer *models.TransactionType
	from     *models.BankAccount
	to       *models.BankAccount
}

func (s *TransferHandlerSuite) SetupTest() {
	s.handlerSuite.SetupTest()
	s.handler = NewTransferHandler(s.transferService)

	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	s.transfer = database.CreateTestTransactionType(s.T(), s.db, "transfer")
	cashback := database.CreateTestCashback(s.T(), s.db, 5, *s.transfer)
	cardType := database.CreateTestCardType(s.T(), s.db, "Standard", *cashback)

	s.from = database.CreateTestCardAccount(s.T(), s.db, s.user.ID, cardType.ID,
		decimal.NewFromInt(1000), models.CurrencyRUB)
	s.to = database.CreateTestDepositAccount(s.T(), s.db, s.user.ID,
		decimal.NewFromInt(0), models.CurrencyRUB)
}

func (s *TransferHandlerSuite) transferRequest(amount int64) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		FromNumber:        s.from.Number,
		ToNumber:          s.to.Number,
		Money:             decimal.NewFromInt(amount),
		Currency:          models.CurrencyRUB,
		TransactionTypeID: s.transfer.ID,
	}
}

func (s *TransferHandlerSuite) TestCreateTransfer_Created() {
	c, rec := s.newContext(http.MethodPost, "/transactions", s.transferRequest(300))

	s.Require().NoError(s.handler.CreateTransfer(c))
	s.Equal(http.StatusCreated, rec.Code)

	var created models.Transaction
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.True(created.Amount.Equal(decimal.NewFromInt(300)))
	s.Equal(int64(15), created.CashbackAwarded)
	s.NotEmpty(created.Reference)
}

func (s *TransferHandlerSuite) TestCreateTransfer_MalformedNumberRejectedAtBinding() {
	req := s.transferRequest(100)
	req.FromNumber = "123"

	c, rec := s.newContext(http.MethodPost, "/transactions", req)

	s.Require().NoError(s.handler.CreateTransfer(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	response := s.decodeError(rec)
	s.Equal(string(errors.ValidationGeneral), response.Error.Code)
	s.Contains(response.Error.Fields, "from_number")
}

func (s *TransferHandlerSuite) TestCreateTransfer_SemanticViolationsAccumulated() {
	// Drain the source so insufficient funds joins the self-transfer error
	req := s.transferRequest(5000)
	req.ToNumber = s.from.Number

	c, rec := s.newContext(http.MethodPost, "/transactions", req)

	s.Require().NoError(s.handler.CreateTransfer(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	response := s.decodeError(rec)
	s.Contains(response.Error.Fields, "from_number")
	s.Contains(response.Error.Fields, errors.NonFieldErrors)

	// Nothing moved
	var count int64
	s.db.Model(&models.Transaction{}).Count(&count)
	s.Zero(count)
}

func (s *TransferHandlerSuite) TestCreateTransfer_UnknownSource() {
	req := s.transferRequest(100)
	req.FromNumber = "11111111111111111111"

	c, rec := s.newContext(http.MethodPost, "/transactions", req)

	s.Require().NoError(s.handler.CreateTransfer(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.AccountNotFound), s.decodeError(rec).Error.Code)
}

func (s *TransferHandlerSuite) TestCreateTransfer_UnknownTransactionType() {
	req := s.transferRequest(100)
	req.TransactionTypeID = 9999

	c, rec := s.newContext(http.MethodPost, "/transactions", req)

	s.Require().NoError(s.handler.CreateTransfer(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.TransactionTypeNotFound), s.decodeError(rec).Error.Code)
}

func (s *TransferHandlerSuite) TestGetTransaction_NotFound() {
	c, rec := s.newContext(http.MethodGet, "/transactions/42", nil, "id", "42")

	s.Require().NoError(s.handler.GetTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.TransferNotFound), s.decodeError(rec).Error.Code)
}

func (s *TransferHandlerSuite) TestListTransactions_Paginated() {
	for i := 0; i < 3; i++ {
		c, rec := s.newContext(http.MethodPost, "/transactions", s.transferRequest(10))
		s.Require().NoError(s.handler.CreateTransfer(c))
		s.Require().Equal(http.StatusCreated, rec.Code)
	}

	c, rec := s.newContext(http.MethodGet, "/transactions?offset=0&limit=2", nil)
	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Len(response.Transactions, 2)
	s.Equal(int64(3), response.Pagination.Total)
}

func (s *TransferHandlerSuite) TestGetUserTransactions_Split() {
	c, rec := s.newContext(http.MethodPost, "/transactions", s.transferRequest(250))
	s.Require().NoError(s.handler.CreateTransfer(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	userID := strconv.FormatUint(uint64(s.user.ID), 10)
	c, rec = s.newContext(http.MethodGet, "/users/"+userID+"/transactions", nil,
		"id", userID)

	s.Require().NoError(s.handler.GetUserTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var split struct {
		Outgoing []models.Transaction `json:"outgoing"`
		Incoming []models.Transaction `json:"incoming"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &split))
	// Both endpoints belong to the same user here
	s.Len(split.Outgoing, 1)
	s.Len(split.Incoming, 1)
}
