package services

import (
	"context"
	"testing"

	"starbank/internal/database"
	"starbank/internal/models"
	"starbank/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

type AccountServiceSuite struct {
	suite.Suite
	db       *database.DB
	service  AccountServiceInterface
	user     *models.User
	cardType *models.CardType
}

func (s *AccountServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	s.service = NewAccountService(
		repositories.NewBankAccountRepository(s.db.DB),
		repositories.NewCardRepository(s.db.DB),
		repositories.NewDepositRepository(s.db.DB),
		repositories.NewUserRepository(s.db.DB),
		testLogger(),
		noopMetrics{},
	)

	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	s.cardType = database.CreateTestCardType(s.T(), s.db, "Standard")
}

func (s *AccountServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AccountServiceSuite) openCard() *models.BankAccount {
	s.T().Helper()
	account, err := s.service.OpenCardAccount(context.Background(), OpenCardInput{
		UserID:     s.user.ID,
		Currency:   models.CurrencyRUB,
		Balance:    decimal.NewFromInt(500),
		CardTypeID: s.cardType.ID,
	})
	s.Require().NoError(err)
	return account
}

func (s *AccountServiceSuite) openDeposit() *models.BankAccount {
	s.T().Helper()
	account, err := s.service.OpenDepositAccount(context.Background(), OpenDepositInput{
		UserID:       s.user.ID,
		Currency:     models.CurrencyRUB,
		Balance:      decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("4.5"),
		MinValue:     100,
		MaxValue:     100000,
	})
	s.Require().NoError(err)
	return account
}

func (s *AccountServiceSuite) TestOpenCardAccount() {
	account := s.openCard()

	s.Len(account.Number, 20)
	s.Equal(models.DefaultBankName, account.BankName)
	s.Require().NotNil(account.Card)
	s.Nil(account.Deposit)
	s.True(account.Card.Balance.Equal(decimal.NewFromInt(500)))
	s.Equal(s.cardType.ID, account.Card.CardTypeID)
}

func (s *AccountServiceSuite) TestOpenDepositAccount() {
	account := s.openDeposit()

	s.Len(account.Number, 20)
	s.Require().NotNil(account.Deposit)
	s.Nil(account.Card)
	s.True(account.Deposit.InterestRate.Equal(decimal.RequireFromString("4.5")))
	s.Equal(int64(100), account.Deposit.MinValue)
}

func (s *AccountServiceSuite) TestOpenCardAccount_UnknownUser() {
	_, err := s.service.OpenCardAccount(context.Background(), OpenCardInput{
		UserID:     9999,
		Currency:   models.CurrencyRUB,
		Balance:    decimal.Zero,
		CardTypeID: s.cardType.ID,
	})
	s.ErrorIs(err, repositories.ErrUserNotFound)
}

func (s *AccountServiceSuite) TestOpenAccounts_NumbersAreUnique() {
	first := s.openCard()
	second := s.openDeposit()
	s.NotEqual(first.Number, second.Number)
}

func (s *AccountServiceSuite) TestUpdateAccount_PartialFields() {
	account := s.openCard()

	name := "Meteor-Bank"
	updated, err := s.service.UpdateAccount(account.ID, AccountUpdate{BankName: &name})
	s.Require().NoError(err)
	s.Equal("Meteor-Bank", updated.BankName)

	// Empty update leaves everything as is
	unchanged, err := s.service.UpdateAccount(account.ID, AccountUpdate{})
	s.Require().NoError(err)
	s.Equal("Meteor-Bank", unchanged.BankName)
}

func (s *AccountServiceSuite) TestDeleteAccount_RemovesInstrument() {
	account := s.openCard()
	cardID := account.Card.ID

	s.Require().NoError(s.service.DeleteAccount(context.Background(), account.ID))

	_, err := s.service.GetAccount(account.ID)
	s.ErrorIs(err, repositories.ErrAccountNotFound)
	_, err = s.service.GetCard(cardID)
	s.ErrorIs(err, repositories.ErrCardNotFound)
}

func (s *AccountServiceSuite) TestDeleteCard_DeletesOwningAccount() {
	account := s.openCard()

	s.Require().NoError(s.service.DeleteCard(context.Background(), account.Card.ID))

	_, err := s.service.GetAccount(account.ID)
	s.ErrorIs(err, repositories.ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestDeleteDeposit_DeletesOwningAccount() {
	account := s.openDeposit()

	s.Require().NoError(s.service.DeleteDeposit(context.Background(), account.Deposit.ID))

	_, err := s.service.GetAccount(account.ID)
	s.ErrorIs(err, repositories.ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestUpdateCard_PartialFields() {
	account := s.openCard()

	blocked := true
	updated, err := s.service.UpdateCard(account.Card.ID, CardUpdate{IsBlocked: &blocked})
	s.Require().NoError(err)
	s.True(updated.IsBlocked)
	s.Equal(account.Card.IsPush, updated.IsPush, "untouched field survives")
}

func (s *AccountServiceSuite) TestUpdateDeposit_RejectsInvertedRange() {
	account := s.openDeposit()

	badMax := int64(50)
	_, err := s.service.UpdateDeposit(account.Deposit.ID, DepositUpdate{MaxValue: &badMax})
	s.ErrorIs(err, ErrDepositRangeInvalid)

	// Raising min above the stored max fails the same way
	badMin := int64(200000)
	_, err = s.service.UpdateDeposit(account.Deposit.ID, DepositUpdate{MinValue: &badMin})
	s.ErrorIs(err, ErrDepositRangeInvalid)

	goodRate := decimal.RequireFromString("6.25")
	updated, err := s.service.UpdateDeposit(account.Deposit.ID, DepositUpdate{InterestRate: &goodRate})
	s.Require().NoError(err)
	s.True(updated.InterestRate.Equal(goodRate))
}

func (s *AccountServiceSuite) TestGetUserAccountListings() {
	s.openCard()
	s.openDeposit()
	other := database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	database.CreateTestCardAccount(s.T(), s.db, other.ID, s.cardType.ID,
		decimal.Zero, models.CurrencyRUB)

	accounts, err := s.service.GetUserAccounts(s.user.ID)
	s.Require().NoError(err)
	s.Len(accounts, 2)

	cards, err := s.service.GetUserCards(s.user.ID)
	s.Require().NoError(err)
	s.Len(cards, 1)

	deposits, err := s.service.GetUserDeposits(s.user.ID)
	s.Require().NoError(err)
	s.Len(deposits, 1)

	all, total, err := s.service.GetAccounts(0, 10)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(all, 3)
}

func (s *AccountServiceSuite) TestGetAccountByNumber() {
	account := s.openCard()

	found, err := s.service.GetAccountByNumber(account.Number)
	s.Require().NoError(err)
	s.Equal(account.ID, found.ID)
	s.NotNil(found.Card)

	_, err = s.service.GetAccountByNumber("00000000000000000000")
	s.ErrorIs(err, repositories.ErrAccountNotFound)
}
