package repositories

import (
	"testing"

	"starbank/internal/database"
	"starbank/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestCatalogRepositories(t *testing.T) {
	suite.Run(t, new(CatalogRepositorySuite))
}

type CatalogRepositorySuite struct {
	suite.Suite
	db               *database.DB
	transactionTypes TransactionTypeRepositoryInterface
	cashbacks        CashbackRepositoryInterface
	cardTypes        CardTypeRepositoryInterface
	designs          CardDesignRepositoryInterface
}

func (s *CatalogRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.transactionTypes = NewTransactionTypeRepository(s.db.DB)
	s.cashbacks = NewCashbackRepository(s.db.DB)
	s.cardTypes = NewCardTypeRepository(s.db.DB)
	s.designs = NewCardDesignRepository(s.db.DB)
}

func (s *CatalogRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *CatalogRepositorySuite) TestTransactionTypeCRUD() {
	transactionType := &models.TransactionType{Title: "payment"}
	s.NoError(s.transactionTypes.Create(transactionType))
	s.NotZero(transactionType.ID)

	found, err := s.transactionTypes.GetByID(transactionType.ID)
	s.NoError(err)
	s.Equal("payment", found.Title)

	found.Title = "utility payment"
	s.NoError(s.transactionTypes.Update(found))

	all, err := s.transactionTypes.GetAll()
	s.NoError(err)
	s.Len(all, 1)
	s.Equal("utility payment", all[0].Title)

	s.NoError(s.transactionTypes.Delete(transactionType.ID))
	_, err = s.transactionTypes.GetByID(transactionType.ID)
	s.ErrorIs(err, ErrTransactionTypeNotFound)
}

func (s *CatalogRepositorySuite) TestTransactionTypeDelete_CascadesLedger() {
	transactionType := database.CreateTestTransactionType(s.T(), s.db, "transfer")

	amount := decimal.NewFromInt(10)
	entry := &models.Transaction{
		Amount:            amount,
		TransactionTypeID: transactionType.ID,
	}
	s.NoError(s.db.Create(entry).Error)

	s.NoError(s.transactionTypes.Delete(transactionType.ID))

	var count int64
	s.db.Model(&models.Transaction{}).Count(&count)
	s.Zero(count, "ledger entries of a dropped type do not survive")
}

func (s *CatalogRepositorySuite) TestCashback_SetTransactionTypes() {
	transfer := database.CreateTestTransactionType(s.T(), s.db, "transfer")
	payment := database.CreateTestTransactionType(s.T(), s.db, "payment")

	cashback := &models.Cashback{Title: "5% on transfers", Percent: 5}
	s.NoError(s.cashbacks.Create(cashback))

	s.NoError(s.cashbacks.SetTransactionTypes(cashback.ID, []uint{transfer.ID, payment.ID}))

	loaded, err := s.cashbacks.GetByID(cashback.ID)
	s.NoError(err)
	s.Len(loaded.TransactionTypes, 2)

	// Replacing shrinks the set, not appends to it
	s.NoError(s.cashbacks.SetTransactionTypes(cashback.ID, []uint{payment.ID}))

	loaded, err = s.cashbacks.GetByID(cashback.ID)
	s.NoError(err)
	s.Require().Len(loaded.TransactionTypes, 1)
	s.Equal(payment.ID, loaded.TransactionTypes[0].ID)
}

func (s *CatalogRepositorySuite) TestCashbackDelete() {
	transfer := database.CreateTestTransactionType(s.T(), s.db, "transfer")
	cashback := database.CreateTestCashback(s.T(), s.db, 3, *transfer)

	s.NoError(s.cashbacks.Delete(cashback.ID))

	_, err := s.cashbacks.GetByID(cashback.ID)
	s.ErrorIs(err, ErrCashbackNotFound)

	// The transaction type itself survives
	_, err = s.transactionTypes.GetByID(transfer.ID)
	s.NoError(err)
}

func (s *CatalogRepositorySuite) TestCardType_SetCashbacks() {
	transfer := database.CreateTestTransactionType(s.T(), s.db, "transfer")
	low := database.CreateTestCashback(s.T(), s.db, 1, *transfer)
	high := database.CreateTestCashback(s.T(), s.db, 5, *transfer)

	cardType := &models.CardType{Title: "Gold"}
	s.NoError(s.cardTypes.Create(cardType))

	s.NoError(s.cardTypes.SetCashbacks(cardType.ID, []uint{low.ID, high.ID}))

	loaded, err := s.cardTypes.GetByID(cardType.ID)
	s.NoError(err)
	s.Len(loaded.Cashbacks, 2)
	s.Equal(5, loaded.ResolveCashbackPercent(transfer.ID))
}

func (s *CatalogRepositorySuite) TestCardTypeDelete_BlockedWhileInUse() {
	user := database.CreateTestUser(s.T(), s.db, "carduser@example.com")
	cardType := database.CreateTestCardType(s.T(), s.db, "Standard")
	database.CreateTestCardAccount(s.T(), s.db, user.ID, cardType.ID,
		decimal.Zero, models.CurrencyRUB)

	err := s.cardTypes.Delete(cardType.ID)
	s.Error(err)

	_, err = s.cardTypes.GetByID(cardType.ID)
	s.NoError(err)
}

func (s *CatalogRepositorySuite) TestCardDesignDelete_DetachesCards() {
	user := database.CreateTestUser(s.T(), s.db, "designuser@example.com")
	cardType := database.CreateTestCardType(s.T(), s.db, "Standard")
	account := database.CreateTestCardAccount(s.T(), s.db, user.ID, cardType.ID,
		decimal.Zero, models.CurrencyRUB)

	design := &models.CardDesign{Title: "Night Sky", Author: "Studio"}
	s.NoError(s.designs.Create(design))

	s.NoError(s.db.Model(&models.Card{}).
		Where("bank_account_id = ?", account.ID).
		Update("design_id", design.ID).Error)

	s.NoError(s.designs.Delete(design.ID))

	var card models.Card
	s.NoError(s.db.Where("bank_account_id = ?", account.ID).First(&card).Error)
	s.Nil(card.DesignID, "card keeps working with the design reference cleared")
}
