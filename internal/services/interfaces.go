package services

import (
	"context"
	"time"

	"starbank/internal/models"

	"github.com/shopspring/decimal"
)

// TransferInput is what the API layer hands to the transfer pipeline:
// endpoint account numbers plus the money to move.
type TransferInput struct {
	FromNumber        string
	ToNumber          string
	Amount            decimal.Decimal
	Currency          string
	TransactionTypeID uint
}

// UserTransactions splits a user's ledger entries by direction.
type UserTransactions struct {
	Outgoing []models.Transaction `json:"outgoing"`
	Incoming []models.Transaction `json:"incoming"`
}

// TransferServiceInterface runs the transfer pipeline and serves the ledger
type TransferServiceInterface interface {
	CreateTransfer(ctx context.Context, input TransferInput) (*models.Transaction, error)
	GetTransaction(id uint) (*models.Transaction, error)
	GetTransactions(offset, limit int) ([]models.Transaction, int64, error)
	GetUserTransactions(userID uint) (*UserTransactions, error)
	DeleteTransaction(id uint) error
}

// OpenCardInput describes a card account opening request
type OpenCardInput struct {
	UserID     uint
	Currency   string
	Balance    decimal.Decimal
	CardTypeID uint
	DesignID   *uint
	IsPush     bool
}

// OpenDepositInput describes a deposit account opening request
type OpenDepositInput struct {
	UserID       uint
	Currency     string
	Balance      decimal.Decimal
	InterestRate decimal.Decimal
	MinValue     int64
	MaxValue     int64
}

// AccountUpdate carries the optional account fields a partial update may set
type AccountUpdate struct {
	BankName *string
}

// CardUpdate carries the optional card fields a partial update may set
type CardUpdate struct {
	IsPush    *bool
	IsBlocked *bool
	DesignID  *uint
}

// DepositUpdate carries the optional deposit fields a partial update may set
type DepositUpdate struct {
	InterestRate *decimal.Decimal
	MinValue     *int64
	MaxValue     *int64
}

// AccountServiceInterface manages bank accounts and their instruments.
// Opening and deletion are atomic across the account/instrument pair.
type AccountServiceInterface interface {
	OpenCardAccount(ctx context.Context, input OpenCardInput) (*models.BankAccount, error)
	OpenDepositAccount(ctx context.Context, input OpenDepositInput) (*models.BankAccount, error)
	GetAccount(id uint) (*models.BankAccount, error)
	GetAccountByNumber(number string) (*models.BankAccount, error)
	GetAccounts(offset, limit int) ([]models.BankAccount, int64, error)
	GetUserAccounts(userID uint) ([]models.BankAccount, error)
	UpdateAccount(id uint, update AccountUpdate) (*models.BankAccount, error)
	DeleteAccount(ctx context.Context, id uint) error

	GetCard(id uint) (*models.Card, error)
	GetCards() ([]models.Card, error)
	GetUserCards(userID uint) ([]models.Card, error)
	UpdateCard(id uint, update CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, id uint) error

	GetDeposit(id uint) (*models.Deposit, error)
	GetDeposits() ([]models.Deposit, error)
	GetUserDeposits(userID uint) ([]models.Deposit, error)
	UpdateDeposit(id uint, update DepositUpdate) (*models.Deposit, error)
	DeleteDeposit(ctx context.Context, id uint) error
}

// CreateUserInput describes a user creation request
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserUpdate carries the optional user fields a partial update may set
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserServiceInterface manages the owning user entity
type UserServiceInterface interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUsers(offset, limit int) ([]*models.User, int64, error)
	UpdateUser(id uint, update UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// PasswordServiceInterface handles password hashing and verification
type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// CatalogServiceInterface manages the tariff catalog: transaction types,
// cashback rules, card types and card designs
type CatalogServiceInterface interface {
	CreateTransactionType(title string) (*models.TransactionType, error)
	GetTransactionType(id uint) (*models.TransactionType, error)
	GetTransactionTypes() ([]models.TransactionType, error)
	UpdateTransactionType(id uint, title string) (*models.TransactionType, error)
	DeleteTransactionType(id uint) error

	CreateCashback(title string, percent int, transactionTypeIDs []uint) (*models.Cashback, error)
	GetCashback(id uint) (*models.Cashback, error)
	GetCashbacks() ([]models.Cashback, error)
	UpdateCashback(id uint, title *string, percent *int, transactionTypeIDs []uint) (*models.Cashback, error)
	DeleteCashback(id uint) error

	CreateCardType(title string, pushPrice, servicePrice *int64, cashbackIDs []uint) (*models.CardType, error)
	GetCardType(id uint) (*models.CardType, error)
	GetCardTypes() ([]models.CardType, error)
	UpdateCardType(id uint, title *string, pushPrice, servicePrice *int64, cashbackIDs []uint) (*models.CardType, error)
	DeleteCardType(id uint) error

	CreateCardDesign(design *models.CardDesign) (*models.CardDesign, error)
	GetCardDesign(id uint) (*models.CardDesign, error)
	GetCardDesigns() ([]models.CardDesign, error)
	UpdateCardDesign(id uint, title, author, description, example *string) (*models.CardDesign, error)
	DeleteCardDesign(id uint) error
}

// MetricsRecorderInterface abstracts metric recording so services stay
// testable without a live registry
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
