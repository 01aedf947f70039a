package repositories

import (
	"starbank/internal/models"

	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateFields(userID uint, fields map[string]interface{}) error
	Delete(userID uint) error
	List(offset, limit int) ([]*models.User, int64, error)
}

// TransferExecution carries everything the atomic executor needs: both
// endpoints, their validated instruments, the settled currency and the
// cashback already resolved for the source card.
type TransferExecution struct {
	FromAccountID     uint
	ToAccountID       uint
	FromInstrument    models.Instrument
	ToInstrument      models.Instrument
	Amount            decimal.Decimal
	Currency          string
	TransactionTypeID uint
	CashbackMoney     int64
}

// BankAccountRepositoryInterface defines the contract for bank account
// repository operations, including atomic account opening and the transfer
// executor.
type BankAccountRepositoryInterface interface {
	CreateWithInstrument(account *models.BankAccount, card *models.Card, deposit *models.Deposit) error
	GetByID(id uint) (*models.BankAccount, error)
	GetByNumber(number string) (*models.BankAccount, error)
	GetByUserID(userID uint) ([]models.BankAccount, error)
	GetAll(offset, limit int) ([]models.BankAccount, int64, error)
	UpdateFields(accountID uint, fields map[string]interface{}) error
	DeleteWithInstrument(id uint) error
	CheckNumberExists(number string) (bool, error)
	GenerateUniqueNumber() (string, error)
	ExecuteTransfer(execution TransferExecution) (*models.Transaction, error)
}

// CardRepositoryInterface defines the contract for card repository operations
type CardRepositoryInterface interface {
	GetByID(id uint) (*models.Card, error)
	GetByAccountID(accountID uint) (*models.Card, error)
	GetByUserID(userID uint) ([]models.Card, error)
	GetAll() ([]models.Card, error)
	UpdateFields(cardID uint, fields map[string]interface{}) error
}

// DepositRepositoryInterface defines the contract for deposit repository operations
type DepositRepositoryInterface interface {
	GetByID(id uint) (*models.Deposit, error)
	GetByAccountID(accountID uint) (*models.Deposit, error)
	GetByUserID(userID uint) ([]models.Deposit, error)
	GetAll() ([]models.Deposit, error)
	UpdateFields(depositID uint, fields map[string]interface{}) error
}

// TransactionTypeRepositoryInterface defines the contract for transaction type operations
type TransactionTypeRepositoryInterface interface {
	Create(transactionType *models.TransactionType) error
	GetByID(id uint) (*models.TransactionType, error)
	GetAll() ([]models.TransactionType, error)
	Update(transactionType *models.TransactionType) error
	Delete(id uint) error
}

// CashbackRepositoryInterface defines the contract for cashback rule operations
type CashbackRepositoryInterface interface {
	Create(cashback *models.Cashback) error
	GetByID(id uint) (*models.Cashback, error)
	GetAll() ([]models.Cashback, error)
	Update(cashback *models.Cashback) error
	SetTransactionTypes(cashbackID uint, transactionTypeIDs []uint) error
	Delete(id uint) error
}

// CardTypeRepositoryInterface defines the contract for card type operations
type CardTypeRepositoryInterface interface {
	Create(cardType *models.CardType) error
	GetByID(id uint) (*models.CardType, error)
	GetAll() ([]models.CardType, error)
	Update(cardType *models.CardType) error
	SetCashbacks(cardTypeID uint, cashbackIDs []uint) error
	Delete(id uint) error
}

// CardDesignRepositoryInterface defines the contract for card design operations
type CardDesignRepositoryInterface interface {
	Create(design *models.CardDesign) error
	GetByID(id uint) (*models.CardDesign, error)
	GetAll() ([]models.CardDesign, error)
	Update(design *models.CardDesign) error
	Delete(id uint) error
}

// TransactionRepositoryInterface defines the contract for the ledger. Entries
// are append-only; there is no update operation.
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	GetAll(offset, limit int) ([]models.Transaction, int64, error)
	GetByAccountID(accountID uint, offset, limit int) ([]models.Transaction, int64, error)
	GetByUserAccounts(accountIDs []uint, offset, limit int) ([]models.Transaction, int64, error)
	Delete(id uint) error
}
