package repositories

import (
	"errors"
	"fmt"
	"sync"

	"starbank/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNumberExists = errors.New("account number already exists")
	ErrInstrumentNotFound  = errors.New("account instrument not found")
)

// bankAccountRepository implements BankAccountRepositoryInterface
type bankAccountRepository struct {
	db *gorm.DB
	mu sync.Mutex // For account number generation
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) BankAccountRepositoryInterface {
	return &bankAccountRepository{
		db: db,
	}
}

/// withInstruments preloads everything a transfer or listing needs: the card
// with its full cashback rule graph, or the deposit.
func withInstruments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Card.CardType.Cashbacks.TransactionTypes").
		Preload("Card.Design").
		Preload("Deposit")
}

// CreateWithInstrument opens an account together with its instrument in one
// transaction. Exactly one of card or deposit must be non-nil; a failure at
// either step leaves no orphaned account behind.
func (r *bankAccountRepository) CreateWithInstrument(account *models.BankAccount, card *models.Card, deposit *models.Deposit) error {
	if account == nil {
		return errors.New("account cannot be nil")
	}
	if (card == nil) == (deposit == nil) {
		return errors.New("exactly one of card or deposit is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrAccountNumberExists
			}
			return fmt.Errorf("failed to create account: %w", err)
		}

		if card != nil {
			card.BankAccountID = account.ID
			if err := tx.Create(card).Error; err != nil {
				return fmt.Errorf("failed to create card: %w", err)
			}
			account.Card = card
		} else {
			deposit.BankAccountID = account.ID
			if err := tx.Create(deposit).Error; err != nil {
				return fmt.Errorf("failed to create deposit: %w", err)
			}
			account.Deposit = deposit
		}

		return nil
	})
}

// GetByID retrieves an account by ID with its instrument preloaded
func (r *bankAccountRepository) GetByID(id uint) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := withInstruments(r.db).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByNumber retrieves an account by its 20-digit number with its
// instrument preloaded
func (r *bankAccountRepository) GetByNumber(number string) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := withInstruments(r.db).Where("number = ?", number).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// GetByUserID retrieves all accounts for a user
func (r *bankAccountRepository) GetByUserID(userID uint) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := withInstruments(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

// GetAll retrieves all accounts with pagination
func (r *bankAccountRepository) GetAll(offset, limit int) ([]models.BankAccount, int64, error) {
	var accounts []models.BankAccount
	var total int64

	if err := r.db.Model(&models.BankAccount{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	if err := withInstruments(r.db).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get accounts: %w", err)
	}

	return accounts, total, nil
}

// UpdateFields updates specific fields of an account
func (r *bankAccountRepository) UpdateFields(accountID uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.BankAccount{}).
		Where("id = ?", accountID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update account fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// DeleteWithInstrument removes an account and its instrument in one
// transaction. Ledger entries referencing the account are orphaned, not
// removed.
func (r *bankAccountRepository) DeleteWithInstrument(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var account models.BankAccount
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to get account for delete: %w", err)
		}

		if err := tx.Where("bank_account_id = ?", id).Delete(&models.Card{}).Error; err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		if err := tx.Where("bank_account_id = ?", id).Delete(&models.Deposit{}).Error; err != nil {
			return fmt.Errorf("failed to delete deposit: %w", err)
		}

		// Ledger endpoints are detached rather than cascaded
		if err := tx.Model(&models.Transaction{}).
			Where("from_account_id = ?", id).
			Update("from_account_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach outgoing transactions: %w", err)
		}
		if err := tx.Model(&models.Transaction{}).
			Where("to_account_id = ?", id).
			Update("to_account_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach incoming transactions: %w", err)
		}

		if err := tx.Delete(&account).Error; err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}

		return nil
	})
}

// CheckNumberExists checks if an account number already exists
func (r *bankAccountRepository) CheckNumberExists(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.BankAccount{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account number existence: %w", err)
	}
	return count > 0, nil
}

// GenerateUniqueNumber generates a 20-digit account number not yet in use
func (r *bankAccountRepository) GenerateUniqueNumber() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		number := models.GenerateAccountNumber()

		exists, err := r.CheckNumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique account number after %d attempts", maxAttempts)
}

// ExecuteTransfer atomically moves money between two instruments and records
// the ledger entry. Both instruments are re-read under row locks inside the
// transaction; the balance is rechecked against the fresh row so a concurrent
// debit between validation and execution cannot overdraw the source. Any
// failure rolls back all three records.
func (r *bankAccountRepository) ExecuteTransfer(execution TransferExecution) (*models.Transaction, error) {
	var created *models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		source, target, err := lockInstrumentPair(tx, execution.FromInstrument, execution.ToInstrument)
		if err != nil {
			return fmt.Errorf("failed to lock instruments: %w", err)
		}

		if source.AvailableBalance().LessThan(execution.Amount) {
			return models.ErrInsufficientFunds
		}

		if err := debitInstrument(tx, source, execution.Amount, execution.CashbackMoney); err != nil {
			return err
		}

		if err := creditInstrument(tx, target, execution.Amount); err != nil {
			return err
		}

		fromID := execution.FromAccountID
		toID := execution.ToAccountID
		transaction := &models.Transaction{
			FromAccountID:     &fromID,
			ToAccountID:       &toID,
			Amount:            execution.Amount,
			Currency:          execution.Currency,
			TransactionTypeID: execution.TransactionTypeID,
			CashbackAwarded:   execution.CashbackMoney,
		}

		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// withRowLock adds SELECT ... FOR UPDATE to the query. The sqlite driver
// drops the clause, so tests over :memory: run the same code path unlocked.
func withRowLock(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockInstrumentPair locks both instrument rows in ascending account-ID order
// so two opposing transfers cannot deadlock acquiring them in opposite order.
func lockInstrumentPair(tx *gorm.DB, from, to models.Instrument) (models.Instrument, models.Instrument, error) {
	first, second := from, to
	swapped := to.AccountID() < from.AccountID()
	if swapped {
		first, second = to, from
	}

	lockedFirst, err := lockInstrument(tx, first)
	if err != nil {
		return nil, nil, err
	}
	lockedSecond, err := lockInstrument(tx, second)
	if err != nil {
		return nil, nil, err
	}

	if swapped {
		return lockedSecond, lockedFirst, nil
	}
	return lockedFirst, lockedSecond, nil
}

// lockInstrument re-reads the instrument row under a row-level lock so the
// balance check and mutation see current state, not the snapshot the service
// validated against.
func lockInstrument(tx *gorm.DB, instrument models.Instrument) (models.Instrument, error) {
	locked := withRowLock(tx)

	switch instrument.(type) {
	case *models.Card:
		var card models.Card
		if err := locked.Where("bank_account_id = ?", instrument.AccountID()).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstrumentNotFound
			}
			return nil, err
		}
		return &card, nil
	case *models.Deposit:
		var deposit models.Deposit
		if err := locked.Where("bank_account_id = ?", instrument.AccountID()).First(&deposit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInstrumentNotFound
			}
			return nil, err
		}
		return &deposit, nil
	default:
		return nil, fmt.Errorf("unsupported instrument kind: %s", instrument.Kind())
	}
}

func debitInstrument(tx *gorm.DB, instrument models.Instrument, amount decimal.Decimal, cashbackMoney int64) error {
	newBalance := instrument.AvailableBalance().Sub(amount)

	switch concrete := instrument.(type) {
	case *models.Card:
		updates := map[string]interface{}{"balance": newBalance}
		if cashbackMoney > 0 {
			updates["cashback_accrued"] = concrete.CashbackAccrued + cashbackMoney
		}
		if err := tx.Model(concrete).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to debit source card: %w", err)
		}
	case *models.Deposit:
		if err := tx.Model(concrete).Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("failed to debit source deposit: %w", err)
		}
	}

	return nil
}

func creditInstrument(tx *gorm.DB, instrument models.Instrument, amount decimal.Decimal) error {
	newBalance := instrument.AvailableBalance().Add(amount)

	switch concrete := instrument.(type) {
	case *models.Card:
		if err := tx.Model(concrete).Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("failed to credit target card: %w", err)
		}
	case *models.Deposit:
		if err := tx.Model(concrete).Update("balance", newBalance).Error; err != nil {
			return fmt.Errorf("failed to credit target deposit: %w", err)
		}
	}

	return nil
}
