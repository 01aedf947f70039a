package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create appends a ledger entry. Normal transfers go through the account
// repository's executor; this exists for administrative corrections.
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID with its type preloaded
func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.
		Preload("TransactionType").
		First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetAll retrieves all transactions, newest first, with pagination
func (r *transactionRepository) GetAll(offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	if err := r.db.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if err := r.db.
		Preload("TransactionType").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

// GetByAccountID retrieves transactions where the account is either endpoint
func (r *transactionRepository) GetByAccountID(accountID uint, offset, limit int) ([]models.Transaction, int64, error) {
	return r.findByEndpoints([]uint{accountID}, offset, limit)
}

// GetByUserAccounts retrieves transactions involving any of the given accounts
func (r *transactionRepository) GetByUserAccounts(accountIDs []uint, offset, limit int) ([]models.Transaction, int64, error) {
	if len(accountIDs) == 0 {
		return []models.Transaction{}, 0, nil
	}
	return r.findByEndpoints(accountIDs, offset, limit)
}

func (r *transactionRepository) findByEndpoints(accountIDs []uint, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).
		Where("from_account_id IN ? OR to_account_id IN ?", accountIDs, accountIDs)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if err := query.
		Preload("TransactionType").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions by accounts: %w", err)
	}

	return transactions, total, nil
}

// Delete removes a ledger entry. Balances are not compensated; this is an
// administrative correction, not a reversal.
func (r *transactionRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
