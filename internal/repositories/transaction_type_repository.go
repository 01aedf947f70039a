package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionTypeNotFound = errors.New("transaction type not found")
)

// transactionTypeRepository implements TransactionTypeRepositoryInterface
type transactionTypeRepository struct {
	db *gorm.DB
}

// NewTransactionTypeRepository creates a new transaction type repository
func NewTransactionTypeRepository(db *gorm.DB) TransactionTypeRepositoryInterface {
	return &transactionTypeRepository{
		db: db,
	}
}

// Create creates a new transaction type
func (r *transactionTypeRepository) Create(transactionType *models.TransactionType) error {
	if transactionType == nil {
		return errors.New("transaction type cannot be nil")
	}

	if err := r.db.Create(transactionType).Error; err != nil {
		return fmt.Errorf("failed to create transaction type: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction type by ID
func (r *transactionTypeRepository) GetByID(id uint) (*models.TransactionType, error) {
	var transactionType models.TransactionType
	if err := r.db.First(&transactionType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionTypeNotFound
		}
		return nil, fmt.Errorf("failed to get transaction type: %w", err)
	}
	return &transactionType, nil
}

// GetAll retrieves all transaction types
func (r *transactionTypeRepository) GetAll() ([]models.TransactionType, error) {
	var transactionTypes []models.TransactionType
	if err := r.db.Order("id ASC").Find(&transactionTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to list transaction types: %w", err)
	}
	return transactionTypes, nil
}

// Update updates a transaction type
func (r *transactionTypeRepository) Update(transactionType *models.TransactionType) error {
	if transactionType == nil {
		return errors.New("transaction type cannot be nil")
	}

	if err := r.db.Save(transactionType).Error; err != nil {
		return fmt.Errorf("failed to update transaction type: %w", err)
	}
	return nil
}

// Delete deletes a transaction type. Transactions referencing it are removed
// with it (CASCADE); ledger entries for dropped types do not survive.
func (r *transactionTypeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_type_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete dependent transactions: %w", err)
		}

		result := tx.Delete(&models.TransactionType{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction type: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionTypeNotFound
		}
		return nil
	})
}
