package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCashbackNotFound = errors.New("cashback not found")
)

// cashbackRepository implements CashbackRepositoryInterface
type cashbackRepository struct {
	db *gorm.DB
}

// NewCashbackRepository creates a new cashback repository
func NewCashbackRepository(db *gorm.DB) CashbackRepositoryInterface {
	return &cashbackRepository{
		db: db,
	}
}

// Create creates a new cashback rule, including its transaction type links
func (r *cashbackRepository) Create(cashback *models.Cashback) error {
	if cashback == nil {
		return errors.New("cashback cannot be nil")
	}

	if err := r.db.Create(cashback).Error; err != nil {
		return fmt.Errorf("failed to create cashback: %w", err)
	}
	return nil
}

// GetByID retrieves a cashback rule by ID with its transaction types
func (r *cashbackRepository) GetByID(id uint) (*models.Cashback, error) {
	var cashback models.Cashback
	if err := r.db.Preload("TransactionTypes").First(&cashback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCashbackNotFound
		}
		return nil, fmt.Errorf("failed to get cashback: %w", err)
	}
	return &cashback, nil
}

// GetAll retrieves all cashback rules with their transaction types
func (r *cashbackRepository) GetAll() ([]models.Cashback, error) {
	var cashbacks []models.Cashback
	if err := r.db.Preload("TransactionTypes").Order("id ASC").Find(&cashbacks).Error; err != nil {
		return nil, fmt.Errorf("failed to list cashbacks: %w", err)
	}
	return cashbacks, nil
}

// Update updates a cashback rule's own fields
func (r *cashbackRepository) Update(cashback *models.Cashback) error {
	if cashback == nil {
		return errors.New("cashback cannot be nil")
	}

	if err := r.db.Omit("TransactionTypes").Save(cashback).Error; err != nil {
		return fmt.Errorf("failed to update cashback: %w", err)
	}
	return nil
}

// SetTransactionTypes replaces the rule's covered transaction types
func (r *cashbackRepository) SetTransactionTypes(cashbackID uint, transactionTypeIDs []uint) error {
	cashback, err := r.GetByID(cashbackID)
	if err != nil {
		return err
	}

	transactionTypes := make([]models.TransactionType, 0, len(transactionTypeIDs))
	for _, id := range transactionTypeIDs {
		transactionTypes = append(transactionTypes, models.TransactionType{ID: id})
	}

	if err := r.db.Model(cashback).Association("TransactionTypes").Replace(transactionTypes); err != nil {
		return fmt.Errorf("failed to set cashback transaction types: %w", err)
	}
	return nil
}

// Delete deletes a cashback rule and its associations
func (r *cashbackRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		cashback := &models.Cashback{ID: id}

		if err := tx.Model(cashback).Association("TransactionTypes").Clear(); err != nil {
			return fmt.Errorf("failed to clear cashback transaction types: %w", err)
		}

		result := tx.Delete(cashback)
		if result.Error != nil {
			return fmt.Errorf("failed to delete cashback: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCashbackNotFound
		}
		return nil
	})
}
