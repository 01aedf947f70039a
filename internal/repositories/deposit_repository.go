package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

// depositRepository implements DepositRepositoryInterface
type depositRepository struct {
	db *gorm.DB
}

// NewDepositRepository creates a new deposit repository
func NewDepositRepository(db *gorm.DB) DepositRepositoryInterface {
	return &depositRepository{
		db: db,
	}
}

// GetByID retrieves a deposit by ID
func (r *depositRepository) GetByID(id uint) (*models.Deposit, error) {
	var deposit models.Deposit
	if err := r.db.First(&deposit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}
	return &deposit, nil
}

// GetByAccountID retrieves the deposit linked to a bank account
func (r *depositRepository) GetByAccountID(accountID uint) (*models.Deposit, error) {
	var deposit models.Deposit
	if err := r.db.Where("bank_account_id = ?", accountID).First(&deposit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepositNotFound
		}
		return nil, fmt.Errorf("failed to get deposit by account: %w", err)
	}
	return &deposit, nil
}

// GetByUserID retrieves all deposits owned by a user through their accounts
func (r *depositRepository) GetByUserID(userID uint) ([]models.Deposit, error) {
	var deposits []models.Deposit
	if err := r.db.
		Joins("INNER JOIN bank_accounts ON bank_accounts.id = deposits.bank_account_id").
		Where("bank_accounts.user_id = ?", userID).
		Order("deposits.id ASC").
		Find(&deposits).Error; err != nil {
		return nil, fmt.Errorf("failed to get deposits for user: %w", err)
	}
	return deposits, nil
}

// GetAll retrieves all deposits
func (r *depositRepository) GetAll() ([]models.Deposit, error) {
	var deposits []models.Deposit
	if err := r.db.Order("id ASC").Find(&deposits).Error; err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// UpdateFields updates specific fields of a deposit
func (r *depositRepository) UpdateFields(depositID uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.Deposit{}).
		Where("id = ?", depositID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update deposit fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDepositNotFound
	}
	return nil
}
