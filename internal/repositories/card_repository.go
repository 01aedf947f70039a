package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCardNotFound    = errors.New("card not found")
	ErrDepositNotFound = errors.New("deposit not found")
)

// cardRepository implements CardRepositoryInterface
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB) CardRepositoryInterface {
	return &cardRepository{
		db: db,
	}
}

// GetByID retrieves a card by ID with its type and design preloaded
func (r *cardRepository) GetByID(id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.
		Preload("CardType.Cashbacks.TransactionTypes").
		Preload("Design").
		First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// GetByAccountID retrieves the card linked to a bank account
func (r *cardRepository) GetByAccountID(accountID uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.
		Preload("CardType.Cashbacks.TransactionTypes").
		Preload("Design").
		Where("bank_account_id = ?", accountID).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card by account: %w", err)
	}
	return &card, nil
}

// GetByUserID retrieves all cards owned by a user through their accounts
func (r *cardRepository) GetByUserID(userID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.
		Preload("CardType").
		Preload("Design").
		Joins("INNER JOIN bank_accounts ON bank_accounts.id = cards.bank_account_id").
		Where("bank_accounts.user_id = ?", userID).
		Order("cards.id ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to get cards for user: %w", err)
	}
	return cards, nil
}

// GetAll retrieves all cards
func (r *cardRepository) GetAll() ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.
		Preload("CardType").
		Preload("Design").
		Order("id ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// UpdateFields updates specific fields of a card
func (r *cardRepository) UpdateFields(cardID uint, fields map[string]interface{}) error {
	result := r.db.Model(&models.Card{}).
		Where("id = ?", cardID).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update card fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
