package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCardTypeNotFound = errors.New("card type not found")
)

// cardTypeRepository implements CardTypeRepositoryInterface
type cardTypeRepository struct {
	db *gorm.DB
}

// NewCardTypeRepository creates a new card type repository
func NewCardTypeRepository(db *gorm.DB) CardTypeRepositoryInterface {
	return &cardTypeRepository{
		db: db,
	}
}

// Create creates a new card type, including its cashback links
func (r *cardTypeRepository) Create(cardType *models.CardType) error {
	if cardType == nil {
		return errors.New("card type cannot be nil")
	}

	if err := r.db.Create(cardType).Error; err != nil {
		return fmt.Errorf("failed to create card type: %w", err)
	}
	return nil
}

// GetByID retrieves a card type by ID with its full cashback rule graph
func (r *cardTypeRepository) GetByID(id uint) (*models.CardType, error) {
	var cardType models.CardType
	if err := r.db.
		Preload("Cashbacks.TransactionTypes").
		First(&cardType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardTypeNotFound
		}
		return nil, fmt.Errorf("failed to get card type: %w", err)
	}
	return &cardType, nil
}

// GetAll retrieves all card types with their cashback rules
func (r *cardTypeRepository) GetAll() ([]models.CardType, error) {
	var cardTypes []models.CardType
	if err := r.db.
		Preload("Cashbacks.TransactionTypes").
		Order("id ASC").
		Find(&cardTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to list card types: %w", err)
	}
	return cardTypes, nil
}

// Update updates a card type's own fields
func (r *cardTypeRepository) Update(cardType *models.CardType) error {
	if cardType == nil {
		return errors.New("card type cannot be nil")
	}

	if err := r.db.Omit("Cashbacks").Save(cardType).Error; err != nil {
		return fmt.Errorf("failed to update card type: %w", err)
	}
	return nil
}

// SetCashbacks replaces the card type's cashback rules
func (r *cardTypeRepository) SetCashbacks(cardTypeID uint, cashbackIDs []uint) error {
	cardType, err := r.GetByID(cardTypeID)
	if err != nil {
		return err
	}

	cashbacks := make([]models.Cashback, 0, len(cashbackIDs))
	for _, id := range cashbackIDs {
		cashbacks = append(cashbacks, models.Cashback{ID: id})
	}

	if err := r.db.Model(cardType).Association("Cashbacks").Replace(cashbacks); err != nil {
		return fmt.Errorf("failed to set card type cashbacks: %w", err)
	}
	return nil
}

// Delete deletes a card type and its associations. Cards still referencing
// the type block the delete.
func (r *cardTypeRepository) Delete(id uint) error {
	var count int64
	if err := r.db.Model(&models.Card{}).Where("card_type_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check card type usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("card type %d is in use by %d cards", id, count)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		cardType := &models.CardType{ID: id}

		if err := tx.Model(cardType).Association("Cashbacks").Clear(); err != nil {
			return fmt.Errorf("failed to clear card type cashbacks: %w", err)
		}

		result := tx.Delete(cardType)
		if result.Error != nil {
			return fmt.Errorf("failed to delete card type: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCardTypeNotFound
		}
		return nil
	})
}
