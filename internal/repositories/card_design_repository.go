package repositories

import (
	"errors"
	"fmt"

	"starbank/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCardDesignNotFound = errors.New("card design not found")
)

// cardDesignRepository implements CardDesignRepositoryInterface
type cardDesignRepository struct {
	db *gorm.DB
}

// NewCardDesignRepository creates a new card design repository
func NewCardDesignRepository(db *gorm.DB) CardDesignRepositoryInterface {
	return &cardDesignRepository{
		db: db,
	}
}

// Create creates a new card design
func (r *cardDesignRepository) Create(design *models.CardDesign) error {
	if design == nil {
		return errors.New("card design cannot be nil")
	}

	if err := r.db.Create(design).Error; err != nil {
		return fmt.Errorf("failed to create card design: %w", err)
	}
	return nil
}

// GetByID retrieves a card design by ID
func (r *cardDesignRepository) GetByID(id uint) (*models.CardDesign, error) {
	var design models.CardDesign
	if err := r.db.First(&design, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardDesignNotFound
		}
		return nil, fmt.Errorf("failed to get card design: %w", err)
	}
	return &design, nil
}

// GetAll retrieves all card designs
func (r *cardDesignRepository) GetAll() ([]models.CardDesign, error) {
	var designs []models.CardDesign
	if err := r.db.Order("id ASC").Find(&designs).Error; err != nil {
		return nil, fmt.Errorf("failed to list card designs: %w", err)
	}
	return designs, nil
}

// Update updates a card design
func (r *cardDesignRepository) Update(design *models.CardDesign) error {
	if design == nil {
		return errors.New("card design cannot be nil")
	}

	if err := r.db.Save(design).Error; err != nil {
		return fmt.Errorf("failed to update card design: %w", err)
	}
	return nil
}

// Delete deletes a card design. Cards referencing it keep working with the
// reference cleared (SET NULL).
func (r *cardDesignRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Card{}).
			Where("design_id = ?", id).
			Update("design_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach cards from design: %w", err)
		}

		result := tx.Delete(&models.CardDesign{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete card design: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCardDesignNotFound
		}
		return nil
	})
}
