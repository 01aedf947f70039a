package models

import (
	"errors"

	"gorm.io/gorm"
)

// CardDesign is the visual theme a card may reference.
type CardDesign struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(128);not null" json:"title"`
	Author      string `gorm:"type:varchar(128)" json:"author,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Example     string `gorm:"type:varchar(128)" json:"example,omitempty"`
}

// BeforeCreate hook for CardDesign
func (d *CardDesign) BeforeCreate(tx *gorm.DB) error {
	return d.Validate()
}

// Validate validates the card design fields
func (d *CardDesign) Validate() error {
	if d.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// TableName returns the table name for CardDesign
func (d *CardDesign) TableName() string {
	return "card_designs"
}
