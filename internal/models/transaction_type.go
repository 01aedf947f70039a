package models

import (
	"errors"

	"gorm.io/gorm"
)

// TransactionType classifies transactions, e.g. "transfer" or "payment".
// Cashback rules reference these to scope what they cover.
type TransactionType struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"type:varchar(128);not null" json:"title"`
}

// BeforeCreate hook for TransactionType
func (tt *TransactionType) BeforeCreate(tx *gorm.DB) error {
	return tt.Validate()
}

// Validate validates the transaction type fields
func (tt *TransactionType) Validate() error {
	if tt.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// TableName returns the table name for TransactionType
func (tt *TransactionType) TableName() string {
	return "transaction_types"
}
