package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidPercent = errors.New("percent must be between 0 and 100")
)

// Cashback is a rule attached to card types: transfers whose transaction type
// is in the rule's set earn the given percent back.
type Cashback struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(128);not null" json:"title"`
	Percent int    `gorm:"not null;default:0" json:"percent"`

	TransactionTypes []TransactionType `gorm:"many2many:cashback_transaction_types" json:"-"`
}

// BeforeCreate hook for Cashback
func (c *Cashback) BeforeCreate(tx *gorm.DB) error {
	return c.Validate()
}

// BeforeUpdate hook for Cashback
func (c *Cashback) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return c.Validate()
}

// Validate validates the cashback rule fields
func (c *Cashback) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Percent < 0 || c.Percent > 100 {
		return ErrInvalidPercent
	}
	return nil
}

// AppliesTo reports whether the rule covers the given transaction type.
// TransactionTypes must be preloaded.
func (c *Cashback) AppliesTo(transactionTypeID uint) bool {
	for _, tt := range c.TransactionTypes {
		if tt.ID == transactionTypeID {
			return true
		}
	}
	return false
}

// TableName returns the table name for Cashback
func (c *Cashback) TableName() string {
	return "cashbacks"
}

// CashbackAmount converts a resolved percent into awarded cashback units:
// floor(amount * percent / 100), truncated toward zero. Amounts are validated
// positive before this runs, so floor and truncation agree.
func CashbackAmount(amount decimal.Decimal, percent int) int64 {
	if percent <= 0 {
		return 0
	}
	return amount.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Floor().IntPart()
}
