package models

import (
	"errors"

	"gorm.io/gorm"
)

const (
	DefaultPushPrice    = 30
	DefaultServicePrice = 50
)

// CardType groups cards by tariff: notification and service pricing plus the
// set of cashback rules its cards earn by.
type CardType struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"type:varchar(128);not null" json:"title"`
	PushPrice    int64  `gorm:"not null;default:30" json:"push_price"`
	ServicePrice int64  `gorm:"not null;default:50" json:"service_price"`

	Cashbacks []Cashback `gorm:"many2many:card_type_cashbacks" json:"-"`
}

// BeforeCreate hook for CardType
func (ct *CardType) BeforeCreate(tx *gorm.DB) error {
	return ct.Validate()
}

// BeforeUpdate hook for CardType
func (ct *CardType) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return ct.Validate()
}

// Validate validates the card type fields
func (ct *CardType) Validate() error {
	if ct.Title == "" {
		return errors.New("title is required")
	}
	if ct.PushPrice < 0 || ct.ServicePrice < 0 {
		return errors.New("prices cannot be negative")
	}
	return nil
}

// ResolveCashbackPercent returns the highest percent among the card type's
// rules that cover the transaction type. Rules never stack; an uncovered type
// resolves to 0. Cashbacks and their TransactionTypes must be preloaded.
func (ct *CardType) ResolveCashbackPercent(transactionTypeID uint) int {
	percent := 0
	for i := range ct.Cashbacks {
		rule := &ct.Cashbacks[i]
		if rule.AppliesTo(transactionTypeID) && rule.Percent > percent {
			percent = rule.Percent
		}
	}
	return percent
}

// TableName returns the table name for CardType
func (ct *CardType) TableName() string {
	return "card_types"
}
