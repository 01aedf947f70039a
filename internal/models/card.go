package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// CardValidityYears is the period between issue and expiry.
	CardValidityYears = 3
)

// Card is the spendable instrument linked 1:1 to a bank account. Cards earn
// cashback on outgoing transfers according to their card type's rules; the
// accrual is a bookkeeping credit and never re-enters the spendable balance.
type Card struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	BankAccountID   uint            `gorm:"uniqueIndex;not null" json:"bank_account"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'RUB'" json:"currency"`
	Balance         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"money"`
	CardTypeID      uint            `gorm:"not null" json:"card_type"`
	IsPush          bool            `gorm:"not null;default:false" json:"is_push"`
	IssueDate       time.Time       `gorm:"type:date;not null" json:"date_issue"`
	ExpiryDate      time.Time       `gorm:"type:date;not null" json:"completion_date"`
	DesignID        *uint           `json:"design,omitempty"`
	CashbackAccrued int64           `gorm:"not null;default:0" json:"cashback_money"`
	IsBlocked       bool            `gorm:"not null;default:false" json:"is_blocked"`

	// Associations
	BankAccount BankAccount `gorm:"foreignKey:BankAccountID;constraint:OnDelete:CASCADE" json:"-"`
	CardType    CardType    `gorm:"foreignKey:CardTypeID" json:"-"`
	Design      *CardDesign `gorm:"foreignKey:DesignID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook for Card
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}

	now := time.Now()
	if c.IssueDate.IsZero() {
		c.IssueDate = now
	}
	if c.ExpiryDate.IsZero() {
		c.ExpiryDate = c.IssueDate.AddDate(CardValidityYears, 0, 0)
	}

	return c.Validate()
}

// BeforeUpdate hook for Card
func (c *Card) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return c.Validate()
}

// Validate validates the card fields. A negative balance is tolerated by the
// schema; transfers guard against overdrafts before any mutation.
func (c *Card) Validate() error {
	if c.BankAccountID == 0 {
		return errors.New("bank account ID is required")
	}
	if c.CardTypeID == 0 {
		return errors.New("card type ID is required")
	}
	if !IsValidCurrency(c.Currency) {
		return errors.New("invalid currency code")
	}
	return nil
}

// Kind returns the instrument kind for Card
func (c *Card) Kind() InstrumentKind {
	return InstrumentKindCard
}

// AccountID returns the owning bank account ID
func (c *Card) AccountID() uint {
	return c.BankAccountID
}

// AvailableBalance returns the spendable balance
func (c *Card) AvailableBalance() decimal.Decimal {
	return c.Balance
}

// CurrencyCode returns the card currency
func (c *Card) CurrencyCode() string {
	return c.Currency
}

// Debit subtracts the amount from the card balance
func (c *Card) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if c.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	c.Balance = c.Balance.Sub(amount)
	return nil
}

// Credit adds the amount to the card balance
func (c *Card) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	c.Balance = c.Balance.Add(amount)
	return nil
}

// AccrueCashback adds earned cashback units to the accrual counter.
func (c *Card) AccrueCashback(money int64) {
	c.CashbackAccrued += money
}

// IsExpired reports whether the card is past its expiry date
func (c *Card) IsExpired() bool {
	return time.Now().After(c.ExpiryDate)
}

// TableName returns the table name for Card
func (c *Card) TableName() string {
	return "cards"
}
