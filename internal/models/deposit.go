package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// DepositTermYears is the period between issue and completion.
	DepositTermYears = 3

	DefaultDepositMaxValue = 100000
)

// Deposit is the savings instrument linked 1:1 to a bank account. Deposits
// never earn cashback and never pay push or service fees.
type Deposit struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	BankAccountID uint            `gorm:"uniqueIndex;not null" json:"bank_account"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'RUB'" json:"currency"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"money"`
	InterestRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"interest_rate"`
	MinValue      int64           `gorm:"not null;default:0" json:"min_value"`
	MaxValue      int64           `gorm:"not null;default:100000" json:"max_value"`
	IssueDate     time.Time       `gorm:"type:date;not null" json:"date_issue"`
	ExpiryDate    time.Time       `gorm:"type:date;not null" json:"completion_date"`

	// Associations
	BankAccount BankAccount `gorm:"foreignKey:BankAccountID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook for Deposit
func (d *Deposit) BeforeCreate(tx *gorm.DB) error {
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}
	if d.MaxValue == 0 {
		d.MaxValue = DefaultDepositMaxValue
	}

	now := time.Now()
	if d.IssueDate.IsZero() {
		d.IssueDate = now
	}
	if d.ExpiryDate.IsZero() {
		d.ExpiryDate = d.IssueDate.AddDate(DepositTermYears, 0, 0)
	}

	return d.Validate()
}

// BeforeUpdate hook for Deposit
func (d *Deposit) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return d.Validate()
}

// Validate validates the deposit fields
func (d *Deposit) Validate() error {
	if d.BankAccountID == 0 {
		return errors.New("bank account ID is required")
	}
	if !IsValidCurrency(d.Currency) {
		return errors.New("invalid currency code")
	}
	if d.MinValue < 0 {
		return errors.New("min value cannot be negative")
	}
	if d.MaxValue < d.MinValue {
		return errors.New("max value cannot be less than min value")
	}
	return nil
}

// Kind returns the instrument kind for Deposit
func (d *Deposit) Kind() InstrumentKind {
	return InstrumentKindDeposit
}

// AccountID returns the owning bank account ID
func (d *Deposit) AccountID() uint {
	return d.BankAccountID
}

// AvailableBalance returns the deposit balance
func (d *Deposit) AvailableBalance() decimal.Decimal {
	return d.Balance
}

// CurrencyCode returns the deposit currency
func (d *Deposit) CurrencyCode() string {
	return d.Currency
}

// Debit subtracts the amount from the deposit balance
func (d *Deposit) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if d.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	d.Balance = d.Balance.Sub(amount)
	return nil
}

// Credit adds the amount to the deposit balance
func (d *Deposit) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	d.Balance = d.Balance.Add(amount)
	return nil
}

// TableName returns the table name for Deposit
func (d *Deposit) TableName() string {
	return "deposits"
}
