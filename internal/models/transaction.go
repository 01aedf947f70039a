package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")
)

// Transaction is the append-only ledger entry for a transfer. It is created
// exactly once, never updated; endpoints survive account deletion as orphaned
// references (SET NULL).
type Transaction struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	FromAccountID     *uint           `gorm:"index" json:"from_number"`
	ToAccountID       *uint           `gorm:"index" json:"to_number"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"money"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'RUB'" json:"currency"`
	TransactionTypeID uint            `gorm:"not null" json:"transaction_type"`
	CashbackAwarded   int64           `gorm:"not null;default:0" json:"cashback_money"`
	Reference         string          `gorm:"type:varchar(100);index" json:"reference,omitempty"`
	CreatedAt         time.Time       `gorm:"not null;index" json:"date"`

	// Associations
	FromAccount     *BankAccount    `gorm:"foreignKey:FromAccountID;constraint:OnDelete:SET NULL" json:"-"`
	ToAccount       *BankAccount    `gorm:"foreignKey:ToAccountID;constraint:OnDelete:SET NULL" json:"-"`
	TransactionType TransactionType `gorm:"foreignKey:TransactionTypeID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Currency == "" {
		t.Currency = DefaultCurrency
	}
	if t.Reference == "" {
		t.Reference = GenerateTransactionReference()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionAmount
	}
	if !IsValidCurrency(t.Currency) {
		return errors.New("invalid currency code")
	}
	if t.TransactionTypeID == 0 {
		return errors.New("transaction type ID is required")
	}
	if t.CashbackAwarded < 0 {
		return errors.New("cashback awarded cannot be negative")
	}
	return nil
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// GenerateTransactionReference generates a unique transaction reference
func GenerateTransactionReference() string {
	return "TXN-" + uuid.New().String()[:8] + "-" + time.Now().Format("20060102150405")
}
