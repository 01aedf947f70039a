package models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const (
	// DefaultBankName is assigned to accounts opened without an explicit bank.
	DefaultBankName = "Star-Bank"

	// AccountNumberLength is the fixed length of an account number.
	AccountNumberLength = 20
)

var (
	ErrInvalidAccountNumber = errors.New("account number must be exactly 20 digits")
	ErrNoLinkedInstrument   = errors.New("bank account has no linked card or deposit")
)

// BankAccount links a unique account number to an owner. Every account owns
// exactly one instrument, a Card or a Deposit, created together with it.
type BankAccount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	BankName  string    `gorm:"type:varchar(128);not null;default:'Star-Bank'" json:"bank_name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Associations
	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Card    *Card    `gorm:"foreignKey:BankAccountID" json:"-"`
	Deposit *Deposit `gorm:"foreignKey:BankAccountID" json:"-"`
}

// BeforeCreate hook for BankAccount
func (a *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if a.BankName == "" {
		a.BankName = DefaultBankName
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for BankAccount
func (a *BankAccount) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the bank account fields
func (a *BankAccount) Validate() error {
	if a.UserID == 0 {
		return errors.New("user ID is required")
	}
	if !ValidateAccountNumber(a.Number) {
		return ErrInvalidAccountNumber
	}
	return nil
}

// LinkedInstrument resolves the instrument behind the account. Exactly one of
// Card or Deposit must be linked once account opening completes; anything else
// is a data-integrity fault, not a user error. Associations must be preloaded.
func (a *BankAccount) LinkedInstrument() (Instrument, error) {
	if a.Card != nil {
		return a.Card, nil
	}
	if a.Deposit != nil {
		return a.Deposit, nil
	}
	return nil, fmt.Errorf("bank account %d: %w", a.ID, ErrNoLinkedInstrument)
}

// TableName returns the table name for BankAccount
func (a *BankAccount) TableName() string {
	return "bank_accounts"
}

// ValidateAccountNumber reports whether the number is exactly 20 digits.
func ValidateAccountNumber(number string) bool {
	if len(number) != AccountNumberLength {
		return false
	}
	for _, char := range number {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// GenerateAccountNumber generates a random 20-digit account number.
// Uniqueness is enforced by the repository against the store.
func GenerateAccountNumber() string {
	digits := make([]byte, AccountNumberLength)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
