package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// InstrumentKind discriminates the two instrument variants.
type InstrumentKind string

const (
	InstrumentKindCard    InstrumentKind = "card"
	InstrumentKindDeposit InstrumentKind = "deposit"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Instrument is the financial object behind a bank account: a Card or a
// Deposit. It holds the balance and currency a transfer operates on. The two
// concrete types are the only implementations; the interface makes the
// "exactly one of" relation structural instead of probed at runtime.
type Instrument interface {
	Kind() InstrumentKind
	AccountID() uint
	AvailableBalance() decimal.Decimal
	CurrencyCode() string
	Debit(amount decimal.Decimal) error
	Credit(amount decimal.Decimal) error
}

// CanCover reports whether the instrument balance covers the amount.
func CanCover(inst Instrument, amount decimal.Decimal) bool {
	return inst.AvailableBalance().GreaterThanOrEqual(amount)
}
