package dto

import (
	"starbank/internal/models"

	"github.com/shopspring/decimal"
)

// UpdateAccountRequest carries optional fields for PUT /accounts/:id
type UpdateAccountRequest struct {
	BankName *string `json:"bank_name" validate:"omitempty,max=128"`
}

// ListAccountsResponse wraps an account page with its pagination metadata
type ListAccountsResponse struct {
	Accounts   []models.BankAccount `json:"accounts"`
	Pagination PaginationInfo       `json:"pagination"`
}

// CreateCardRequest is the payload for POST /cards; the owning bank account
// is opened together with the card.
type CreateCardRequest struct {
	UserID     uint            `json:"user" validate:"required"`
	Currency   string          `json:"currency" validate:"omitempty,currency"`
	Balance    decimal.Decimal `json:"balance" validate:"omitempty"`
	CardTypeID uint            `json:"card_type" validate:"required"`
	DesignID   *uint           `json:"design"`
	IsPush     bool            `json:"is_push"`
}

// UpdateCardRequest carries optional fields for PUT /cards/:id
type UpdateCardRequest struct {
	IsPush    *bool `json:"is_push"`
	IsBlocked *bool `json:"is_blocked"`
	DesignID  *uint `json:"design"`
}

// CreateDepositRequest is the payload for POST /deposits; the owning bank
// account is opened together with the deposit.
type CreateDepositRequest struct {
	UserID       uint            `json:"user" validate:"required"`
	Currency     string          `json:"currency" validate:"omitempty,currency"`
	Balance      decimal.Decimal `json:"balance" validate:"omitempty"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"omitempty"`
	MinValue     int64           `json:"min_value" validate:"omitempty,min=0"`
	MaxValue     int64           `json:"max_value" validate:"omitempty,min=0"`
}

// UpdateDepositRequest carries optional fields for PUT /deposits/:id
type UpdateDepositRequest struct {
	InterestRate *decimal.Decimal `json:"interest_rate"`
	MinValue     *int64           `json:"min_value" validate:"omitempty,min=0"`
	MaxValue     *int64           `json:"max_value" validate:"omitempty,min=0"`
}
