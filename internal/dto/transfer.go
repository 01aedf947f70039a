package dto

import (
	"starbank/internal/models"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest is the payload for POST /transactions. Money uses
// shopspring decimal so fractional amounts survive binding untouched.
type CreateTransferRequest struct {
	FromNumber        string          `json:"from_number" validate:"required,account_number"`
	ToNumber          string          `json:"to_number" validate:"required,account_number"`
	Money             decimal.Decimal `json:"money" validate:"required"`
	Currency          string          `json:"currency" validate:"omitempty,currency"`
	TransactionTypeID uint            `json:"transaction_type" validate:"required"`
}

// ListTransactionsResponse wraps a ledger page with its pagination metadata
type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   PaginationInfo       `json:"pagination"`
}

// PaginationInfo contains offset pagination metadata
type PaginationInfo struct {
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
	Total  int64 `json:"total"`
}
