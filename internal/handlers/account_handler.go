package handlers

import (
	stderrors "errors"
	"net/http"

	"starbank/internal/dto"
	"starbank/internal/errors"
	"starbank/internal/repositories"
	"starbank/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles bank account endpoints. Accounts are never created
// directly; opening a card or deposit creates the owning account.
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetAccount retrieves an account with its instrument
// @Summary Get account by ID
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} models.BankAccount
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	account, err := h.accountService.GetAccount(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// ListAccounts lists accounts with pagination
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	offset, limit := parsePagination(c)

	accounts, total, err := h.accountService.GetAccounts(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListAccountsResponse{
		Accounts:   accounts,
		Pagination: dto.PaginationInfo{Offset: offset, Limit: limit, Total: total},
	})
}

// GetUserAccounts lists a user's accounts
func (h *AccountHandler) GetUserAccounts(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	accounts, err := h.accountService.GetUserAccounts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

// UpdateAccount applies a partial update to an account
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	account, err := h.accountService.UpdateAccount(id, services.AccountUpdate{BankName: req.BankName})
	if err != nil {
		if stderrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// DeleteAccount removes an account together with its instrument
// @Summary Delete account
// @Description Deletes the account and its card or deposit atomically. Ledger rows keep the history with the endpoint detached.
// @Tags Accounts
// @Param id path int true "Account ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.accountService.DeleteAccount(c.Request().Context(), id); err != nil {
		if stderrors.Is(err, repositories.ErrAccountNotFound) {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
