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

// DepositHandler handles deposit endpoints
type DepositHandler struct {
	accountService services.AccountServiceInterface
}

// NewDepositHandler creates a new deposit handler
func NewDepositHandler(accountService services.AccountServiceInterface) *DepositHandler {
	return &DepositHandler{accountService: accountService}
}

// CreateDeposit opens a deposit together with its owning bank account
// @Summary Open a deposit
// @Tags Deposits
// @Accept json
// @Produce json
// @Param request body dto.CreateDepositRequest true "Deposit details"
// @Success 201 {object} models.BankAccount "Account with the new deposit"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid payload"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - Unknown user"
// @Router /deposits [post]
func (h *DepositHandler) CreateDeposit(c echo.Context) error {
	var req dto.CreateDepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	account, err := h.accountService.OpenDepositAccount(c.Request().Context(), services.OpenDepositInput{
		UserID:       req.UserID,
		Currency:     req.Currency,
		Balance:      req.Balance,
		InterestRate: req.InterestRate,
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
	})
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, account)
}

// GetDeposit retrieves a deposit by ID
func (h *DepositHandler) GetDeposit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	deposit, err := h.accountService.GetDeposit(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrDepositNotFound) {
			return SendError(c, errors.DepositNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, deposit)
}

// ListDeposits lists all deposits
func (h *DepositHandler) ListDeposits(c echo.Context) error {
	deposits, err := h.accountService.GetDeposits()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, deposits)
}

// GetUserDeposits lists the deposits behind a user's accounts
func (h *DepositHandler) GetUserDeposits(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	deposits, err := h.accountService.GetUserDeposits(userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, deposits)
}

// UpdateDeposit applies a partial update to a deposit
func (h *DepositHandler) UpdateDeposit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateDepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	deposit, err := h.accountService.UpdateDeposit(id, services.DepositUpdate{
		InterestRate: req.InterestRate,
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
	})
	if err != nil {
		if stderrors.Is(err, repositories.ErrDepositNotFound) {
			return SendError(c, errors.DepositNotFound)
		}
		if stderrors.Is(err, services.ErrDepositRangeInvalid) {
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, deposit)
}

// DeleteDeposit removes a deposit together with its owning account
func (h *DepositHandler) DeleteDeposit(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.accountService.DeleteDeposit(c.Request().Context(), id); err != nil {
		if stderrors.Is(err, repositories.ErrDepositNotFound) {
			return SendError(c, errors.DepositNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
