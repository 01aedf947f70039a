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

// CardHandler handles card endpoints
type CardHandler struct {
	accountService services.AccountServiceInterface
}

// NewCardHandler creates a new card handler
func NewCardHandler(accountService services.AccountServiceInterface) *CardHandler {
	return &CardHandler{accountService: accountService}
}

// CreateCard opens a card together with its owning bank account
// @Summary Open a card
// @Tags Cards
// @Accept json
// @Produce json
// @Param request body dto.CreateCardRequest true "Card details"
// @Success 201 {object} models.BankAccount "Account with the new card"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid payload"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - Unknown user"
// @Router /cards [post]
func (h *CardHandler) CreateCard(c echo.Context) error {
	var req dto.CreateCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	account, err := h.accountService.OpenCardAccount(c.Request().Context(), services.OpenCardInput{
		UserID:     req.UserID,
		Currency:   req.Currency,
		Balance:    req.Balance,
		CardTypeID: req.CardTypeID,
		DesignID:   req.DesignID,
		IsPush:     req.IsPush,
	})
	if err != nil {
		if stderrors.Is(err, repositories.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, account)
}

// GetCard retrieves a card by ID
func (h *CardHandler) GetCard(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	card, err := h.accountService.GetCard(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCardNotFound) {
			return SendError(c, errors.CardNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, card)
}

// ListCards lists all cards
func (h *CardHandler) ListCards(c echo.Context) error {
	cards, err := h.accountService.GetCards()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cards)
}

// GetUserCards lists the cards behind a user's accounts
func (h *CardHandler) GetUserCards(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	cards, err := h.accountService.GetUserCards(userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cards)
}

// UpdateCard applies a partial update to a card
func (h *CardHandler) UpdateCard(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	card, err := h.accountService.UpdateCard(id, services.CardUpdate{
		IsPush:    req.IsPush,
		IsBlocked: req.IsBlocked,
		DesignID:  req.DesignID,
	})
	if err != nil {
		if stderrors.Is(err, repositories.ErrCardNotFound) {
			return SendError(c, errors.CardNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, card)
}

// DeleteCard removes a card together with its owning account
func (h *CardHandler) DeleteCard(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.accountService.DeleteCard(c.Request().Context(), id); err != nil {
		if stderrors.Is(err, repositories.ErrCardNotFound) {
			return SendError(c, errors.CardNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
