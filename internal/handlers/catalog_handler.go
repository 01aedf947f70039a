package handlers

import (
	stderrors "errors"
	"net/http"

	"starbank/internal/dto"
	"starbank/internal/errors"
	"starbank/internal/models"
	"starbank/internal/repositories"
	"starbank/internal/services"

	"github.com/labstack/echo/v4"
)

// CatalogHandler handles the tariff catalog endpoints: transaction types,
// cashback rules, card types and card designs.
type CatalogHandler struct {
	catalogService services.CatalogServiceInterface
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService services.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Transaction types

func (h *CatalogHandler) CreateTransactionType(c echo.Context) error {
	var req dto.CreateTransactionTypeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	transactionType, err := h.catalogService.CreateTransactionType(req.Title)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusCreated, transactionType)
}

func (h *CatalogHandler) GetTransactionType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	transactionType, err := h.catalogService.GetTransactionType(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrTransactionTypeNotFound) {
			return SendError(c, errors.TransactionTypeNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, transactionType)
}

func (h *CatalogHandler) ListTransactionTypes(c echo.Context) error {
	types, err := h.catalogService.GetTransactionTypes()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, types)
}

func (h *CatalogHandler) UpdateTransactionType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateTransactionTypeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	transactionType, err := h.catalogService.UpdateTransactionType(id, req.Title)
	if err != nil {
		if stderrors.Is(err, repositories.ErrTransactionTypeNotFound) {
			return SendError(c, errors.TransactionTypeNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, transactionType)
}

// DeleteTransactionType removes a transaction type and its dependent ledger
// entries
func (h *CatalogHandler) DeleteTransactionType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.catalogService.DeleteTransactionType(id); err != nil {
		if stderrors.Is(err, repositories.ErrTransactionTypeNotFound) {
			return SendError(c, errors.TransactionTypeNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Cashback rules

func (h *CatalogHandler) CreateCashback(c echo.Context) error {
	var req dto.CreateCashbackRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	cashback, err := h.catalogService.CreateCashback(req.Title, req.Percent, req.TransactionTypeIDs)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusCreated, cashback)
}

func (h *CatalogHandler) GetCashback(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	cashback, err := h.catalogService.GetCashback(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCashbackNotFound) {
			return SendError(c, errors.CashbackNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cashback)
}

func (h *CatalogHandler) ListCashbacks(c echo.Context) error {
	cashbacks, err := h.catalogService.GetCashbacks()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cashbacks)
}

func (h *CatalogHandler) UpdateCashback(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateCashbackRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	cashback, err := h.catalogService.UpdateCashback(id, req.Title, req.Percent, req.TransactionTypeIDs)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCashbackNotFound) {
			return SendError(c, errors.CashbackNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cashback)
}

func (h *CatalogHandler) DeleteCashback(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.catalogService.DeleteCashback(id); err != nil {
		if stderrors.Is(err, repositories.ErrCashbackNotFound) {
			return SendError(c, errors.CashbackNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Card types

func (h *CatalogHandler) CreateCardType(c echo.Context) error {
	var req dto.CreateCardTypeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	cardType, err := h.catalogService.CreateCardType(req.Title, req.PushPrice, req.ServicePrice, req.CashbackIDs)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusCreated, cardType)
}

func (h *CatalogHandler) GetCardType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	cardType, err := h.catalogService.GetCardType(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCardTypeNotFound) {
			return SendError(c, errors.CardTypeNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cardType)
}

func (h *CatalogHandler) ListCardTypes(c echo.Context) error {
	cardTypes, err := h.catalogService.GetCardTypes()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cardTypes)
}

func (h *CatalogHandler) UpdateCardType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateCardTypeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	cardType, err := h.catalogService.UpdateCardType(id, req.Title, req.PushPrice, req.ServicePrice, req.CashbackIDs)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCardTypeNotFound) {
			return SendError(c, errors.CardTypeNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, cardType)
}

// DeleteCardType removes a card type; a type still referenced by cards is
// rejected
func (h *CatalogHandler) DeleteCardType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.catalogService.DeleteCardType(id); err != nil {
		if stderrors.Is(err, repositories.ErrCardTypeNotFound) {
			return SendError(c, errors.CardTypeNotFound)
		}
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return c.NoContent(http.StatusNoContent)
}

// Card designs

func (h *CatalogHandler) CreateCardDesign(c echo.Context) error {
	var req dto.CreateCardDesignRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	design, err := h.catalogService.CreateCardDesign(&models.CardDesign{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Example:     req.Example,
	})
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusCreated, design)
}

func (h *CatalogHandler) GetCardDesign(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	design, err := h.catalogService.GetCardDesign(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCardDesignNotFound) {
			return SendError(c, errors.CardDesignNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, design)
}

func (h *CatalogHandler) ListCardDesigns(c echo.Context) error {
	designs, err := h.catalogService.GetCardDesigns()
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, designs)
}

func (h *CatalogHandler) UpdateCardDesign(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	var req dto.UpdateCardDesignRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	design, err := h.catalogService.UpdateCardDesign(id, req.Title, req.Author, req.Description, req.Example)
	if err != nil {
		if stderrors.Is(err, repositories.ErrCardDesignNotFound) {
			return SendError(c, errors.CardDesignNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.JSON(http.StatusOK, design)
}

// DeleteCardDesign removes a design; cards referencing it fall back to no
// design
func (h *CatalogHandler) DeleteCardDesign(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.catalogService.DeleteCardDesign(id); err != nil {
		if stderrors.Is(err, repositories.ErrCardDesignNotFound) {
			return SendError(c, errors.CardDesignNotFound)
		}
		return SendSystemError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
