package handlers

import (
	stderrors "errors"
	"net/http"

	"starbank/internal/dto"
	"starbank/internal/errors"
	"starbank/internal/repositories"
	"starbank/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// TransferHandler handles the transfer and ledger endpoints
type TransferHandler struct {
	transferService services.TransferServiceInterface
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService services.TransferServiceInterface) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// CreateTransfer moves money between two accounts' instruments
// @Summary Create a transfer
// @Description Validate and execute a transfer. Validation failures return a 400 with the complete field → messages map; nothing is debited on rejection.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} models.Transaction "Recorded ledger entry"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Accumulated field errors"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 / CATALOG_001 - Unknown endpoint or transaction type"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [post]
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	var req dto.CreateTransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendValidationError(c, bindingErrors(err))
	}

	created, err := h.transferService.CreateTransfer(c.Request().Context(), services.TransferInput{
		FromNumber:        req.FromNumber,
		ToNumber:          req.ToNumber,
		Amount:            req.Money,
		Currency:          req.Currency,
		TransactionTypeID: req.TransactionTypeID,
	})
	if err != nil {
		var verrs errors.ValidationErrors
		if stderrors.As(err, &verrs) {
			return SendValidationError(c, verrs)
		}
		if stderrors.Is(err, services.ErrFromAccountNotFound) {
			return SendError(c, errors.AccountNotFound, errors.WithDetails("Source account not found"))
		}
		if stderrors.Is(err, services.ErrToAccountNotFound) {
			return SendError(c, errors.AccountNotFound, errors.WithDetails("Destination account not found"))
		}
		if stderrors.Is(err, repositories.ErrTransactionTypeNotFound) {
			return SendError(c, errors.TransactionTypeNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// GetTransaction retrieves a single ledger entry
// @Summary Get transaction by ID
// @Tags Transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} errors.ErrorResponse "TRANSFER_005 - Transaction not found"
// @Router /transactions/{id} [get]
func (h *TransferHandler) GetTransaction(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	transaction, err := h.transferService.GetTransaction(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, errors.TransferNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// ListTransactions lists ledger entries, newest first
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Param offset query int false "Page offset"
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Router /transactions [get]
func (h *TransferHandler) ListTransactions(c echo.Context) error {
	offset, limit := parsePagination(c)

	transactions, total, err := h.transferService.GetTransactions(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: transactions,
		Pagination:   dto.PaginationInfo{Offset: offset, Limit: limit, Total: total},
	})
}

// GetUserTransactions returns a user's ledger entries split into outgoing
// and incoming
// @Summary List a user's transactions
// @Tags Transactions
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} services.UserTransactions
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Router /users/{id}/transactions [get]
func (h *TransferHandler) GetUserTransactions(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	split, err := h.transferService.GetUserTransactions(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, split)
}

// DeleteTransaction removes a ledger entry without compensating balances
// @Summary Delete transaction
// @Tags Transactions
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "TRANSFER_005 - Transaction not found"
// @Router /transactions/{id} [delete]
func (h *TransferHandler) DeleteTransaction(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.transferService.DeleteTransaction(id); err != nil {
		if stderrors.Is(err, repositories.ErrTransactionNotFound) {
			return SendError(c, errors.TransferNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindingErrors converts go-playground violations into the same field →
// messages shape the transfer validator produces, so both failure paths
// render identically.
func bindingErrors(err error) errors.ValidationErrors {
	verrs := errors.ValidationErrors{}

	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		verrs.AddNonField(err.Error())
		return verrs
	}

	for _, fieldError := range fieldErrors {
		switch fieldError.Tag() {
		case "required":
			verrs.Add(fieldError.Field(), "this field is required")
		case "account_number":
			verrs.Add(fieldError.Field(), "must be exactly 20 digits")
		case "currency":
			verrs.Add(fieldError.Field(), "must be one of RUB, USD, EUR")
		case "positive_amount":
			verrs.Add(fieldError.Field(), "must be greater than zero")
		case "percent":
			verrs.Add(fieldError.Field(), "must be between 0 and 100")
		case "email":
			verrs.Add(fieldError.Field(), "must be a valid email address")
		default:
			verrs.Add(fieldError.Field(), "failed "+fieldError.Tag()+" validation")
		}
	}

	return verrs
}
