package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "starbank/internal/errors"
	"starbank/internal/models"
	"starbank/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrFromAccountNotFound = errors.New("source account not found")
	ErrToAccountNotFound   = errors.New("destination account not found")
)

// TransferService runs the money-transfer pipeline: accumulated validation,
// cashback resolution, then the atomic three-record mutation through the
// account repository's executor.
type TransferService struct {
	accountRepo     repositories.BankAccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	typeRepo        repositories.TransactionTypeRepositoryInterface
	logger          *slog.Logger
	metrics         MetricsRecorderInterface
}

// NewTransferService creates a new transfer service
func NewTransferService(
	accountRepo repositories.BankAccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	typeRepo repositories.TransactionTypeRepositoryInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) TransferServiceInterface {
	return &TransferService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		typeRepo:        typeRepo,
		logger:          logger,
		metrics:         metrics,
	}
}

// CreateTransfer validates and executes a transfer between two accounts'
// instruments. Validation accumulates every violation into a field→messages
// map before anything mutates; a missing instrument aborts as an integrity
// fault instead. On success the recorded Transaction is returned.
func (ts *TransferService) CreateTransfer(ctx context.Context, input TransferInput) (*models.Transaction, error) {
	start := time.Now()

	if input.Currency == "" {
		input.Currency = models.DefaultCurrency
	}

	fromAccount, err := ts.accountRepo.GetByNumber(input.FromNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrFromAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve source account: %w", err)
	}

	toAccount, err := ts.accountRepo.GetByNumber(input.ToNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrToAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve destination account: %w", err)
	}

	transactionType, err := ts.typeRepo.GetByID(input.TransactionTypeID)
	if err != nil {
		return nil, err
	}

	fromInstrument, toInstrument, err := validateTransfer(fromAccount, toAccount, input.Amount, input.Currency)
	if err != nil {
		ts.recordOutcome(ctx, "rejected", start, input)
		return nil, err
	}

	cashbackMoney := resolveCashback(fromInstrument, transactionType.ID, input.Amount)

	created, err := ts.accountRepo.ExecuteTransfer(repositories.TransferExecution{
		FromAccountID:     fromAccount.ID,
		ToAccountID:       toAccount.ID,
		FromInstrument:    fromInstrument,
		ToInstrument:      toInstrument,
		Amount:            input.Amount,
		Currency:          input.Currency,
		TransactionTypeID: transactionType.ID,
		CashbackMoney:     cashbackMoney,
	})
	if err != nil {
		ts.recordOutcome(ctx, "failed", start, input)

		// A concurrent debit can drain the source between validation and
		// execution; surface that the same way the validator would.
		if errors.Is(err, models.ErrInsufficientFunds) {
			verrs := apperrors.ValidationErrors{}
			verrs.Add("from_number", insufficientFundsMessage(fromInstrument))
			return nil, verrs
		}
		return nil, fmt.Errorf("transfer execution failed: %w", err)
	}

	ts.recordOutcome(ctx, "success", start, input)
	ts.metrics.RecordGauge("transfer_amount", amountAsFloat(input.Amount), nil)
	if cashbackMoney > 0 {
		ts.metrics.IncrementCounter("cashback_awarded", map[string]string{"status": "success"})
	}

	ts.logger.InfoContext(ctx, "transfer completed",
		slog.Uint64("transaction_id", uint64(created.ID)),
		slog.String("from_number", input.FromNumber),
		slog.String("to_number", input.ToNumber),
		slog.String("amount", input.Amount.String()),
		slog.String("currency", input.Currency),
		slog.Int64("cashback_money", cashbackMoney),
		slog.String("trace_id", getTraceID(ctx)),
	)

	return created, nil
}

// validateTransfer applies every transfer rule and accumulates the failures
// so a single pass reports all of them. Instrument resolution failure is
// fatal and short-circuits: an account with no card and no deposit is broken
// data, not user input.
func validateTransfer(from, to *models.BankAccount, amount decimal.Decimal, currency string) (models.Instrument, models.Instrument, error) {
	fromInstrument, err := from.LinkedInstrument()
	if err != nil {
		return nil, nil, err
	}
	toInstrument, err := to.LinkedInstrument()
	if err != nil {
		return nil, nil, err
	}

	verrs := apperrors.ValidationErrors{}

	if amount.LessThanOrEqual(decimal.Zero) {
		verrs.Add("money", "amount must be greater than zero")
	}

	if from.ID == to.ID {
		verrs.AddNonField("cannot transfer to the same account")
	}

	if amount.GreaterThan(decimal.Zero) && !models.CanCover(fromInstrument, amount) {
		verrs.Add("from_number", insufficientFundsMessage(fromInstrument))
	}

	if fromInstrument.CurrencyCode() != currency {
		verrs.Add("from_number", fmt.Sprintf("source %s currency %s does not match transfer currency %s",
			fromInstrument.Kind(), fromInstrument.CurrencyCode(), currency))
	}
	if toInstrument.CurrencyCode() != currency {
		verrs.Add("to_number", fmt.Sprintf("destination %s currency %s does not match transfer currency %s",
			toInstrument.Kind(), toInstrument.CurrencyCode(), currency))
	}

	if !verrs.Empty() {
		return nil, nil, verrs
	}

	return fromInstrument, toInstrument, nil
}

// resolveCashback returns the integer cashback units the source earns: the
// maximum applicable percent of the source card's type, floored. Deposits
// never earn.
func resolveCashback(source models.Instrument, transactionTypeID uint, amount decimal.Decimal) int64 {
	card, ok := source.(*models.Card)
	if !ok {
		return 0
	}

	percent := card.CardType.ResolveCashbackPercent(transactionTypeID)
	return models.CashbackAmount(amount, percent)
}

func insufficientFundsMessage(instrument models.Instrument) string {
	return fmt.Sprintf("insufficient funds on the source %s", instrument.Kind())
}

func (ts *TransferService) recordOutcome(ctx context.Context, status string, start time.Time, input TransferInput) {
	ts.metrics.IncrementCounter("transfers_total", map[string]string{"status": status})
	ts.metrics.RecordProcessingTime("transfer_duration", time.Since(start))

	if status != "success" {
		ts.logger.WarnContext(ctx, "transfer not executed",
			slog.String("status", status),
			slog.String("from_number", input.FromNumber),
			slog.String("to_number", input.ToNumber),
			slog.String("trace_id", getTraceID(ctx)),
		)
	}
}

func amountAsFloat(amount decimal.Decimal) float64 {
	value, _ := amount.Float64()
	return value
}

// GetTransaction retrieves a single ledger entry
func (ts *TransferService) GetTransaction(id uint) (*models.Transaction, error) {
	return ts.transactionRepo.GetByID(id)
}

// GetTransactions lists ledger entries, newest first
func (ts *TransferService) GetTransactions(offset, limit int) ([]models.Transaction, int64, error) {
	return ts.transactionRepo.GetAll(offset, limit)
}

// GetUserTransactions returns the user's ledger entries split into outgoing
// and incoming relative to their accounts
func (ts *TransferService) GetUserTransactions(userID uint) (*UserTransactions, error) {
	accounts, err := ts.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	accountIDs := make(map[uint]bool, len(accounts))
	ids := make([]uint, 0, len(accounts))
	for _, account := range accounts {
		accountIDs[account.ID] = true
		ids = append(ids, account.ID)
	}

	entries, _, err := ts.transactionRepo.GetByUserAccounts(ids, 0, -1)
	if err != nil {
		return nil, err
	}

	result := &UserTransactions{
		Outgoing: []models.Transaction{},
		Incoming: []models.Transaction{},
	}
	for _, entry := range entries {
		if entry.FromAccountID != nil && accountIDs[*entry.FromAccountID] {
			result.Outgoing = append(result.Outgoing, entry)
		}
		if entry.ToAccountID != nil && accountIDs[*entry.ToAccountID] {
			result.Incoming = append(result.Incoming, entry)
		}
	}

	return result, nil
}

// DeleteTransaction removes a ledger entry. Kept for cleanup; balances are
// not compensated.
func (ts *TransferService) DeleteTransaction(id uint) error {
	return ts.transactionRepo.Delete(id)
}

func getTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value("trace_id").(string); ok {
		return traceID
	}
	return ""
}
