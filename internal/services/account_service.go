package services

import (
	"context"
	"errors"
	"log/slog"

	"starbank/internal/models"
	"starbank/internal/repositories"
)

// ErrDepositRangeInvalid is returned when a deposit update would leave
// max_value below min_value.
var ErrDepositRangeInvalid = errors.New("max value cannot be less than min value")

// AccountService manages bank accounts and their instruments. An account is
// never created or deleted apart from its card or deposit; the pair moves as
// one unit through the repository's transactional operations.
type AccountService struct {
	accountRepo repositories.BankAccountRepositoryInterface
	cardRepo    repositories.CardRepositoryInterface
	depositRepo repositories.DepositRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	logger      *slog.Logger
	metrics     MetricsRecorderInterface
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repositories.BankAccountRepositoryInterface,
	cardRepo repositories.CardRepositoryInterface,
	depositRepo repositories.DepositRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		cardRepo:    cardRepo,
		depositRepo: depositRepo,
		userRepo:    userRepo,
		logger:      logger,
		metrics:     metrics,
	}
}

// OpenCardAccount opens a bank account with a linked card in one atomic
// operation
func (as *AccountService) OpenCardAccount(ctx context.Context, input OpenCardInput) (*models.BankAccount, error) {
	if _, err := as.userRepo.GetByID(input.UserID); err != nil {
		return nil, err
	}

	number, err := as.accountRepo.GenerateUniqueNumber()
	if err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		Number: number,
		UserID: input.UserID,
	}
	card := &models.Card{
		Currency:   input.Currency,
		Balance:    input.Balance,
		CardTypeID: input.CardTypeID,
		DesignID:   input.DesignID,
		IsPush:     input.IsPush,
	}

	if err := as.accountRepo.CreateWithInstrument(account, card, nil); err != nil {
		return nil, err
	}

	as.metrics.IncrementCounter("accounts_opened", map[string]string{"instrument": string(models.InstrumentKindCard)})
	as.logger.InfoContext(ctx, "card account opened",
		slog.Uint64("account_id", uint64(account.ID)),
		slog.Uint64("user_id", uint64(input.UserID)),
		slog.String("number", account.Number),
		slog.String("trace_id", getTraceID(ctx)),
	)

	return as.accountRepo.GetByID(account.ID)
}

// OpenDepositAccount opens a bank account with a linked deposit in one
// atomic operation
func (as *AccountService) OpenDepositAccount(ctx context.Context, input OpenDepositInput) (*models.BankAccount, error) {
	if _, err := as.userRepo.GetByID(input.UserID); err != nil {
		return nil, err
	}

	number, err := as.accountRepo.GenerateUniqueNumber()
	if err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		Number: number,
		UserID: input.UserID,
	}
	deposit := &models.Deposit{
		Currency:     input.Currency,
		Balance:      input.Balance,
		InterestRate: input.InterestRate,
		MinValue:     input.MinValue,
		MaxValue:     input.MaxValue,
	}

	if err := as.accountRepo.CreateWithInstrument(account, nil, deposit); err != nil {
		return nil, err
	}

	as.metrics.IncrementCounter("accounts_opened", map[string]string{"instrument": string(models.InstrumentKindDeposit)})
	as.logger.InfoContext(ctx, "deposit account opened",
		slog.Uint64("account_id", uint64(account.ID)),
		slog.Uint64("user_id", uint64(input.UserID)),
		slog.String("number", account.Number),
		slog.String("trace_id", getTraceID(ctx)),
	)

	return as.accountRepo.GetByID(account.ID)
}

// GetAccount retrieves an account with its instrument
func (as *AccountService) GetAccount(id uint) (*models.BankAccount, error) {
	return as.accountRepo.GetByID(id)
}

// GetAccountByNumber retrieves an account by its 20-digit number
func (as *AccountService) GetAccountByNumber(number string) (*models.BankAccount, error) {
	return as.accountRepo.GetByNumber(number)
}

// GetAccounts lists accounts with pagination
func (as *AccountService) GetAccounts(offset, limit int) ([]models.BankAccount, int64, error) {
	return as.accountRepo.GetAll(offset, limit)
}

// GetUserAccounts lists a user's accounts
func (as *AccountService) GetUserAccounts(userID uint) ([]models.BankAccount, error) {
	return as.accountRepo.GetByUserID(userID)
}

// UpdateAccount applies the provided account fields and returns the fresh row
func (as *AccountService) UpdateAccount(id uint, update AccountUpdate) (*models.BankAccount, error) {
	fields := map[string]interface{}{}
	if update.BankName != nil {
		fields["bank_name"] = *update.BankName
	}

	if len(fields) > 0 {
		if err := as.accountRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return as.accountRepo.GetByID(id)
}

// DeleteAccount removes an account together with its instrument
func (as *AccountService) DeleteAccount(ctx context.Context, id uint) error {
	if err := as.accountRepo.DeleteWithInstrument(id); err != nil {
		return err
	}

	as.metrics.IncrementCounter("accounts_deleted", nil)
	as.logger.InfoContext(ctx, "account deleted",
		slog.Uint64("account_id", uint64(id)),
		slog.String("trace_id", getTraceID(ctx)),
	)

	return nil
}

// GetCard retrieves a card by ID
func (as *AccountService) GetCard(id uint) (*models.Card, error) {
	return as.cardRepo.GetByID(id)
}

// GetCards lists all cards
func (as *AccountService) GetCards() ([]models.Card, error) {
	return as.cardRepo.GetAll()
}

// GetUserCards lists the cards behind a user's accounts
func (as *AccountService) GetUserCards(userID uint) ([]models.Card, error) {
	return as.cardRepo.GetByUserID(userID)
}

// UpdateCard applies the provided card fields and returns the fresh row
func (as *AccountService) UpdateCard(id uint, update CardUpdate) (*models.Card, error) {
	fields := map[string]interface{}{}
	if update.IsPush != nil {
		fields["is_push"] = *update.IsPush
	}
	if update.IsBlocked != nil {
		fields["is_blocked"] = *update.IsBlocked
	}
	if update.DesignID != nil {
		fields["design_id"] = *update.DesignID
	}

	if len(fields) > 0 {
		if err := as.cardRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return as.cardRepo.GetByID(id)
}

// DeleteCard removes a card together with its bank account
func (as *AccountService) DeleteCard(ctx context.Context, id uint) error {
	card, err := as.cardRepo.GetByID(id)
	if err != nil {
		return err
	}
	return as.DeleteAccount(ctx, card.BankAccountID)
}

// GetDeposit retrieves a deposit by ID
func (as *AccountService) GetDeposit(id uint) (*models.Deposit, error) {
	return as.depositRepo.GetByID(id)
}

// GetDeposits lists all deposits
func (as *AccountService) GetDeposits() ([]models.Deposit, error) {
	return as.depositRepo.GetAll()
}

// GetUserDeposits lists the deposits behind a user's accounts
func (as *AccountService) GetUserDeposits(userID uint) ([]models.Deposit, error) {
	return as.depositRepo.GetByUserID(userID)
}

// UpdateDeposit applies the provided deposit fields and returns the fresh row
func (as *AccountService) UpdateDeposit(id uint, update DepositUpdate) (*models.Deposit, error) {
	deposit, err := as.depositRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.InterestRate != nil {
		fields["interest_rate"] = *update.InterestRate
	}
	if update.MinValue != nil {
		fields["min_value"] = *update.MinValue
	}
	if update.MaxValue != nil {
		fields["max_value"] = *update.MaxValue
	}

	minValue := deposit.MinValue
	if update.MinValue != nil {
		minValue = *update.MinValue
	}
	maxValue := deposit.MaxValue
	if update.MaxValue != nil {
		maxValue = *update.MaxValue
	}
	if maxValue < minValue {
		return nil, ErrDepositRangeInvalid
	}

	if len(fields) > 0 {
		if err := as.depositRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	return as.depositRepo.GetByID(id)
}

// DeleteDeposit removes a deposit together with its bank account
func (as *AccountService) DeleteDeposit(ctx context.Context, id uint) error {
	deposit, err := as.depositRepo.GetByID(id)
	if err != nil {
		return err
	}
	return as.DeleteAccount(ctx, deposit.BankAccountID)
}
