package database

import (
	"fmt"
	"testing"

	"starbank/internal/config"
	"starbank/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transactions",
		"cards",
		"deposits",
		"bank_accounts",
		"card_type_cashbacks",
		"cashback_transaction_types",
		"cashbacks",
		"card_types",
		"card_designs",
		"transaction_types",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		FirstName:    "Test",
		LastName:     "User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestTransactionType(t *testing.T, db *DB, title string) *models.TransactionType {
	t.Helper()

	transactionType := &models.TransactionType{Title: title}

	if err := db.Create(transactionType).Error; err != nil {
		t.Fatalf("failed to create test transaction type: %v", err)
	}

	return transactionType
}

func CreateTestCashback(t *testing.T, db *DB, percent int, transactionTypes ...models.TransactionType) *models.Cashback {
	t.Helper()

	cashback := &models.Cashback{
		Title:            fmt.Sprintf("%d%% cashback", percent),
		Percent:          percent,
		TransactionTypes: transactionTypes,
	}

	if err := db.Create(cashback).Error; err != nil {
		t.Fatalf("failed to create test cashback: %v", err)
	}

	return cashback
}

func CreateTestCardType(t *testing.T, db *DB, title string, cashbacks ...models.Cashback) *models.CardType {
	t.Helper()

	cardType := &models.CardType{
		Title:        title,
		PushPrice:    models.DefaultPushPrice,
		ServicePrice: models.DefaultServicePrice,
		Cashbacks:    cashbacks,
	}

	if err := db.Create(cardType).Error; err != nil {
		t.Fatalf("failed to create test card type: %v", err)
	}

	return cardType
}

// CreateTestCardAccount opens a bank account with a linked card and returns
// the account with associations preloaded.
func CreateTestCardAccount(t *testing.T, db *DB, userID uint, cardTypeID uint, balance decimal.Decimal, currency string) *models.BankAccount {
	t.Helper()

	account := &models.BankAccount{
		Number: models.GenerateAccountNumber(),
		UserID: userID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bank account: %v", err)
	}

	card := &models.Card{
		BankAccountID: account.ID,
		Currency:      currency,
		Balance:       balance,
		CardTypeID:    cardTypeID,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}

	return reloadTestAccount(t, db, account.ID)
}

// CreateTestDepositAccount opens a bank account with a linked deposit and
// returns the account with associations preloaded.
func CreateTestDepositAccount(t *testing.T, db *DB, userID uint, balance decimal.Decimal, currency string) *models.BankAccount {
	t.Helper()

	account := &models.BankAccount{
		Number: models.GenerateAccountNumber(),
		UserID: userID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bank account: %v", err)
	}

	deposit := &models.Deposit{
		BankAccountID: account.ID,
		Currency:      currency,
		Balance:       balance,
	}
	if err := db.Create(deposit).Error; err != nil {
		t.Fatalf("failed to create test deposit: %v", err)
	}

	return reloadTestAccount(t, db, account.ID)
}

func reloadTestAccount(t *testing.T, db *DB, accountID uint) *models.BankAccount {
	t.Helper()

	var account models.BankAccount
	err := db.
		Preload("Card.CardType.Cashbacks.TransactionTypes").
		Preload("Deposit").
		First(&account, accountID).Error
	if err != nil {
		t.Fatalf("failed to reload test account: %v", err)
	}

	return &account
}
