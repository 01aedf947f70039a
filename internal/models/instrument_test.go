package models

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard_DebitCredit(t *testing.T) {
	card := Card{
		BankAccountID: 1,
		CardTypeID:    1,
		Currency:      CurrencyRUB,
		Balance:       decimal.NewFromInt(500),
	}

	require.NoError(t, card.Debit(decimal.NewFromInt(200)))
	assert.True(t, card.Balance.Equal(decimal.NewFromInt(300)))

	require.NoError(t, card.Credit(decimal.NewFromInt(50)))
	assert.True(t, card.Balance.Equal(decimal.NewFromInt(350)))

	err := card.Debit(decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, card.Balance.Equal(decimal.NewFromInt(350)))

	assert.ErrorIs(t, card.Debit(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, card.Credit(decimal.NewFromInt(-1)), ErrInvalidAmount)
}

func TestCard_DebitFullBalance(t *testing.T) {
	card := Card{Balance: decimal.NewFromFloat(123.45)}

	require.NoError(t, card.Debit(decimal.NewFromFloat(123.45)))
	assert.True(t, card.Balance.IsZero())
}

func TestCard_AccrueCashback(t *testing.T) {
	card := Card{}
	card.AccrueCashback(50)
	card.AccrueCashback(9)
	assert.Equal(t, int64(59), card.CashbackAccrued)
}

func TestDeposit_DebitCredit(t *testing.T) {
	deposit := Deposit{
		BankAccountID: 1,
		Currency:      CurrencyUSD,
		Balance:       decimal.NewFromInt(1000),
	}

	require.NoError(t, deposit.Debit(decimal.NewFromInt(1000)))
	assert.True(t, deposit.Balance.IsZero())

	assert.ErrorIs(t, deposit.Debit(decimal.NewFromInt(1)), ErrInsufficientFunds)

	require.NoError(t, deposit.Credit(decimal.NewFromFloat(10.50)))
	assert.True(t, deposit.Balance.Equal(decimal.NewFromFloat(10.50)))
}

func TestCanCover(t *testing.T) {
	balance := decimal.NewFromFloat(gofakeit.Float64Range(100, 1000))
	card := &Card{Balance: balance}

	assert.True(t, CanCover(card, balance))
	assert.True(t, CanCover(card, balance.Sub(decimal.NewFromInt(1))))
	assert.False(t, CanCover(card, balance.Add(decimal.NewFromFloat(0.01))))
}

func TestDeposit_Validate(t *testing.T) {
	deposit := Deposit{BankAccountID: 1, Currency: CurrencyRUB, MinValue: 100, MaxValue: 50}
	assert.Error(t, deposit.Validate())

	deposit.MaxValue = 100000
	assert.NoError(t, deposit.Validate())

	deposit.Currency = "GBP"
	assert.Error(t, deposit.Validate())
}
