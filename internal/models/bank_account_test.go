package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account BankAccount
		wantErr bool
	}{
		{
			name: "valid account",
			account: BankAccount{
				Number:   "12345678901234567890",
				UserID:   1,
				BankName: DefaultBankName,
			},
			wantErr: false,
		},
		{
			name: "missing user ID",
			account: BankAccount{
				Number: "12345678901234567890",
			},
			wantErr: true,
		},
		{
			name: "number too short",
			account: BankAccount{
				Number: "1234567890",
				UserID: 1,
			},
			wantErr: true,
		},
		{
			name: "number with letters",
			account: BankAccount{
				Number: "1234567890123456789a",
				UserID: 1,
			},
			wantErr: true,
		},
		{
			name: "number too long",
			account: BankAccount{
				Number: "123456789012345678901",
				UserID: 1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAccountNumber(t *testing.T) {
	assert.True(t, ValidateAccountNumber("00000000000000000000"))
	assert.True(t, ValidateAccountNumber("99999999999999999999"))
	assert.False(t, ValidateAccountNumber(""))
	assert.False(t, ValidateAccountNumber("123"))
	assert.False(t, ValidateAccountNumber(strings.Repeat("1", 21)))
	assert.False(t, ValidateAccountNumber("1234567890123456789x"))
}

func TestGenerateAccountNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := GenerateAccountNumber()
		require.True(t, ValidateAccountNumber(number), "generated number %q is invalid", number)
		seen[number] = true
	}
	// 100 random 20-digit numbers colliding would indicate a broken generator
	assert.Greater(t, len(seen), 90)
}

func TestBankAccount_LinkedInstrument(t *testing.T) {
	t.Run("card linked", func(t *testing.T) {
		account := BankAccount{ID: 1, Card: &Card{ID: 7, BankAccountID: 1}}
		inst, err := account.LinkedInstrument()
		require.NoError(t, err)
		assert.Equal(t, InstrumentKindCard, inst.Kind())
		assert.Equal(t, uint(1), inst.AccountID())
	})

	t.Run("deposit linked", func(t *testing.T) {
		account := BankAccount{ID: 2, Deposit: &Deposit{ID: 9, BankAccountID: 2}}
		inst, err := account.LinkedInstrument()
		require.NoError(t, err)
		assert.Equal(t, InstrumentKindDeposit, inst.Kind())
	})

	t.Run("nothing linked is an integrity fault", func(t *testing.T) {
		account := BankAccount{ID: 3}
		_, err := account.LinkedInstrument()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoLinkedInstrument))
	})
}
