package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	"github.com/berikbekishev-source/nanobanana-core/mocks/port/core"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates a pending entry", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		tx, err := NewTransaction(42, TransactionTypeDeposit, decimal.RequireFromString("20.00"), "Deposit via stars", mockTimeProvider)

		assert.NoError(t, err)
		assert.Equal(t, uint64(42), tx.UserID)
		assert.Equal(t, TransactionTypeDeposit, tx.Type)
		assert.True(t, tx.IsPending)
		assert.False(t, tx.IsCompleted)
		assert.Equal(t, fixedTime, tx.CreatedAt)
	})

	t.Run("rejects zero user ID", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewTransaction(0, TransactionTypeDeposit, decimal.RequireFromString("1.00"), "", mockTimeProvider)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewTransaction(42, TransactionTypeDeposit, decimal.Zero, "", mockTimeProvider)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestTransaction_CreditDebit(t *testing.T) {
	credit := &Transaction{Amount: decimal.RequireFromString("5.00")}
	debit := &Transaction{Amount: decimal.RequireFromString("-5.00")}

	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())
	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
}

func TestTransaction_MarkCompleted(t *testing.T) {
	tx := &Transaction{IsPending: true}

	tx.MarkCompleted(decimal.RequireFromString("25.00"))

	assert.False(t, tx.IsPending)
	assert.True(t, tx.IsCompleted)
	assert.True(t, tx.Resolved())
	assert.Equal(t, "25.00", tx.BalanceAfter.StringFixed(2))
}

func TestTransaction_MarkFailed(t *testing.T) {
	tx := &Transaction{IsPending: true}

	tx.MarkFailed()

	assert.False(t, tx.IsPending)
	assert.False(t, tx.IsCompleted)
	assert.True(t, tx.Resolved())
}
