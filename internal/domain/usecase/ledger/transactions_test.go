package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

func TestService_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)

	t.Run("applies a non-pending deposit immediately", func(t *testing.T) {
		f := newLedgerFixture()
		balance := existingBalance(userID, "0.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		tx, err := f.service.CreateTransaction(ctx, CreateTransactionInput{
			UserID:        userID,
			Amount:        decimal.RequireFromString("20.00"),
			Type:          entity.TransactionTypeDeposit,
			Description:   "Deposit via stars",
			PaymentMethod: "stars",
		})

		assert.NoError(t, err)
		assert.True(t, tx.IsCompleted)
		assert.False(t, tx.IsPending)
		assert.Equal(t, "20.00", tx.BalanceAfter.StringFixed(2))
		assert.Equal(t, "20.00", balance.Balance.StringFixed(2))
		assert.Equal(t, "20.00", balance.TotalDeposited.StringFixed(2))
	})

	t.Run("keeps a pending deposit off the balance", func(t *testing.T) {
		f := newLedgerFixture()
		balance := existingBalance(userID, "5.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		tx, err := f.service.CreateTransaction(ctx, CreateTransactionInput{
			UserID:        userID,
			Amount:        decimal.RequireFromString("20.00"),
			Type:          entity.TransactionTypeDeposit,
			Description:   "Deposit via stars",
			PaymentMethod: "stars",
			Pending:       true,
		})

		assert.NoError(t, err)
		assert.True(t, tx.IsPending)
		assert.False(t, tx.IsCompleted)
		// BalanceAfter snapshots the balance before application
		assert.Equal(t, "5.00", tx.BalanceAfter.StringFixed(2))
		assert.Equal(t, "5.00", balance.Balance.StringFixed(2))
		f.balanceRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.CreateTransaction(ctx, CreateTransactionInput{
			UserID: userID,
			Amount: decimal.Zero,
			Type:   entity.TransactionTypeDeposit,
		})

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestService_CompleteTransaction(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)

	t.Run("applies a pending deposit and grants the first deposit bonus", func(t *testing.T) {
		f := newLedgerFixture()
		pending := &entity.Transaction{
			ID:        7,
			UserID:    userID,
			Type:      entity.TransactionTypeDeposit,
			Amount:    decimal.RequireFromString("20.00"),
			IsPending: true,
		}
		balance := existingBalance(userID, "0.00")

		f.txRepo.On("GetByIDForUpdate", mock.Anything, uint64(7)).Return(pending, nil)
		f.txRepo.On("Update", mock.Anything, pending).Return(nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("HasBonus", mock.Anything, userID, entity.BonusKindFirstDeposit).Return(false, nil)

		var bonusTx *entity.Transaction
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				bonusTx = args.Get(1).(*entity.Transaction)
			}).
			Return(nil)

		tx, err := f.service.CompleteTransaction(ctx, 7, entity.CompletionStatusCompleted)

		assert.NoError(t, err)
		assert.True(t, tx.IsCompleted)
		assert.Equal(t, "20.00", tx.BalanceAfter.StringFixed(2))

		// 20% of 20.00
		assert.NotNil(t, bonusTx)
		assert.Equal(t, entity.TransactionTypeBonus, bonusTx.Type)
		assert.Equal(t, entity.BonusKindFirstDeposit, bonusTx.BonusKind)
		assert.Equal(t, "4.00", bonusTx.Amount.StringFixed(2))

		// Deposit plus bonus
		assert.Equal(t, "24.00", balance.Balance.StringFixed(2))
		assert.Equal(t, "20.00", balance.TotalDeposited.StringFixed(2))
		assert.Equal(t, "4.00", balance.BonusBalance.StringFixed(2))
	})

	t.Run("caps the first deposit bonus at 50 tokens", func(t *testing.T) {
		f := newLedgerFixture()
		pending := &entity.Transaction{
			ID:        8,
			UserID:    userID,
			Type:      entity.TransactionTypeDeposit,
			Amount:    decimal.RequireFromString("1000.00"),
			IsPending: true,
		}
		balance := existingBalance(userID, "0.00")

		f.txRepo.On("GetByIDForUpdate", mock.Anything, uint64(8)).Return(pending, nil)
		f.txRepo.On("Update", mock.Anything, pending).Return(nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("HasBonus", mock.Anything, userID, entity.BonusKindFirstDeposit).Return(false, nil)

		var bonusTx *entity.Transaction
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				bonusTx = args.Get(1).(*entity.Transaction)
			}).
			Return(nil)

		_, err := f.service.CompleteTransaction(ctx, 8, entity.CompletionStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, "50.00", bonusTx.Amount.StringFixed(2))
	})

	t.Run("skips the bonus when already granted", func(t *testing.T) {
		f := newLedgerFixture()
		pending := &entity.Transaction{
			ID:        9,
			UserID:    userID,
			Type:      entity.TransactionTypeDeposit,
			Amount:    decimal.RequireFromString("20.00"),
			IsPending: true,
		}
		balance := existingBalance(userID, "0.00")

		f.txRepo.On("GetByIDForUpdate", mock.Anything, uint64(9)).Return(pending, nil)
		f.txRepo.On("Update", mock.Anything, pending).Return(nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("HasBonus", mock.Anything, userID, entity.BonusKindFirstDeposit).Return(true, nil)

		_, err := f.service.CompleteTransaction(ctx, 9, entity.CompletionStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, "20.00", balance.Balance.StringFixed(2))
		f.txRepo.AssertNotCalled(t, "Create")
	})

	t.Run("marks a failed transaction without applying funds", func(t *testing.T) {
		f := newLedgerFixture()
		pending := &entity.Transaction{
			ID:        10,
			UserID:    userID,
			Type:      entity.TransactionTypeDeposit,
			Amount:    decimal.RequireFromString("20.00"),
			IsPending: true,
		}

		f.txRepo.On("GetByIDForUpdate", mock.Anything, uint64(10)).Return(pending, nil)
		f.txRepo.On("Update", mock.Anything, pending).Return(nil)

		tx, err := f.service.CompleteTransaction(ctx, 10, entity.CompletionStatusFailed)

		assert.NoError(t, err)
		assert.False(t, tx.IsPending)
		assert.False(t, tx.IsCompleted)
		f.balanceRepo.AssertNotCalled(t, "GetByUserIDForUpdate")
	})

	t.Run("is a no-op on an already resolved transaction", func(t *testing.T) {
		f := newLedgerFixture()
		resolved := &entity.Transaction{
			ID:          11,
			UserID:      userID,
			Type:        entity.TransactionTypeDeposit,
			Amount:      decimal.RequireFromString("20.00"),
			IsPending:   false,
			IsCompleted: true,
		}

		f.txRepo.On("GetByIDForUpdate", mock.Anything, uint64(11)).Return(resolved, nil)

		tx, err := f.service.CompleteTransaction(ctx, 11, entity.CompletionStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, resolved, tx)
		f.txRepo.AssertNotCalled(t, "Update")
		f.balanceRepo.AssertNotCalled(t, "GetByUserIDForUpdate")
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.CompleteTransaction(ctx, 12, entity.CompletionStatus("bogus"))

		assert.ErrorIs(t, err, errs.ErrValidation)
		f.txRepo.AssertNotCalled(t, "GetByIDForUpdate")
	})
}
