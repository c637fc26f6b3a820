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

func TestService_EnsureBalance(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)

	t.Run("returns an existing balance without granting anything", func(t *testing.T) {
		f := newLedgerFixture()
		balance := existingBalance(userID, "10.00")

		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(balance, nil)

		got, err := f.service.EnsureBalance(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, balance, got)
		f.balanceRepo.AssertNotCalled(t, "Create")
		f.txRepo.AssertNotCalled(t, "HasBonus")
	})

	t.Run("creates the balance and grants the welcome bonus on first access", func(t *testing.T) {
		f := newLedgerFixture()

		var created *entity.Balance
		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(nil, errs.ErrBalanceNotFound).Once()
		f.balanceRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Balance")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*entity.Balance)
			}).
			Return(nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).
			Return(func(ctx context.Context, id uint64) *entity.Balance { return created }, nil)
		f.balanceRepo.On("GetByUserID", mock.Anything, userID).
			Return(func(ctx context.Context, id uint64) *entity.Balance { return created }, nil)
		f.balanceRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Balance")).Return(nil)

		f.txRepo.On("HasBonus", mock.Anything, userID, entity.BonusKindWelcome).Return(false, nil)

		var welcomeTx *entity.Transaction
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				welcomeTx = args.Get(1).(*entity.Transaction)
			}).
			Return(nil)

		balance, err := f.service.EnsureBalance(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, "5.00", balance.Balance.StringFixed(2))
		assert.Equal(t, "5.00", balance.BonusBalance.StringFixed(2))
		assert.NotEmpty(t, balance.ReferralCode)

		assert.NotNil(t, welcomeTx)
		assert.Equal(t, entity.TransactionTypeBonus, welcomeTx.Type)
		assert.Equal(t, entity.BonusKindWelcome, welcomeTx.BonusKind)
		assert.Equal(t, "5.00", welcomeTx.Amount.StringFixed(2))
	})

	t.Run("does not grant the welcome bonus twice", func(t *testing.T) {
		f := newLedgerFixture()

		var created *entity.Balance
		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(nil, errs.ErrBalanceNotFound).Once()
		f.balanceRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Balance")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*entity.Balance)
			}).
			Return(nil)
		f.balanceRepo.On("GetByUserID", mock.Anything, userID).
			Return(func(ctx context.Context, id uint64) *entity.Balance { return created }, nil)

		f.txRepo.On("HasBonus", mock.Anything, userID, entity.BonusKindWelcome).Return(true, nil)

		balance, err := f.service.EnsureBalance(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, "0.00", balance.Balance.StringFixed(2))
		f.txRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects a zero user ID", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.EnsureBalance(ctx, 0)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}

func TestService_AddReferralBonus(t *testing.T) {
	ctx := context.Background()
	referrerID := uint64(1)
	referredID := uint64(2)

	t.Run("credits both sides and tracks referral earnings", func(t *testing.T) {
		f := newLedgerFixture()
		referrerBalance := existingBalance(referrerID, "0.00")
		referredBalance := existingBalance(referredID, "5.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, referrerID).Return(referrerBalance, nil)
		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, referredID).Return(referredBalance, nil)
		f.balanceRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Balance")).Return(nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		referrerTx, referredTx, err := f.service.AddReferralBonus(ctx, referrerID, referredID, "alice")

		assert.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeReferral, referrerTx.Type)
		assert.Equal(t, "10.00", referrerTx.Amount.StringFixed(2))
		assert.Equal(t, entity.TransactionTypeBonus, referredTx.Type)
		assert.Equal(t, entity.BonusKindReferralSignup, referredTx.BonusKind)
		assert.Equal(t, "5.00", referredTx.Amount.StringFixed(2))

		assert.Equal(t, "10.00", referrerBalance.Balance.StringFixed(2))
		assert.Equal(t, "10.00", referrerBalance.ReferralEarnings.StringFixed(2))
		assert.Equal(t, "10.00", referredBalance.Balance.StringFixed(2))
	})
}

func TestService_AddBonus(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)

	t.Run("credits a promotional amount", func(t *testing.T) {
		f := newLedgerFixture()
		balance := existingBalance(userID, "0.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		tx, err := f.service.AddBonus(ctx, userID, decimal.RequireFromString("3.00"), "Compensation")

		assert.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeBonus, tx.Type)
		assert.Equal(t, "3.00", balance.Balance.StringFixed(2))
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.AddBonus(ctx, userID, decimal.Zero, "Nothing")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
