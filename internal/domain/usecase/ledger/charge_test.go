package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/pricing"
	"github.com/berikbekishev-source/nanobanana-core/mocks/port/core"
	"github.com/berikbekishev-source/nanobanana-core/mocks/port/persistence"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// ledgerFixture wires a ledger service against mocked persistence. The unit
// of work hands out the same repository mocks inside and outside transactions.
type ledgerFixture struct {
	uow          *persistence.MockUnitOfWork
	balanceRepo  *persistence.MockBalanceRepository
	txRepo       *persistence.MockTransactionRepository
	settingsRepo *persistence.MockUserSettingsRepository
	pricingRepo  *persistence.MockPricingRepository
	timeProvider *core.MockTimeProvider
	logger       *core.MockLogger
	service      *Service
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		uow:          new(persistence.MockUnitOfWork),
		balanceRepo:  new(persistence.MockBalanceRepository),
		txRepo:       new(persistence.MockTransactionRepository),
		settingsRepo: new(persistence.MockUserSettingsRepository),
		pricingRepo:  new(persistence.MockPricingRepository),
		timeProvider: new(core.MockTimeProvider),
		logger:       new(core.MockLogger),
	}

	f.uow.On("Begin", mock.Anything).Return(context.Background(), nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("GetBalanceRepository", mock.Anything).Return(f.balanceRepo)
	f.uow.On("GetTransactionRepository", mock.Anything).Return(f.txRepo)
	f.uow.On("GetUserSettingsRepository", mock.Anything).Return(f.settingsRepo)

	f.timeProvider.On("Now").Return(fixedTime)
	f.logger.On("Debug", mock.Anything, mock.Anything).Return()
	f.logger.On("Info", mock.Anything, mock.Anything).Return()
	f.logger.On("Warn", mock.Anything, mock.Anything).Return()
	f.logger.On("Error", mock.Anything, mock.Anything).Return()

	calculator := pricing.NewCalculator(f.pricingRepo, f.logger)
	f.service = NewService(f.uow, calculator, f.timeProvider, f.logger)
	return f
}

func existingBalance(userID uint64, amount string) *entity.Balance {
	return &entity.Balance{
		UserID:       userID,
		Balance:      decimal.RequireFromString(amount),
		ReferralCode: "TESTCODE01",
	}
}

func imageModel() *entity.AIModel {
	return &entity.AIModel{
		ID:          1,
		Slug:        "nano-banana",
		DisplayName: "Nano Banana",
		CostUnit:    entity.CostUnitImage,
		BaseCostUSD: decimal.RequireFromString("0.0390"),
		MaxQuantity: 4,
	}
}

func TestService_ChargeForGeneration(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)

	t.Run("debits the balance and records a completed debit", func(t *testing.T) {
		f := newLedgerFixture()
		balance := existingBalance(userID, "10.00")
		cost := decimal.RequireFromString("4.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		tx, err := f.service.ChargeForGeneration(ctx, userID, imageModel(), 2, &cost)

		assert.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeGeneration, tx.Type)
		assert.Equal(t, "-4.00", tx.Amount.StringFixed(2))
		assert.True(t, tx.IsCompleted)
		assert.Equal(t, "6.00", tx.BalanceAfter.StringFixed(2))
		assert.Equal(t, "6.00", balance.Balance.StringFixed(2))
		assert.Equal(t, "4.00", balance.TotalSpent.StringFixed(2))

		f.balanceRepo.AssertExpectations(t)
		f.txRepo.AssertExpectations(t)
	})

	t.Run("leaves no partial state when funds are insufficient", func(t *testing.T) {
		f := newLedgerFixture()
		balance := existingBalance(userID, "1.00")
		cost := decimal.RequireFromString("4.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)

		tx, err := f.service.ChargeForGeneration(ctx, userID, imageModel(), 2, &cost)

		assert.Nil(t, tx)
		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, "1.00", balance.Balance.StringFixed(2))
		f.balanceRepo.AssertNotCalled(t, "Update")
		f.txRepo.AssertNotCalled(t, "Create")
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("rejects a model without a configured price", func(t *testing.T) {
		f := newLedgerFixture()
		cost := decimal.Zero

		tx, err := f.service.ChargeForGeneration(ctx, userID, imageModel(), 1, &cost)

		assert.Nil(t, tx)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		f := newLedgerFixture()
		cost := decimal.RequireFromString("4.00")

		_, err := f.service.ChargeForGeneration(ctx, userID, imageModel(), 0, &cost)

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestService_RefundGeneration(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)

	t.Run("credits the debited amount back and links the refund", func(t *testing.T) {
		f := newLedgerFixture()
		requestID := uint64(77)
		original := &entity.Transaction{
			ID:                  9,
			UserID:              userID,
			Type:                entity.TransactionTypeGeneration,
			Amount:              decimal.RequireFromString("-4.00"),
			GenerationRequestID: &requestID,
		}
		balance := existingBalance(userID, "6.00")
		balance.TotalSpent = decimal.RequireFromString("4.00")

		f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
		f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
		f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		refund, err := f.service.RefundGeneration(ctx, userID, original, "run-abc")

		assert.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeRefund, refund.Type)
		assert.Equal(t, "4.00", refund.Amount.StringFixed(2))
		assert.Equal(t, original.ID, *refund.RelatedTransactionID)
		assert.Equal(t, requestID, *refund.GenerationRequestID)
		// Balance is conserved across charge and refund
		assert.Equal(t, "10.00", balance.Balance.StringFixed(2))
		assert.Equal(t, "0.00", balance.TotalSpent.StringFixed(2))
	})

	t.Run("rejects a credit as the original", func(t *testing.T) {
		f := newLedgerFixture()
		original := &entity.Transaction{Amount: decimal.RequireFromString("4.00")}

		_, err := f.service.RefundGeneration(ctx, userID, original, "run-abc")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects a nil original", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.service.RefundGeneration(ctx, userID, nil, "run-abc")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestService_CheckCanGenerate(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)
	cost := decimal.RequireFromString("4.00")

	t.Run("passes when balance, limit and level allow", func(t *testing.T) {
		f := newLedgerFixture()
		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(existingBalance(userID, "10.00"), nil)

		ok, message, err := f.service.CheckCanGenerate(ctx, userID, imageModel(), 1, &cost)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "OK", message)
	})

	t.Run("refuses with a message when the balance is short", func(t *testing.T) {
		f := newLedgerFixture()
		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(existingBalance(userID, "1.00"), nil)

		ok, message, err := f.service.CheckCanGenerate(ctx, userID, imageModel(), 1, &cost)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, message, "Insufficient balance")
		assert.Contains(t, message, "3.00")
	})

	t.Run("refuses when the daily limit is reached", func(t *testing.T) {
		f := newLedgerFixture()
		limit := 3
		model := imageModel()
		model.DailyLimit = &limit

		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(existingBalance(userID, "100.00"), nil)
		f.txRepo.On("CountGenerationsSince", mock.Anything, userID, model.ID, mock.AnythingOfType("time.Time")).
			Return(int64(3), nil)

		ok, message, err := f.service.CheckCanGenerate(ctx, userID, model, 1, &cost)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, message, "Daily limit reached")
	})

	t.Run("refuses when the user level is too low", func(t *testing.T) {
		f := newLedgerFixture()
		model := imageModel()
		model.MinUserLevel = 5

		f.balanceRepo.On("GetByUserID", mock.Anything, userID).Return(existingBalance(userID, "100.00"), nil)
		f.settingsRepo.On("GetOrCreate", mock.Anything, userID).
			Return(&entity.UserSettings{UserID: userID, UserLevel: 2}, nil)

		ok, message, err := f.service.CheckCanGenerate(ctx, userID, model, 1, &cost)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Contains(t, message, "requires level 5")
	})

	t.Run("refuses a non-positive quantity", func(t *testing.T) {
		f := newLedgerFixture()

		ok, message, err := f.service.CheckCanGenerate(ctx, userID, imageModel(), 0, &cost)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "Quantity must be positive", message)
	})
}
