package bonus

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/pricing"
	"github.com/berikbekishev-source/nanobanana-core/mocks/port/core"
	"github.com/berikbekishev-source/nanobanana-core/mocks/port/persistence"
)

type rewardFixture struct {
	uow          *persistence.MockUnitOfWork
	balanceRepo  *persistence.MockBalanceRepository
	txRepo       *persistence.MockTransactionRepository
	settingsRepo *persistence.MockUserSettingsRepository
	timeProvider *core.MockTimeProvider
	service      *Service
}

func newRewardFixture(now time.Time) *rewardFixture {
	f := &rewardFixture{
		uow:          new(persistence.MockUnitOfWork),
		balanceRepo:  new(persistence.MockBalanceRepository),
		txRepo:       new(persistence.MockTransactionRepository),
		settingsRepo: new(persistence.MockUserSettingsRepository),
		timeProvider: new(core.MockTimeProvider),
	}

	logger := new(core.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Return()
	logger.On("Info", mock.Anything, mock.Anything).Return()
	logger.On("Warn", mock.Anything, mock.Anything).Return()
	logger.On("Error", mock.Anything, mock.Anything).Return()

	f.uow.On("Begin", mock.Anything).Return(context.Background(), nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("GetBalanceRepository", mock.Anything).Return(f.balanceRepo)
	f.uow.On("GetTransactionRepository", mock.Anything).Return(f.txRepo)

	f.timeProvider.On("Now").Return(now)

	calculator := pricing.NewCalculator(new(persistence.MockPricingRepository), logger)
	ledgerService := ledger.NewService(f.uow, calculator, f.timeProvider, logger)
	f.service = NewService(ledgerService, f.settingsRepo, f.timeProvider, logger)
	return f
}

// expectLedgerCredit wires the balance and transaction repositories for one
// successful bonus credit, capturing the created entry.
func (f *rewardFixture) expectLedgerCredit(userID uint64, balance *entity.Balance, captured **entity.Transaction) {
	f.balanceRepo.On("GetByUserIDForUpdate", mock.Anything, userID).Return(balance, nil)
	f.balanceRepo.On("Update", mock.Anything, balance).Return(nil)
	f.txRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(*entity.Transaction)
		}).
		Return(nil)
}

func TestService_ClaimDailyReward(t *testing.T) {
	ctx := context.Background()
	userID := uint64(42)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	freshBalance := func() *entity.Balance {
		return &entity.Balance{UserID: userID, Balance: decimal.Zero}
	}

	t.Run("first claim starts the streak at day one", func(t *testing.T) {
		f := newRewardFixture(now)
		settings := &entity.UserSettings{UserID: userID}
		f.settingsRepo.On("GetOrCreate", mock.Anything, userID).Return(settings, nil)
		f.settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		var created *entity.Transaction
		f.expectLedgerCredit(userID, freshBalance(), &created)

		tx, streak, err := f.service.ClaimDailyReward(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, 1, streak)
		assert.NotNil(t, tx)
		assert.Equal(t, "1.00", created.Amount.StringFixed(2))
		assert.Equal(t, entity.BonusKindDailyReward, created.BonusKind)
		assert.Equal(t, 1, settings.DailyRewardStreak)
		assert.Equal(t, now, *settings.LastDailyRewardAt)
	})

	t.Run("consecutive claim advances the streak", func(t *testing.T) {
		f := newRewardFixture(now)
		yesterday := now.Add(-20 * time.Hour)
		settings := &entity.UserSettings{
			UserID:            userID,
			DailyRewardStreak: 2,
			LastDailyRewardAt: &yesterday,
		}
		f.settingsRepo.On("GetOrCreate", mock.Anything, userID).Return(settings, nil)
		f.settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		var created *entity.Transaction
		f.expectLedgerCredit(userID, freshBalance(), &created)

		_, streak, err := f.service.ClaimDailyReward(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, 3, streak)
		assert.Equal(t, "2.00", created.Amount.StringFixed(2))
	})

	t.Run("a skipped day resets the streak", func(t *testing.T) {
		f := newRewardFixture(now)
		threeDaysAgo := now.Add(-72 * time.Hour)
		settings := &entity.UserSettings{
			UserID:            userID,
			DailyRewardStreak: 5,
			LastDailyRewardAt: &threeDaysAgo,
		}
		f.settingsRepo.On("GetOrCreate", mock.Anything, userID).Return(settings, nil)
		f.settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		var created *entity.Transaction
		f.expectLedgerCredit(userID, freshBalance(), &created)

		_, streak, err := f.service.ClaimDailyReward(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, 1, streak)
		assert.Equal(t, "1.00", created.Amount.StringFixed(2))
	})

	t.Run("the streak holds at day seven", func(t *testing.T) {
		f := newRewardFixture(now)
		yesterday := now.Add(-20 * time.Hour)
		settings := &entity.UserSettings{
			UserID:            userID,
			DailyRewardStreak: 7,
			LastDailyRewardAt: &yesterday,
		}
		f.settingsRepo.On("GetOrCreate", mock.Anything, userID).Return(settings, nil)
		f.settingsRepo.On("Update", mock.Anything, settings).Return(nil)

		var created *entity.Transaction
		f.expectLedgerCredit(userID, freshBalance(), &created)

		_, streak, err := f.service.ClaimDailyReward(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, 7, streak)
		assert.Equal(t, "5.00", created.Amount.StringFixed(2))
	})

	t.Run("a repeated claim on the same day is a no-op", func(t *testing.T) {
		f := newRewardFixture(now)
		earlier := now.Add(-2 * time.Hour)
		settings := &entity.UserSettings{
			UserID:            userID,
			DailyRewardStreak: 4,
			LastDailyRewardAt: &earlier,
		}
		f.settingsRepo.On("GetOrCreate", mock.Anything, userID).Return(settings, nil)

		tx, streak, err := f.service.ClaimDailyReward(ctx, userID)

		assert.NoError(t, err)
		assert.Nil(t, tx)
		assert.Equal(t, 4, streak)
		f.txRepo.AssertNotCalled(t, "Create")
		f.settingsRepo.AssertNotCalled(t, "Update")
	})
}
