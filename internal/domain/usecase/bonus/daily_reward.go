package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
)

// dailyRewardSequence is the seven-day reward ladder. The streak advances
// when the user claims on consecutive days and resets to day 1 after a
// skipped day; day 7 repeats while the streak holds.
var dailyRewardSequence = []decimal.Decimal{
	decimal.RequireFromString("1.00"),
	decimal.RequireFromString("1.50"),
	decimal.RequireFromString("2.00"),
	decimal.RequireFromString("2.50"),
	decimal.RequireFromString("3.00"),
	decimal.RequireFromString("4.00"),
	decimal.RequireFromString("5.00"),
}

// Service grants daily rewards on top of the ledger.
type Service struct {
	ledger       *ledger.Service
	settingsRepo persistence.UserSettingsRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the bonus service.
func NewService(
	ledgerService *ledger.Service,
	settingsRepo persistence.UserSettingsRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		ledger:       ledgerService,
		settingsRepo: settingsRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ClaimDailyReward grants today's reward and returns the transaction and the
// current streak. A repeated claim on the same day returns a nil transaction
// and the unchanged streak.
func (s *Service) ClaimDailyReward(ctx context.Context, userID uint64) (*entity.Transaction, int, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	now := s.timeProvider.Now()
	last := settings.LastDailyRewardAt

	if last != nil && coreport.SameDay(*last, now) {
		return nil, settings.DailyRewardStreak, nil
	}

	streak := 1
	if last != nil && now.Sub(*last) <= 24*time.Hour {
		streak = settings.DailyRewardStreak + 1
		if streak > len(dailyRewardSequence) {
			streak = len(dailyRewardSequence)
		}
	}

	amount := dailyRewardSequence[streak-1]
	tx, err := s.ledger.CreateTransaction(ctx, ledger.CreateTransactionInput{
		UserID:        userID,
		Amount:        amount,
		Type:          entity.TransactionTypeBonus,
		Description:   fmt.Sprintf("Daily reward (day %d)", streak),
		BonusKind:     entity.BonusKindDailyReward,
		PaymentMethod: "bonus",
	})
	if err != nil {
		return nil, 0, err
	}

	settings.DailyRewardStreak = streak
	settings.LastDailyRewardAt = &now
	settings.UpdatedAt = now
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, 0, err
	}

	s.logger.Info("Daily reward claimed", map[string]any{
		"user_id": userID,
		"streak":  streak,
		"amount":  amount.StringFixed(2),
	})
	return tx, streak, nil
}
