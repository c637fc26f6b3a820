package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/pricing"
)

// Service is the sole writer of balances and the transaction ledger. Every
// mutating operation runs inside a unit of work and acquires the user's
// balance row under a row-level lock before the read-modify-write, so
// operations on the same user are strictly serialized while different users
// proceed concurrently. The lock is never held across external calls.
type Service struct {
	uow          persistence.UnitOfWork
	calculator   *pricing.Calculator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the ledger service.
func NewService(
	uow persistence.UnitOfWork,
	calculator *pricing.Calculator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		calculator:   calculator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// withTx runs fn inside a unit of work, rolling back on error. Begin joins an
// enclosing transaction when one is already in flight, which lets callers
// compose ledger operations into larger atomic units.
func (s *Service) withTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to rollback transaction", map[string]any{
				"error": rbErr.Error(),
			})
		}
		return err
	}

	return s.uow.Commit(txCtx)
}

// EnsureBalance returns the user's balance, creating it on first access.
// Creation grants the one-time welcome bonus.
func (s *Service) EnsureBalance(ctx context.Context, userID uint64) (*entity.Balance, error) {
	var balance *entity.Balance
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		balance, err = s.ensureBalance(txCtx, userID, false)
		return err
	})
	return balance, err
}

// GetBalance returns the user's current spendable token amount.
func (s *Service) GetBalance(ctx context.Context, userID uint64) (decimal.Decimal, error) {
	balance, err := s.EnsureBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance.Balance, nil
}

// GetUserTransactions returns the user's most recent ledger entries.
func (s *Service) GetUserTransactions(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, limit)
}

// ensureBalance is the transactional get-or-create. With forUpdate the row is
// locked for the remainder of the enclosing unit of work.
func (s *Service) ensureBalance(txCtx context.Context, userID uint64, forUpdate bool) (*entity.Balance, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	balanceRepo := s.uow.GetBalanceRepository(txCtx)

	get := balanceRepo.GetByUserID
	if forUpdate {
		get = balanceRepo.GetByUserIDForUpdate
	}

	balance, err := get(txCtx, userID)
	if err == nil {
		return balance, nil
	}
	if !errs.IsNotFoundError(err) {
		return nil, err
	}

	balance = entity.NewBalance(userID, s.timeProvider)
	if err := balanceRepo.Create(txCtx, balance); err != nil {
		return nil, err
	}

	s.logger.Info("Balance created", map[string]any{
		"user_id":       userID,
		"referral_code": balance.ReferralCode,
	})

	if _, err := s.addWelcomeBonus(txCtx, userID); err != nil {
		return nil, err
	}

	// Re-read to pick up the welcome credit
	return get(txCtx, userID)
}
