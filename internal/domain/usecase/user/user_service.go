package user

import (
	"context"
	"errors"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
)

// Service resolves Telegram chat ids to users, creating them on first
// contact. Creation also provisions the balance (and with it the welcome
// bonus) and links referrals.
type Service struct {
	uow          persistence.UnitOfWork
	ledger       *ledger.Service
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the user service.
func NewService(
	uow persistence.UnitOfWork,
	ledgerService *ledger.Service,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledgerService,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByChatID resolves an existing user.
//
// Possible errors:
//   - ErrUserNotFound: no user with the chat id exists
func (s *Service) GetByChatID(ctx context.Context, chatID int64) (*entity.User, error) {
	var user *entity.User
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.uow.GetUserRepository(txCtx).GetByChatID(txCtx, chatID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetOrCreate resolves a user by chat id, creating user, balance and referral
// link on first contact. referralCode may be empty.
func (s *Service) GetOrCreate(ctx context.Context, chatID int64, username, referralCode string) (*entity.User, error) {
	var user *entity.User
	var created bool

	err := s.withTx(ctx, func(txCtx context.Context) error {
		userRepo := s.uow.GetUserRepository(txCtx)

		existing, err := userRepo.GetByChatID(txCtx, chatID)
		if err == nil {
			user = existing
			return nil
		}
		if !errors.Is(err, errs.ErrUserNotFound) {
			return err
		}

		user, err = entity.NewUser(chatID, username, s.timeProvider)
		if err != nil {
			return err
		}
		if err := userRepo.Create(txCtx, user); err != nil {
			return err
		}
		created = true

		// Provisions the balance row and the welcome bonus
		if _, err := s.ledger.EnsureBalance(txCtx, user.ID); err != nil {
			return err
		}

		if referralCode != "" {
			if err := s.linkReferral(txCtx, user, referralCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("User registered", map[string]any{
			"user_id": user.ID,
			"chat_id": chatID,
		})
	}
	return user, nil
}

// linkReferral attaches the new user to the referrer identified by the code
// and grants both referral bonuses. A code that does not resolve, or one
// pointing at the user themselves, is ignored.
func (s *Service) linkReferral(txCtx context.Context, user *entity.User, code string) error {
	balanceRepo := s.uow.GetBalanceRepository(txCtx)

	referrerBalance, err := balanceRepo.GetByReferralCode(txCtx, code)
	if err != nil {
		if errors.Is(err, errs.ErrBalanceNotFound) {
			s.logger.Warn("Unknown referral code, ignoring", map[string]any{
				"user_id": user.ID,
				"code":    code,
			})
			return nil
		}
		return err
	}
	if referrerBalance.UserID == user.ID {
		return nil
	}

	balance, err := balanceRepo.GetByUserIDForUpdate(txCtx, user.ID)
	if err != nil {
		return err
	}
	balance.ReferredByID = &referrerBalance.UserID
	balance.UpdatedAt = s.timeProvider.Now()
	if err := balanceRepo.Update(txCtx, balance); err != nil {
		return err
	}

	_, _, err = s.ledger.AddReferralBonus(txCtx, referrerBalance.UserID, user.ID, user.Username)
	return err
}

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
