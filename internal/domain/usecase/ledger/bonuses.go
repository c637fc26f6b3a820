package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

// Promotional amounts. Welcome and first-deposit bonuses are granted at most
// once per user, enforced by the bonus kind existence check plus a unique
// index on (user_id, bonus_kind).
var (
	welcomeBonusAmount    = decimal.RequireFromString("5.00")
	firstDepositBonusRate = decimal.RequireFromString("0.20")
	firstDepositBonusCap  = decimal.RequireFromString("50.00")
	referrerBonusAmount   = decimal.RequireFromString("10.00")
	referredBonusAmount   = decimal.RequireFromString("5.00")
)

// AddBonus credits a promotional amount and records the bonus transaction.
func (s *Service) AddBonus(ctx context.Context, userID uint64, amount decimal.Decimal, description string) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, errs.NewValidationError("bonus amount must be positive")
	}
	return s.CreateTransaction(ctx, CreateTransactionInput{
		UserID:        userID,
		Amount:        amount,
		Type:          entity.TransactionTypeBonus,
		Description:   description,
		PaymentMethod: "bonus",
	})
}

// AddDeposit credits a deposit immediately (administrative path; gateway
// deposits go through a pending transaction instead).
func (s *Service) AddDeposit(ctx context.Context, userID uint64, amount decimal.Decimal, paymentMethod, paymentID string) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, errs.NewValidationError("deposit amount must be positive")
	}
	return s.CreateTransaction(ctx, CreateTransactionInput{
		UserID:        userID,
		Amount:        amount,
		Type:          entity.TransactionTypeDeposit,
		Description:   fmt.Sprintf("Deposit via %s", paymentMethod),
		PaymentMethod: paymentMethod,
		PaymentID:     paymentID,
	})
}

// AddReferralBonus credits both sides of a referral: a referral transaction
// for the referrer (also tracked in their referral earnings) and a signup
// bonus for the invited user.
func (s *Service) AddReferralBonus(ctx context.Context, referrerID, referredID uint64, referredName string) (*entity.Transaction, *entity.Transaction, error) {
	var referrerTx, referredTx *entity.Transaction
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		referrerTx, err = s.createTransaction(txCtx, CreateTransactionInput{
			UserID:      referrerID,
			Amount:      referrerBonusAmount,
			Type:        entity.TransactionTypeReferral,
			Description: fmt.Sprintf("Referral bonus for %s", referredName),
		})
		if err != nil {
			return err
		}

		balanceRepo := s.uow.GetBalanceRepository(txCtx)
		referrerBalance, err := balanceRepo.GetByUserIDForUpdate(txCtx, referrerID)
		if err != nil {
			return err
		}
		referrerBalance.AddReferralEarnings(referrerBonusAmount, s.timeProvider.Now())
		if err := balanceRepo.Update(txCtx, referrerBalance); err != nil {
			return err
		}

		referredTx, err = s.createTransaction(txCtx, CreateTransactionInput{
			UserID:      referredID,
			Amount:      referredBonusAmount,
			Type:        entity.TransactionTypeBonus,
			Description: "Referral signup bonus",
			BonusKind:   entity.BonusKindReferralSignup,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return referrerTx, referredTx, nil
}

// addWelcomeBonus grants the one-time welcome bonus during balance creation.
// Idempotent: a second call finds the existing welcome transaction and
// returns nil.
func (s *Service) addWelcomeBonus(txCtx context.Context, userID uint64) (*entity.Transaction, error) {
	granted, err := s.uow.GetTransactionRepository(txCtx).HasBonus(txCtx, userID, entity.BonusKindWelcome)
	if err != nil {
		return nil, err
	}
	if granted {
		return nil, nil
	}

	return s.createTransaction(txCtx, CreateTransactionInput{
		UserID:        userID,
		Amount:        welcomeBonusAmount,
		Type:          entity.TransactionTypeBonus,
		Description:   "Welcome bonus",
		BonusKind:     entity.BonusKindWelcome,
		PaymentMethod: "bonus",
	})
}

// addFirstDepositBonus grants 20% of the first completed deposit, capped at
// 50 tokens. Idempotent by bonus kind.
func (s *Service) addFirstDepositBonus(txCtx context.Context, userID uint64, depositAmount decimal.Decimal) (*entity.Transaction, error) {
	granted, err := s.uow.GetTransactionRepository(txCtx).HasBonus(txCtx, userID, entity.BonusKindFirstDeposit)
	if err != nil {
		return nil, err
	}
	if granted {
		return nil, nil
	}

	bonus := decimal.Min(
		entity.QuantizeTokens(depositAmount.Mul(firstDepositBonusRate)),
		firstDepositBonusCap,
	)
	if !bonus.IsPositive() {
		return nil, nil
	}

	return s.createTransaction(txCtx, CreateTransactionInput{
		UserID:        userID,
		Amount:        bonus,
		Type:          entity.TransactionTypeBonus,
		Description:   "First deposit bonus (+20%)",
		BonusKind:     entity.BonusKindFirstDeposit,
		PaymentMethod: "bonus",
	})
}
