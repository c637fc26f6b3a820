package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
)

// ChargeForGeneration debits the user for a generation run and records the
// completed negative ledger entry. This is the only path that spends tokens.
// The balance row stays locked for the whole read-modify-write, so two
// concurrent charges for the same user cannot double-spend.
//
// When totalCost is nil the retail price is computed from the model via the
// cost calculator; callers that already resolved the price (the generation
// lifecycle) pass it to keep the charged amount identical to the quoted one.
func (s *Service) ChargeForGeneration(
	ctx context.Context,
	userID uint64,
	model *entity.AIModel,
	quantity int,
	totalCost *decimal.Decimal,
) (*entity.Transaction, error) {
	if quantity <= 0 {
		return nil, errs.NewValidationError("quantity must be positive")
	}

	var tx *entity.Transaction
	err := s.withTx(ctx, func(txCtx context.Context) error {
		cost, err := s.resolveChargeAmount(txCtx, model, quantity, totalCost)
		if err != nil {
			return err
		}
		if !cost.IsPositive() {
			return errs.NewValidationError("model %s has no price configured", model.Slug)
		}

		balance, err := s.ensureBalance(txCtx, userID, true)
		if err != nil {
			return err
		}

		if err := balance.ApplyDebit(cost, s.timeProvider.Now()); err != nil {
			return err
		}
		if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
			return err
		}

		tx, err = entity.NewTransaction(
			userID,
			entity.TransactionTypeGeneration,
			cost.Neg(),
			fmt.Sprintf("Generation %s x%d", model.DisplayName, quantity),
			s.timeProvider,
		)
		if err != nil {
			return err
		}
		tx.MarkCompleted(balance.Balance)
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, tx); err != nil {
			return err
		}

		s.logger.Info("Charged for generation", map[string]any{
			"user_id":     userID,
			"model":       model.Slug,
			"quantity":    quantity,
			"cost":        cost.StringFixed(2),
			"new_balance": balance.Balance.StringFixed(2),
		})
		return nil
	})
	return tx, err
}

// RefundGeneration credits back a generation debit, linking the refund to the
// original transaction. TotalSpent is adjusted down, floored at zero.
func (s *Service) RefundGeneration(
	ctx context.Context,
	userID uint64,
	original *entity.Transaction,
	reason string,
) (*entity.Transaction, error) {
	if original == nil || !original.IsDebit() {
		return nil, errs.NewValidationError("original transaction must be a debit")
	}

	var refund *entity.Transaction
	err := s.withTx(ctx, func(txCtx context.Context) error {
		amount := original.Amount.Abs()

		balance, err := s.ensureBalance(txCtx, userID, true)
		if err != nil {
			return err
		}
		if err := balance.ApplyCredit(amount, entity.TransactionTypeRefund, s.timeProvider.Now()); err != nil {
			return err
		}
		if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
			return err
		}

		refund, err = entity.NewTransaction(
			userID,
			entity.TransactionTypeRefund,
			amount,
			fmt.Sprintf("Refund for failed generation: %s", reason),
			s.timeProvider,
		)
		if err != nil {
			return err
		}
		refund.RelatedTransactionID = &original.ID
		refund.GenerationRequestID = original.GenerationRequestID
		refund.MarkCompleted(balance.Balance)
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, refund); err != nil {
			return err
		}

		s.logger.Info("Generation refunded", map[string]any{
			"user_id":        userID,
			"original_tx_id": original.ID,
			"amount":         amount.StringFixed(2),
			"reason":         reason,
		})
		return nil
	})
	return refund, err
}

// CheckCanGenerate is the read-only precondition check run before committing
// to a charge: balance sufficiency, the model's daily limit and the minimum
// user level. Returns a user-facing message on refusal so the transport can
// short-circuit without catching an exception.
func (s *Service) CheckCanGenerate(
	ctx context.Context,
	userID uint64,
	model *entity.AIModel,
	quantity int,
	totalCost *decimal.Decimal,
) (bool, string, error) {
	if quantity <= 0 {
		return false, "Quantity must be positive", nil
	}

	var ok bool
	var message string
	err := s.withTx(ctx, func(txCtx context.Context) error {
		cost, err := s.resolveChargeAmount(txCtx, model, quantity, totalCost)
		if err != nil {
			return err
		}

		balance, err := s.ensureBalance(txCtx, userID, false)
		if err != nil {
			return err
		}

		if !balance.CanAfford(cost) {
			needed := cost.Sub(balance.Balance)
			message = fmt.Sprintf(
				"Insufficient balance. Balance: %s tokens, required: %s tokens (top up %s tokens)",
				balance.Balance.StringFixed(2), cost.StringFixed(2), needed.StringFixed(2))
			return nil
		}

		if model.DailyLimit != nil {
			since := coreport.StartOfDay(s.timeProvider.Now())
			count, err := s.uow.GetTransactionRepository(txCtx).
				CountGenerationsSince(txCtx, userID, model.ID, since)
			if err != nil {
				return err
			}
			if count >= int64(*model.DailyLimit) {
				message = fmt.Sprintf("Daily limit reached for %s", model.DisplayName)
				return nil
			}
		}

		if model.MinUserLevel > 0 {
			settings, err := s.uow.GetUserSettingsRepository(txCtx).GetOrCreate(txCtx, userID)
			if err != nil {
				return err
			}
			if settings.UserLevel < model.MinUserLevel {
				message = fmt.Sprintf("%s requires level %d", model.DisplayName, model.MinUserLevel)
				return nil
			}
		}

		ok = true
		message = "OK"
		return nil
	})
	if err != nil {
		return false, "", err
	}
	return ok, message, nil
}

// resolveChargeAmount returns the token cost of a run, preferring the
// caller-supplied amount over the calculator.
func (s *Service) resolveChargeAmount(
	txCtx context.Context,
	model *entity.AIModel,
	quantity int,
	totalCost *decimal.Decimal,
) (decimal.Decimal, error) {
	if totalCost != nil {
		return entity.QuantizeTokens(*totalCost), nil
	}
	_, price, err := s.calculator.CalculateRequestCost(txCtx, model, quantity, nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}
