package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

// CreateTransactionInput describes a credit to record in the ledger.
type CreateTransactionInput struct {
	UserID        uint64
	Amount        decimal.Decimal
	Type          entity.TransactionType
	Description   string
	BonusKind     entity.BonusKind
	PaymentMethod string
	PaymentID     string
	PaymentData   map[string]any
	// Pending records the entry without applying the funds; the balance is
	// credited later by CompleteTransaction (payment gateway confirmation).
	Pending bool
}

// CreateTransaction records a positive ledger entry. Non-pending entries
// apply the amount to the balance in the same atomic unit and are immediately
// completed. Pending entries keep BalanceAfter at the pre-application balance
// until resolved.
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	var tx *entity.Transaction
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		tx, err = s.createTransaction(txCtx, input)
		return err
	})
	return tx, err
}

func (s *Service) createTransaction(txCtx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, errs.NewValidationError("transaction amount must be positive")
	}

	balance, err := s.ensureBalance(txCtx, input.UserID, true)
	if err != nil {
		return nil, err
	}

	tx, err := entity.NewTransaction(input.UserID, input.Type, input.Amount, input.Description, s.timeProvider)
	if err != nil {
		return nil, err
	}
	tx.BonusKind = input.BonusKind
	tx.PaymentMethod = input.PaymentMethod
	tx.PaymentID = input.PaymentID
	tx.PaymentData = input.PaymentData

	txRepo := s.uow.GetTransactionRepository(txCtx)

	if input.Pending {
		// Funds are not available yet; snapshot the balance before application
		tx.BalanceAfter = balance.Balance
		if err := txRepo.Create(txCtx, tx); err != nil {
			return nil, err
		}

		s.logger.Info("Pending transaction created", map[string]any{
			"user_id":        input.UserID,
			"type":           string(input.Type),
			"amount":         input.Amount.StringFixed(2),
			"payment_method": input.PaymentMethod,
		})
		return tx, nil
	}

	if err := balance.ApplyCredit(input.Amount, input.Type, s.timeProvider.Now()); err != nil {
		return nil, err
	}
	if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
		return nil, err
	}

	tx.MarkCompleted(balance.Balance)
	if err := txRepo.Create(txCtx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction applied", map[string]any{
		"user_id":     input.UserID,
		"type":        string(input.Type),
		"amount":      input.Amount.StringFixed(2),
		"new_balance": balance.Balance.StringFixed(2),
	})
	return tx, nil
}

// CompleteTransaction resolves a pending transaction. Completing applies the
// credit under the user's balance lock and, for deposits, grants the
// first-deposit bonus. Failing marks the entry resolved without applying
// funds. Calling it on an already resolved transaction is a no-op returning
// the transaction unchanged, which makes duplicate webhook deliveries safe.
func (s *Service) CompleteTransaction(ctx context.Context, transactionID uint64, status entity.CompletionStatus) (*entity.Transaction, error) {
	if status != entity.CompletionStatusCompleted && status != entity.CompletionStatusFailed {
		return nil, errs.NewValidationError("status must be %q or %q",
			entity.CompletionStatusCompleted, entity.CompletionStatusFailed)
	}

	var tx *entity.Transaction
	err := s.withTx(ctx, func(txCtx context.Context) error {
		txRepo := s.uow.GetTransactionRepository(txCtx)

		var err error
		tx, err = txRepo.GetByIDForUpdate(txCtx, transactionID)
		if err != nil {
			return err
		}

		if tx.Resolved() {
			s.logger.Info("Transaction already resolved, skipping", map[string]any{
				"transaction_id": transactionID,
				"completed":      tx.IsCompleted,
			})
			return nil
		}

		if status == entity.CompletionStatusFailed {
			tx.MarkFailed()
			return txRepo.Update(txCtx, tx)
		}

		balance, err := s.ensureBalance(txCtx, tx.UserID, true)
		if err != nil {
			return err
		}
		if err := balance.ApplyCredit(tx.Amount, tx.Type, s.timeProvider.Now()); err != nil {
			return err
		}
		if err := s.uow.GetBalanceRepository(txCtx).Update(txCtx, balance); err != nil {
			return err
		}

		tx.MarkCompleted(balance.Balance)
		if err := txRepo.Update(txCtx, tx); err != nil {
			return err
		}

		s.logger.Info("Pending transaction completed", map[string]any{
			"transaction_id": transactionID,
			"user_id":        tx.UserID,
			"amount":         tx.Amount.StringFixed(2),
			"new_balance":    balance.Balance.StringFixed(2),
		})

		if tx.Type == entity.TransactionTypeDeposit {
			if _, err := s.addFirstDepositBonus(txCtx, tx.UserID, tx.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	return tx, err
}
