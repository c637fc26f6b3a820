package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:                   m.ID,
		UserID:               m.UserID,
		Type:                 entity.TransactionType(m.Type),
		Amount:               m.Amount,
		BalanceAfter:         m.BalanceAfter,
		IsPending:            m.IsPending,
		IsCompleted:          m.IsCompleted,
		BonusKind:            entity.BonusKind(m.BonusKind),
		Description:          m.Description,
		PaymentMethod:        m.PaymentMethod,
		PaymentID:            m.PaymentID,
		PaymentData:          m.PaymentData,
		RelatedTransactionID: m.RelatedTransactionID,
		GenerationRequestID:  m.GenerationRequestID,
		CreatedAt:            m.CreatedAt,
	}
}

func transactionEntityToModel(t *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:                   t.ID,
		UserID:               t.UserID,
		Type:                 string(t.Type),
		Amount:               t.Amount,
		BalanceAfter:         t.BalanceAfter,
		IsPending:            t.IsPending,
		IsCompleted:          t.IsCompleted,
		BonusKind:            string(t.BonusKind),
		Description:          t.Description,
		PaymentMethod:        t.PaymentMethod,
		PaymentID:            t.PaymentID,
		PaymentData:          t.PaymentData,
		RelatedTransactionID: t.RelatedTransactionID,
		GenerationRequestID:  t.GenerationRequestID,
		CreatedAt:            t.CreatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"transaction_id": id,
		"error":          err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	if r.errorClassifier.IsLockError(err) {
		return errs.ErrUserLocked
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := transactionEntityToModel(transaction)

	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error, 0)
	}

	transaction.ID = transactionModel.ID
	return nil
}

// Update persists status/balance mutations of an existing entry
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"balance_after":         transaction.BalanceAfter,
			"is_pending":            transaction.IsPending,
			"is_completed":          transaction.IsCompleted,
			"payment_data":          transactionEntityToModel(transaction).PaymentData,
			"generation_request_id": transaction.GenerationRequestID,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// GetByID retrieves a ledger entry
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).First(&transactionModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error, id)
	}
	return transactionModelToEntity(&transactionModel), nil
}

// GetByIDForUpdate retrieves a ledger entry under a row lock
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transactionModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking transaction", result.Error, id)
	}
	return transactionModelToEntity(&transactionModel), nil
}

// HasBonus reports whether the user already received a bonus of the given kind
func (r *TransactionRepository) HasBonus(ctx context.Context, userID uint64, kind entity.BonusKind) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND bonus_kind = ?", userID, string(kind)).
		Count(&count)
	if result.Error != nil {
		return false, r.handleDatabaseError("checking bonus", result.Error, 0)
	}
	return count > 0, nil
}

// CountGenerationsSince counts completed generation charges for the user and
// model created at or after the given instant
func (r *TransactionRepository) CountGenerationsSince(ctx context.Context, userID, modelID uint64, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Joins("JOIN gen_requests ON gen_requests.transaction_id = transactions.id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.type = ?", string(entity.TransactionTypeGeneration)).
		Where("gen_requests.model_id = ?", modelID).
		Where("transactions.created_at >= ?", since).
		Count(&count)
	if result.Error != nil {
		return 0, r.handleDatabaseError("counting generations", result.Error, 0)
	}
	return count, nil
}

// ListByUser returns the user's most recent entries, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing transactions", result.Error, 0)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModelToEntity(&transactionModels[i]))
	}
	return transactions, nil
}
