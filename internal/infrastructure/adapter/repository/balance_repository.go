package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/model"
)

// BalanceRepository implements persistence.BalanceRepository using GORM
type BalanceRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBalanceRepository creates a new BalanceRepository instance
func NewBalanceRepository(db *gorm.DB, logger coreport.Logger) *BalanceRepository {
	return &BalanceRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func balanceModelToEntity(m *model.Balance) *entity.Balance {
	return &entity.Balance{
		UserID:           m.UserID,
		Balance:          m.Balance,
		BonusBalance:     m.BonusBalance,
		TotalSpent:       m.TotalSpent,
		TotalDeposited:   m.TotalDeposited,
		ReferralCode:     m.ReferralCode,
		ReferredByID:     m.ReferredByID,
		ReferralEarnings: m.ReferralEarnings,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *BalanceRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrBalanceNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsLockError(err) {
		return errs.ErrUserLocked
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrConstraintViolation
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves a balance without locking
func (r *BalanceRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Balance, error) {
	var balanceModel model.Balance
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&balanceModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting balance", result.Error, userID)
	}
	return balanceModelToEntity(&balanceModel), nil
}

// GetByUserIDForUpdate retrieves a balance under a row-level lock
func (r *BalanceRepository) GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Balance, error) {
	var balanceModel model.Balance
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&balanceModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking balance", result.Error, userID)
	}
	return balanceModelToEntity(&balanceModel), nil
}

// GetByReferralCode resolves a balance by its referral code
func (r *BalanceRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Balance, error) {
	var balanceModel model.Balance
	result := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&balanceModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("resolving referral code", result.Error, 0)
	}
	return balanceModelToEntity(&balanceModel), nil
}

// Create creates a balance row for a user
func (r *BalanceRepository) Create(ctx context.Context, balance *entity.Balance) error {
	balanceModel := model.Balance{
		UserID:           balance.UserID,
		Balance:          balance.Balance,
		BonusBalance:     balance.BonusBalance,
		TotalSpent:       balance.TotalSpent,
		TotalDeposited:   balance.TotalDeposited,
		ReferralCode:     balance.ReferralCode,
		ReferredByID:     balance.ReferredByID,
		ReferralEarnings: balance.ReferralEarnings,
		CreatedAt:        balance.CreatedAt,
		UpdatedAt:        balance.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&balanceModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating balance", result.Error, balance.UserID)
	}
	return nil
}

// Update persists balance mutations
func (r *BalanceRepository) Update(ctx context.Context, balance *entity.Balance) error {
	result := r.db.WithContext(ctx).Model(&model.Balance{}).
		Where("user_id = ?", balance.UserID).
		Updates(map[string]interface{}{
			"balance":           balance.Balance,
			"bonus_balance":     balance.BonusBalance,
			"total_spent":       balance.TotalSpent,
			"total_deposited":   balance.TotalDeposited,
			"referred_by_id":    balance.ReferredByID,
			"referral_earnings": balance.ReferralEarnings,
			"updated_at":        balance.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error, balance.UserID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrBalanceNotFound
	}
	return nil
}
