package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions.
//
// Begin is nest-aware: when the context already carries a transaction the
// same context is returned and the matching Commit/Rollback become no-ops,
// leaving the decision to the outermost caller. Nesting depth is tracked in
// the context so the pairs stay balanced.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

type txState struct {
	tx    *gorm.DB
	depth int
}

// Begin starts a new database transaction, or joins the one already in flight
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if state, ok := ctx.Value(txKey).(*txState); ok && state != nil {
		state.depth++
		return ctx, nil
	}

	u.logger.Debug("Beginning database transaction", nil)
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return context.WithValue(ctx, txKey, &txState{tx: tx, depth: 1}), nil
}

// Commit commits the outermost transaction; inner commits are no-ops
func (u *UnitOfWork) Commit(ctx context.Context) error {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok || state == nil {
		return fmt.Errorf("no transaction found in context")
	}

	state.depth--
	if state.depth > 0 {
		return nil
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := state.tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the outermost transaction; inner rollbacks are no-ops
// beyond marking the unit as failed through the error return of the caller
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	state, ok := ctx.Value(txKey).(*txState)
	if !ok || state == nil {
		return fmt.Errorf("no transaction found in context")
	}

	state.depth--
	if state.depth > 0 {
		return nil
	}

	u.logger.Debug("Rolling back database transaction", nil)
	err := state.tx.Rollback().Error

	// A rollback after the driver already aborted the transaction is benign
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetUserSettingsRepository returns a settings repository in the current transaction
func (u *UnitOfWork) GetUserSettingsRepository(ctx context.Context) persistence.UserSettingsRepository {
	return repository.NewUserSettingsRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetBalanceRepository returns a balance repository in the current transaction
func (u *UnitOfWork) GetBalanceRepository(ctx context.Context) persistence.BalanceRepository {
	return repository.NewBalanceRepository(u.getDbFromContext(ctx), u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetModelRepository returns a model repository in the current transaction
func (u *UnitOfWork) GetModelRepository(ctx context.Context) persistence.ModelRepository {
	return repository.NewModelRepository(u.getDbFromContext(ctx), u.logger)
}

// GetGenRequestRepository returns a request repository in the current transaction
func (u *UnitOfWork) GetGenRequestRepository(ctx context.Context) persistence.GenRequestRepository {
	return repository.NewGenRequestRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	if state, ok := ctx.Value(txKey).(*txState); ok && state != nil {
		return state.tx
	}
	return u.db.WithContext(ctx)
}
