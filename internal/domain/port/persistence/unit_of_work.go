package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across multiple
// repositories inside one database transaction.
//
// Begin is nest-aware: when the context already carries a transaction the
// returned context joins it, and the matching Commit/Rollback are no-ops.
// This lets the generation lifecycle wrap ledger operations in a single
// atomic unit without savepoints.
type UnitOfWork interface {
	// Begin starts (or joins) a transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetUserSettingsRepository returns a settings repository bound to the current transaction
	GetUserSettingsRepository(ctx context.Context) UserSettingsRepository

	// GetBalanceRepository returns a balance repository bound to the current transaction
	GetBalanceRepository(ctx context.Context) BalanceRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetModelRepository returns a model repository bound to the current transaction
	GetModelRepository(ctx context.Context) ModelRepository

	// GetGenRequestRepository returns a request repository bound to the current transaction
	GetGenRequestRepository(ctx context.Context) GenRequestRepository
}
