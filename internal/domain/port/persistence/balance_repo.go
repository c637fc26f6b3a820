package persistence

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
)

// BalanceRepository defines methods to interact with per-user balances.
// Mutations go through the ledger service only; every read-modify-write
// acquires the row via GetByUserIDForUpdate inside a unit of work.
type BalanceRepository interface {
	// GetByUserID retrieves a balance without locking
	//
	// Possible errors:
	// - ErrBalanceNotFound: If no balance row exists for the user
	// - ErrDatabaseConnection: If database connection fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Balance, error)

	// GetByUserIDForUpdate retrieves a balance under a row-level lock
	// (SELECT ... FOR UPDATE). Must be called inside a transaction.
	//
	// Possible errors:
	// - ErrBalanceNotFound: If no balance row exists for the user
	// - ErrUserLocked: If the lock cannot be acquired
	// - ErrDatabaseConnection: If database connection fails
	GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Balance, error)

	// GetByReferralCode resolves a balance by its referral code
	//
	// Possible errors:
	// - ErrBalanceNotFound: If no balance carries the code
	GetByReferralCode(ctx context.Context, code string) (*entity.Balance, error)

	// Create creates a balance row for a user
	//
	// Possible errors:
	// - ErrConstraintViolation: If a balance already exists for the user
	Create(ctx context.Context, balance *entity.Balance) error

	// Update persists balance mutations
	//
	// Possible errors:
	// - ErrBalanceNotFound: If the row disappeared
	Update(ctx context.Context, balance *entity.Balance) error
}
