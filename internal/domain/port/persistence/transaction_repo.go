package persistence

import (
	"context"
	"time"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with the
// append-only transaction ledger.
type TransactionRepository interface {
	// Create saves a new ledger entry
	//
	// Possible errors:
	// - ErrConstraintViolation: If a unique bonus kind is granted twice
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update persists status/balance mutations of an existing entry
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the entry doesn't exist
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a ledger entry
	//
	// Possible errors:
	// - ErrTransactionNotFound: If the entry doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// GetByIDForUpdate retrieves a ledger entry under a row lock, used when
	// resolving pending transactions against concurrent webhook deliveries
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Transaction, error)

	// HasBonus reports whether the user already received a bonus of the
	// given kind. Used for idempotent bonus grants.
	HasBonus(ctx context.Context, userID uint64, kind entity.BonusKind) (bool, error)

	// CountGenerationsSince counts completed generation charges for the
	// user and model created at or after the given instant. Used for
	// daily limits.
	CountGenerationsSince(ctx context.Context, userID, modelID uint64, since time.Time) (int64, error)

	// ListByUser returns the user's most recent entries, newest first
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error)
}
