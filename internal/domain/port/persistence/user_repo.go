package persistence

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by internal ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByChatID retrieves a user by Telegram chat ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified chat ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByChatID(ctx context.Context, chatID int64) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If user with same chat ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error
}

// UserSettingsRepository manages per-user statistics and progression
type UserSettingsRepository interface {
	// GetByUserID retrieves settings, or ErrUserNotFound when absent
	GetByUserID(ctx context.Context, userID uint64) (*entity.UserSettings, error)

	// GetOrCreate returns existing settings or creates an empty record
	GetOrCreate(ctx context.Context, userID uint64) (*entity.UserSettings, error)

	// Update persists settings mutations
	Update(ctx context.Context, settings *entity.UserSettings) error
}
