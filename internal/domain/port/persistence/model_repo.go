package persistence

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
)

// ModelRepository defines methods to read and update the pricing catalog.
type ModelRepository interface {
	// GetByID retrieves a model by internal ID
	//
	// Possible errors:
	// - ErrModelNotFound: If no model with the ID exists
	GetByID(ctx context.Context, id uint64) (*entity.AIModel, error)

	// GetBySlug retrieves an active model by slug
	//
	// Possible errors:
	// - ErrModelNotFound: If no active model with the slug exists
	GetBySlug(ctx context.Context, slug string) (*entity.AIModel, error)

	// ListActive returns all active models ordered for display
	ListActive(ctx context.Context) ([]*entity.AIModel, error)

	// Create adds a catalog entry
	Create(ctx context.Context, model *entity.AIModel) error

	// UpdateStatistics persists the model's running counters and average
	//
	// Possible errors:
	// - ErrModelNotFound: If the model disappeared
	UpdateStatistics(ctx context.Context, model *entity.AIModel) error
}
