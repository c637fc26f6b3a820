package persistence

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
)

// GenRequestFilter narrows request listings.
type GenRequestFilter struct {
	Status         entity.RequestStatus
	GenerationType string
	Limit          int
}

// GenRequestRepository defines methods to persist generation requests.
type GenRequestRepository interface {
	// Create persists a new request
	Create(ctx context.Context, request *entity.GenRequest) error

	// Update persists state transitions and results
	//
	// Possible errors:
	// - ErrRequestNotFound: If the request doesn't exist
	Update(ctx context.Context, request *entity.GenRequest) error

	// GetByID retrieves a request
	//
	// Possible errors:
	// - ErrRequestNotFound: If the request doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.GenRequest, error)

	// ListByUser returns the user's requests, newest first
	ListByUser(ctx context.Context, userID uint64, filter GenRequestFilter) ([]*entity.GenRequest, error)

	// ListByStatus returns requests in a status, oldest first. Queued
	// requests are drained by the external worker in this order.
	ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.GenRequest, error)
}
