package generation

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
)

// GetRequest retrieves a single generation request.
//
// Possible errors:
//   - ErrRequestNotFound: request does not exist
func (s *Service) GetRequest(ctx context.Context, requestID uint64) (*entity.GenRequest, error) {
	var request *entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.uow.GetGenRequestRepository(txCtx).GetByID(txCtx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// GetUserGenerations returns a user's requests, newest first.
func (s *Service) GetUserGenerations(ctx context.Context, userID uint64, filter persistence.GenRequestFilter) ([]*entity.GenRequest, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	var requests []*entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		requests, err = s.uow.GetGenRequestRepository(txCtx).ListByUser(txCtx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// GetPendingGenerations returns queued requests, oldest first. This is the
// feed the external worker drains.
func (s *Service) GetPendingGenerations(ctx context.Context) ([]*entity.GenRequest, error) {
	return s.listByStatus(ctx, entity.StatusQueued)
}

// GetProcessingGenerations returns requests currently being processed,
// oldest first. Used to detect runs stuck at a provider.
func (s *Service) GetProcessingGenerations(ctx context.Context) ([]*entity.GenRequest, error) {
	return s.listByStatus(ctx, entity.StatusProcessing)
}

func (s *Service) listByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.GenRequest, error) {
	var requests []*entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		requests, err = s.uow.GetGenRequestRepository(txCtx).ListByStatus(txCtx, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Service) modelByID(ctx context.Context, modelID uint64) (*entity.AIModel, error) {
	var model *entity.AIModel
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		model, err = s.uow.GetModelRepository(txCtx).GetByID(txCtx, modelID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return model, nil
}
