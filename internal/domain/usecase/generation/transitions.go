package generation

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
)

// StartGeneration moves a queued request into processing.
//
// Possible errors:
//   - ErrRequestNotFound: request does not exist
//   - ValidationError: request is not queued
func (s *Service) StartGeneration(ctx context.Context, requestID uint64) (*entity.GenRequest, error) {
	var request *entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		repo := s.uow.GetGenRequestRepository(txCtx)
		var err error
		request, err = repo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if err := request.Start(s.timeProvider.Now()); err != nil {
			return err
		}
		return repo.Update(txCtx, request)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Generation started", map[string]any{
		"run_code": request.RunCode,
		"model":    request.ModelSlug,
	})
	return request, nil
}

// CompleteInput carries the outcome of a successful generation run.
type CompleteInput struct {
	ResultURLs []string
	FileSizes  []int64
}

// CompleteGeneration resolves a request as done, folds the run's processing
// time into the model's statistics and awards experience to the user.
//
// Possible errors:
//   - ErrRequestNotFound: request does not exist
//   - ValidationError: request is already resolved
func (s *Service) CompleteGeneration(ctx context.Context, requestID uint64, input CompleteInput) (*entity.GenRequest, error) {
	var request *entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		repo := s.uow.GetGenRequestRepository(txCtx)
		var err error
		request, err = repo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if err := request.Complete(input.ResultURLs, input.FileSizes, s.timeProvider.Now()); err != nil {
			return err
		}
		if err := repo.Update(txCtx, request); err != nil {
			return err
		}

		if request.StartedAt != nil {
			model, err := s.uow.GetModelRepository(txCtx).GetByID(txCtx, request.ModelID)
			if err != nil {
				return err
			}
			model.ObserveProcessingTime(request.ProcessingTime)
			if err := s.uow.GetModelRepository(txCtx).UpdateStatistics(txCtx, model); err != nil {
				return err
			}
		}

		settingsRepo := s.uow.GetUserSettingsRepository(txCtx)
		settings, err := settingsRepo.GetOrCreate(txCtx, request.UserID)
		if err != nil {
			return err
		}
		leveledUp := settings.AddExperience(entity.ExperiencePerGeneration*request.Quantity, s.timeProvider.Now())
		if err := settingsRepo.Update(txCtx, settings); err != nil {
			return err
		}
		if leveledUp {
			s.logger.Info("User leveled up", map[string]any{
				"user_id": request.UserID,
				"level":   settings.UserLevel,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Generation completed", map[string]any{
		"run_code":        request.RunCode,
		"model":           request.ModelSlug,
		"processing_time": request.ProcessingTime,
		"results":         len(request.ResultURLs),
	})
	return request, nil
}

// FailGeneration resolves a request as errored, bumps the model's error
// counter and, when refund is set, credits the charged tokens back.
//
// Possible errors:
//   - ErrRequestNotFound: request does not exist
//   - ValidationError: request is already resolved
func (s *Service) FailGeneration(ctx context.Context, requestID uint64, errorMessage string, refund bool) (*entity.GenRequest, error) {
	var request *entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		repo := s.uow.GetGenRequestRepository(txCtx)
		var err error
		request, err = repo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if err := request.Fail(errorMessage, s.timeProvider.Now()); err != nil {
			return err
		}
		if err := repo.Update(txCtx, request); err != nil {
			return err
		}

		model, err := s.uow.GetModelRepository(txCtx).GetByID(txCtx, request.ModelID)
		if err != nil {
			return err
		}
		model.RecordError()
		if err := s.uow.GetModelRepository(txCtx).UpdateStatistics(txCtx, model); err != nil {
			return err
		}

		if refund {
			return s.refundCharge(txCtx, request)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Warn("Generation failed", map[string]any{
		"run_code": request.RunCode,
		"model":    request.ModelSlug,
		"error":    errorMessage,
		"refunded": refund,
	})
	return request, nil
}

// CancelGeneration resolves a request as cancelled and, when refund is set,
// credits the charged tokens back.
//
// Possible errors:
//   - ErrRequestNotFound: request does not exist
//   - ValidationError: request is already resolved
func (s *Service) CancelGeneration(ctx context.Context, requestID uint64, refund bool) (*entity.GenRequest, error) {
	var request *entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		repo := s.uow.GetGenRequestRepository(txCtx)
		var err error
		request, err = repo.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if err := request.Cancel(s.timeProvider.Now()); err != nil {
			return err
		}
		if err := repo.Update(txCtx, request); err != nil {
			return err
		}
		if refund {
			return s.refundCharge(txCtx, request)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Generation cancelled", map[string]any{
		"run_code": request.RunCode,
		"refunded": refund,
	})
	return request, nil
}

func (s *Service) refundCharge(txCtx context.Context, request *entity.GenRequest) error {
	if request.TransactionID == nil {
		s.logger.Warn("Generation has no linked charge, skipping refund", map[string]any{
			"run_code": request.RunCode,
		})
		return nil
	}
	original, err := s.uow.GetTransactionRepository(txCtx).GetByID(txCtx, *request.TransactionID)
	if err != nil {
		return err
	}
	_, err = s.ledger.RefundGeneration(txCtx, request.UserID, original, request.RunCode)
	return err
}

// RetryFailedGeneration creates a fresh request carrying the failed one's
// prompt and parameters. The user is charged again at current prices; the
// new request references the failed one through ParentRequestID.
//
// Possible errors:
//   - ErrRequestNotFound: request does not exist
//   - ValidationError: request is not in the error state
func (s *Service) RetryFailedGeneration(ctx context.Context, requestID uint64) (*entity.GenRequest, error) {
	original, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if original.Status != entity.StatusError {
		return nil, errs.NewValidationError("only failed generations can be retried")
	}

	model, err := s.modelByID(ctx, original.ModelID)
	if err != nil {
		return nil, err
	}

	return s.CreateGenerationRequest(ctx, CreateRequestInput{
		UserID:           original.UserID,
		ChatID:           original.ChatID,
		Model:            model,
		Prompt:           original.Prompt,
		Quantity:         original.Quantity,
		GenerationType:   original.GenerationType,
		InputImages:      original.InputImages,
		GenerationParams: original.GenerationParams,
		Duration:         original.Duration,
		VideoResolution:  original.VideoResolution,
		AspectRatio:      original.AspectRatio,
		ParentRequestID:  &original.ID,
	})
}
