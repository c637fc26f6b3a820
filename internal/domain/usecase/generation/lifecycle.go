package generation

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/ledger"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/usecase/pricing"
)

// Service owns the generation request state machine:
//
//	queued -> processing -> done
//	queued|processing -> error|cancelled
//
// Done, error and cancelled are final. Requests are created with funds
// already debited; failing or cancelling optionally refunds the linked
// charge. The worker that drains queued requests and talks to providers
// lives outside this service.
type Service struct {
	uow          persistence.UnitOfWork
	ledger       *ledger.Service
	calculator   *pricing.Calculator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the generation lifecycle service.
func NewService(
	uow persistence.UnitOfWork,
	ledgerService *ledger.Service,
	calculator *pricing.Calculator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledgerService,
		calculator:   calculator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (s *Service) withTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to rollback transaction", map[string]any{
				"error": rbErr.Error(),
			})
		}
		return err
	}
	return s.uow.Commit(txCtx)
}

// CreateRequestInput describes a new generation request.
type CreateRequestInput struct {
	UserID           uint64
	ChatID           int64
	Model            *entity.AIModel
	Prompt           string
	Quantity         int
	GenerationType   string
	InputImages      []string
	GenerationParams map[string]any
	Duration         *int
	VideoResolution  string
	AspectRatio      string
	ParentRequestID  *uint64
}

// CreateGenerationRequest validates the request against the model's limits,
// charges the user and persists the request in the queued state. Everything
// (balance check, charge, persistence, counters) is one atomic unit: if
// persistence fails after the charge succeeded, the charge rolls back.
func (s *Service) CreateGenerationRequest(ctx context.Context, input CreateRequestInput) (*entity.GenRequest, error) {
	model := input.Model
	if model == nil {
		return nil, errs.ErrModelNotFound
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}
	if input.Quantity > model.MaxQuantity {
		return nil, errs.NewValidationError("maximum quantity for %s: %d", model.DisplayName, model.MaxQuantity)
	}
	if len(input.Prompt) > model.MaxPromptLength {
		return nil, errs.NewValidationError("prompt is too long, maximum: %d characters", model.MaxPromptLength)
	}
	if len(input.InputImages) > model.MaxInputImages {
		return nil, errs.NewValidationError("maximum input images: %d", model.MaxInputImages)
	}

	var request *entity.GenRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		costUSD, price, err := s.calculator.CalculateRequestCost(
			txCtx, model, input.Quantity, input.Duration, input.GenerationParams)
		if err != nil {
			return err
		}

		ok, message, err := s.ledger.CheckCanGenerate(txCtx, input.UserID, model, input.Quantity, &price)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NewValidationError("%s", message)
		}

		charge, err := s.ledger.ChargeForGeneration(txCtx, input.UserID, model, input.Quantity, &price)
		if err != nil {
			return err
		}

		params, duration, resolution, aspectRatio := mergeGenerationParams(input, model)

		request = &entity.GenRequest{
			RunCode:          entity.NewRunCode(),
			UserID:           input.UserID,
			ChatID:           input.ChatID,
			ModelID:          model.ID,
			ModelSlug:        model.Slug,
			Prompt:           input.Prompt,
			GenerationType:   input.GenerationType,
			Quantity:         input.Quantity,
			InputImages:      input.InputImages,
			GenerationParams: params,
			Cost:             price,
			CostUSD:          costUSD,
			Status:           entity.StatusQueued,
			TransactionID:    &charge.ID,
			ParentRequestID:  input.ParentRequestID,
			Duration:         duration,
			VideoResolution:  resolution,
			AspectRatio:      aspectRatio,
			CreatedAt:        s.timeProvider.Now(),
		}

		requestRepo := s.uow.GetGenRequestRepository(txCtx)
		if err := requestRepo.Create(txCtx, request); err != nil {
			return err
		}

		// Backlink the charge to the request it paid for
		charge.GenerationRequestID = &request.ID
		if err := s.uow.GetTransactionRepository(txCtx).Update(txCtx, charge); err != nil {
			return err
		}

		settingsRepo := s.uow.GetUserSettingsRepository(txCtx)
		settings, err := settingsRepo.GetOrCreate(txCtx, input.UserID)
		if err != nil {
			return err
		}
		settings.RecordGeneration(input.GenerationType, input.Quantity, s.timeProvider.Now())
		if err := settingsRepo.Update(txCtx, settings); err != nil {
			return err
		}

		model.RecordGeneration()
		if err := s.uow.GetModelRepository(txCtx).UpdateStatistics(txCtx, model); err != nil {
			return err
		}

		s.logger.Info("Generation request created", map[string]any{
			"run_code": request.RunCode,
			"user_id":  input.UserID,
			"model":    model.Slug,
			"quantity": input.Quantity,
			"cost":     price.StringFixed(2),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// mergeGenerationParams merges caller-supplied parameters with model
// defaults. Duration, resolution and aspect ratio resolve by priority:
// explicit argument, then the params bag, then the model defaults. Explicit
// values are written back into the bag handed to the provider adapter.
func mergeGenerationParams(input CreateRequestInput, model *entity.AIModel) (map[string]any, *int, string, string) {
	params := make(map[string]any, len(input.GenerationParams)+4)
	for k, v := range input.GenerationParams {
		params[k] = v
	}
	if _, ok := params["mode"]; !ok && input.GenerationType != "" {
		params["mode"] = input.GenerationType
	}

	duration := input.Duration
	if duration == nil {
		if v, ok := intFromBag(params, "duration"); ok {
			duration = &v
		} else if v, ok := intFromBag(model.DefaultParams, "duration"); ok {
			duration = &v
		}
	} else if _, ok := params["duration"]; !ok {
		params["duration"] = *duration
	}

	resolution := input.VideoResolution
	if resolution == "" {
		resolution = stringFromBag(params, "resolution")
		if resolution == "" {
			resolution = stringFromBag(model.DefaultParams, "resolution")
		}
	} else if _, ok := params["resolution"]; !ok {
		params["resolution"] = resolution
	}

	aspectRatio := input.AspectRatio
	if aspectRatio == "" {
		aspectRatio = stringFromBag(params, "aspect_ratio")
		if aspectRatio == "" {
			aspectRatio = stringFromBag(model.DefaultParams, "aspect_ratio")
		}
	} else if _, ok := params["aspect_ratio"]; !ok {
		params["aspect_ratio"] = aspectRatio
	}

	return params, duration, resolution, aspectRatio
}

func intFromBag(bag map[string]any, key string) (int, bool) {
	if bag == nil {
		return 0, false
	}
	switch v := bag[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func stringFromBag(bag map[string]any, key string) string {
	if bag == nil {
		return ""
	}
	if v, ok := bag[key].(string); ok {
		return v
	}
	return ""
}
