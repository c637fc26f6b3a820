package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/model"
)

// GenRequestRepository implements persistence.GenRequestRepository using GORM
type GenRequestRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewGenRequestRepository creates a new GenRequestRepository instance
func NewGenRequestRepository(db *gorm.DB, logger coreport.Logger) *GenRequestRepository {
	return &GenRequestRepository{
		db:     db,
		logger: logger,
	}
}

func genRequestModelToEntity(m *model.GenRequest) *entity.GenRequest {
	return &entity.GenRequest{
		ID:               m.ID,
		RunCode:          m.RunCode,
		UserID:           m.UserID,
		ChatID:           m.ChatID,
		ModelID:          m.ModelID,
		ModelSlug:        m.ModelSlug,
		Prompt:           m.Prompt,
		GenerationType:   m.GenerationType,
		Quantity:         m.Quantity,
		InputImages:      m.InputImages,
		GenerationParams: m.GenerationParams,
		Cost:             m.Cost,
		CostUSD:          m.CostUSD,
		Status:           entity.RequestStatus(m.Status),
		TransactionID:    m.TransactionID,
		ParentRequestID:  m.ParentRequestID,
		ResultURLs:       m.ResultURLs,
		FileSizes:        m.FileSizes,
		ErrorMessage:     m.ErrorMessage,
		Duration:         m.Duration,
		VideoResolution:  m.VideoResolution,
		AspectRatio:      m.AspectRatio,
		CreatedAt:        m.CreatedAt,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
		ProcessingTime:   m.ProcessingTime,
	}
}

func genRequestEntityToModel(r *entity.GenRequest) *model.GenRequest {
	return &model.GenRequest{
		ID:               r.ID,
		RunCode:          r.RunCode,
		UserID:           r.UserID,
		ChatID:           r.ChatID,
		ModelID:          r.ModelID,
		ModelSlug:        r.ModelSlug,
		Prompt:           r.Prompt,
		GenerationType:   r.GenerationType,
		Quantity:         r.Quantity,
		InputImages:      r.InputImages,
		GenerationParams: r.GenerationParams,
		Cost:             r.Cost,
		CostUSD:          r.CostUSD,
		Status:           string(r.Status),
		TransactionID:    r.TransactionID,
		ParentRequestID:  r.ParentRequestID,
		ResultURLs:       r.ResultURLs,
		FileSizes:        r.FileSizes,
		ErrorMessage:     r.ErrorMessage,
		Duration:         r.Duration,
		VideoResolution:  r.VideoResolution,
		AspectRatio:      r.AspectRatio,
		CreatedAt:        r.CreatedAt,
		StartedAt:        r.StartedAt,
		CompletedAt:      r.CompletedAt,
		ProcessingTime:   r.ProcessingTime,
	}
}

func (r *GenRequestRepository) handleDatabaseError(operation string, err error, id uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrRequestNotFound
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"request_id": id,
		"error":      err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new request
func (r *GenRequestRepository) Create(ctx context.Context, request *entity.GenRequest) error {
	requestModel := genRequestEntityToModel(request)

	result := r.db.WithContext(ctx).Create(requestModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating generation request", result.Error, 0)
	}

	request.ID = requestModel.ID
	return nil
}

// Update persists state transitions and results
func (r *GenRequestRepository) Update(ctx context.Context, request *entity.GenRequest) error {
	requestModel := genRequestEntityToModel(request)

	result := r.db.WithContext(ctx).Model(&model.GenRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":            requestModel.Status,
			"result_urls":       requestModel.ResultURLs,
			"file_sizes":        requestModel.FileSizes,
			"error_message":     requestModel.ErrorMessage,
			"generation_params": requestModel.GenerationParams,
			"started_at":        requestModel.StartedAt,
			"completed_at":      requestModel.CompletedAt,
			"processing_time":   requestModel.ProcessingTime,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating generation request", result.Error, request.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrRequestNotFound
	}
	return nil
}

// GetByID retrieves a request
func (r *GenRequestRepository) GetByID(ctx context.Context, id uint64) (*entity.GenRequest, error) {
	var requestModel model.GenRequest
	result := r.db.WithContext(ctx).First(&requestModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting generation request", result.Error, id)
	}
	return genRequestModelToEntity(&requestModel), nil
}

// ListByUser returns the user's requests, newest first
func (r *GenRequestRepository) ListByUser(ctx context.Context, userID uint64, filter persistence.GenRequestFilter) ([]*entity.GenRequest, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.GenerationType != "" {
		query = query.Where("generation_type = ?", filter.GenerationType)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var requestModels []model.GenRequest
	result := query.Order("created_at DESC, id DESC").Find(&requestModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing generation requests", result.Error, 0)
	}

	requests := make([]*entity.GenRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, genRequestModelToEntity(&requestModels[i]))
	}
	return requests, nil
}

// ListByStatus returns requests in a status, oldest first
func (r *GenRequestRepository) ListByStatus(ctx context.Context, status entity.RequestStatus) ([]*entity.GenRequest, error) {
	var requestModels []model.GenRequest
	result := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC, id ASC").
		Find(&requestModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing generation requests by status", result.Error, 0)
	}

	requests := make([]*entity.GenRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, genRequestModelToEntity(&requestModels[i]))
	}
	return requests, nil
}
