package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/model"
)

// ModelRepository implements persistence.ModelRepository using GORM
type ModelRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewModelRepository creates a new ModelRepository instance
func NewModelRepository(db *gorm.DB, logger coreport.Logger) *ModelRepository {
	return &ModelRepository{
		db:     db,
		logger: logger,
	}
}

func aiModelToEntity(m *model.AIModel) *entity.AIModel {
	return &entity.AIModel{
		ID:                    m.ID,
		Slug:                  m.Slug,
		DisplayName:           m.DisplayName,
		Type:                  m.Type,
		Provider:              m.Provider,
		Price:                 m.Price,
		BaseCostUSD:           m.BaseCostUSD,
		UnitCostUSD:           m.UnitCostUSD,
		CostUnit:              entity.CostUnit(m.CostUnit),
		MaxQuantity:           m.MaxQuantity,
		MaxPromptLength:       m.MaxPromptLength,
		MaxInputImages:        m.MaxInputImages,
		DailyLimit:            m.DailyLimit,
		MinUserLevel:          m.MinUserLevel,
		DefaultParams:         m.DefaultParams,
		IsActive:              m.IsActive,
		TotalGenerations:      m.TotalGenerations,
		TotalErrors:           m.TotalErrors,
		AverageGenerationTime: m.AverageGenerationTime,
	}
}

func (r *ModelRepository) handleDatabaseError(operation string, err error, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrModelNotFound
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"key":   key,
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a model by internal ID
func (r *ModelRepository) GetByID(ctx context.Context, id uint64) (*entity.AIModel, error) {
	var modelRow model.AIModel
	result := r.db.WithContext(ctx).First(&modelRow, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting model", result.Error, id)
	}
	return aiModelToEntity(&modelRow), nil
}

// GetBySlug retrieves an active model by slug
func (r *ModelRepository) GetBySlug(ctx context.Context, slug string) (*entity.AIModel, error) {
	var modelRow model.AIModel
	result := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&modelRow)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting model by slug", result.Error, slug)
	}
	return aiModelToEntity(&modelRow), nil
}

// ListActive returns all active models ordered for display
func (r *ModelRepository) ListActive(ctx context.Context) ([]*entity.AIModel, error) {
	var modelRows []model.AIModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("type, display_name").
		Find(&modelRows)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing models", result.Error, nil)
	}

	models := make([]*entity.AIModel, 0, len(modelRows))
	for i := range modelRows {
		models = append(models, aiModelToEntity(&modelRows[i]))
	}
	return models, nil
}

// Create adds a catalog entry
func (r *ModelRepository) Create(ctx context.Context, m *entity.AIModel) error {
	modelRow := model.AIModel{
		Slug:            m.Slug,
		DisplayName:     m.DisplayName,
		Type:            m.Type,
		Provider:        m.Provider,
		Price:           m.Price,
		BaseCostUSD:     m.BaseCostUSD,
		UnitCostUSD:     m.UnitCostUSD,
		CostUnit:        string(m.CostUnit),
		MaxQuantity:     m.MaxQuantity,
		MaxPromptLength: m.MaxPromptLength,
		MaxInputImages:  m.MaxInputImages,
		DailyLimit:      m.DailyLimit,
		MinUserLevel:    m.MinUserLevel,
		DefaultParams:   m.DefaultParams,
		IsActive:        m.IsActive,
	}

	result := r.db.WithContext(ctx).Create(&modelRow)
	if result.Error != nil {
		return r.handleDatabaseError("creating model", result.Error, m.Slug)
	}
	m.ID = modelRow.ID
	return nil
}

// UpdateStatistics persists the model's running counters and average
func (r *ModelRepository) UpdateStatistics(ctx context.Context, m *entity.AIModel) error {
	result := r.db.WithContext(ctx).Model(&model.AIModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"total_generations":       m.TotalGenerations,
			"total_errors":            m.TotalErrors,
			"average_generation_time": m.AverageGenerationTime,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating model statistics", result.Error, m.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrModelNotFound
	}
	return nil
}

// PricingRepository implements persistence.PricingRepository using GORM
type PricingRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewPricingRepository creates a new PricingRepository instance
func NewPricingRepository(db *gorm.DB, logger coreport.Logger) *PricingRepository {
	return &PricingRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the first (and only) pricing settings row
func (r *PricingRepository) Get(ctx context.Context) (*entity.PricingSettings, error) {
	var settingsModel model.PricingSettings
	result := r.db.WithContext(ctx).Order("id").First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPricingNotConfigured
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return &entity.PricingSettings{
		ID:               settingsModel.ID,
		USDToTokenRate:   settingsModel.USDToTokenRate,
		MarkupMultiplier: settingsModel.MarkupMultiplier,
	}, nil
}
