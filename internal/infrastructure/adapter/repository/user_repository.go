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

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userModelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:        m.ID,
		ChatID:    m.ChatID,
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"key":   key,
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by internal ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return userModelToEntity(&userModel), nil
}

// GetByChatID retrieves a user by Telegram chat ID
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by chat id", result.Error, chatID)
	}
	return userModelToEntity(&userModel), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ChatID:    user.ChatID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ChatID)
	}

	user.ID = userModel.ID
	r.logger.Info("User created", map[string]any{
		"user_id": user.ID,
		"chat_id": user.ChatID,
	})
	return nil
}

// UserSettingsRepository implements persistence.UserSettingsRepository using GORM
type UserSettingsRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserSettingsRepository creates a new UserSettingsRepository instance
func NewUserSettingsRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserSettingsRepository {
	return &UserSettingsRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func settingsModelToEntity(m *model.UserSettings) *entity.UserSettings {
	return &entity.UserSettings{
		UserID:               m.UserID,
		TotalGenerations:     m.TotalGenerations,
		TotalImagesGenerated: m.TotalImagesGenerated,
		TotalVideosGenerated: m.TotalVideosGenerated,
		ExperiencePoints:     m.ExperiencePoints,
		UserLevel:            m.UserLevel,
		DailyRewardStreak:    m.DailyRewardStreak,
		LastDailyRewardAt:    m.LastDailyRewardAt,
		LastGenerationAt:     m.LastGenerationAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func settingsEntityToModel(s *entity.UserSettings) *model.UserSettings {
	return &model.UserSettings{
		UserID:               s.UserID,
		TotalGenerations:     s.TotalGenerations,
		TotalImagesGenerated: s.TotalImagesGenerated,
		TotalVideosGenerated: s.TotalVideosGenerated,
		ExperiencePoints:     s.ExperiencePoints,
		UserLevel:            s.UserLevel,
		DailyRewardStreak:    s.DailyRewardStreak,
		LastDailyRewardAt:    s.LastDailyRewardAt,
		LastGenerationAt:     s.LastGenerationAt,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// GetByUserID retrieves settings for a user
func (r *UserSettingsRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.UserSettings, error) {
	var settingsModel model.UserSettings
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return settingsModelToEntity(&settingsModel), nil
}

// GetOrCreate returns existing settings or creates an empty record
func (r *UserSettingsRepository) GetOrCreate(ctx context.Context, userID uint64) (*entity.UserSettings, error) {
	settings, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	settings = entity.NewUserSettings(userID, r.timeProvider)
	result := r.db.WithContext(ctx).Create(settingsEntityToModel(settings))
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return settings, nil
}

// Update persists settings mutations
func (r *UserSettingsRepository) Update(ctx context.Context, settings *entity.UserSettings) error {
	result := r.db.WithContext(ctx).Model(&model.UserSettings{}).
		Where("user_id = ?", settings.UserID).
		Updates(map[string]interface{}{
			"total_generations":      settings.TotalGenerations,
			"total_images_generated": settings.TotalImagesGenerated,
			"total_videos_generated": settings.TotalVideosGenerated,
			"experience_points":      settings.ExperiencePoints,
			"user_level":             settings.UserLevel,
			"daily_reward_streak":    settings.DailyRewardStreak,
			"last_daily_reward_at":   settings.LastDailyRewardAt,
			"last_generation_at":     settings.LastGenerationAt,
			"updated_at":             settings.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
