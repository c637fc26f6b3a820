package migration

import (
	"context"
	"errors"

	"gorm.io/gorm"

	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/model"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		return err
	}
	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.autoMigrateModels(); err != nil {
		return err
	}
	if err := m.createIndexes(); err != nil {
		return err
	}
	if err := m.recordVersion(); err != nil {
		return err
	}

	m.logger.Info("Database migrations completed", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the latest applied schema version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("id DESC").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

func (m *MigrationManager) autoMigrateModels() error {
	err := m.db.AutoMigrate(
		&model.User{},
		&model.UserSettings{},
		&model.Balance{},
		&model.Transaction{},
		&model.AIModel{},
		&model.GenRequest{},
		&model.PricingSettings{},
	)
	if err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
	}
	return err
}

// createIndexes adds indexes AutoMigrate cannot express. The partial unique
// index guarantees one-shot bonuses stay one-shot even under concurrent
// grants; repeatable kinds (daily rewards, referral signups) are excluded.
func (m *MigrationManager) createIndexes() error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_one_shot_bonus
			ON transactions (user_id, bonus_kind)
			WHERE bonus_kind IN ('welcome', 'first_deposit')`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_created
			ON transactions (user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_gen_requests_status_created
			ON gen_requests (status, created_at)`,
	}

	for _, stmt := range statements {
		if err := m.db.Exec(stmt).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
			return err
		}
	}
	return nil
}

func (m *MigrationManager) recordVersion() error {
	return m.db.Create(&model.MigrationVersion{
		Version:   CurrentSchemaVersion,
		AppliedAt: m.timeProvider.Now(),
	}).Error
}
