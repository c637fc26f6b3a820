package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AIModel represents the database model for the pricing catalog
type AIModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Slug        string `gorm:"uniqueIndex;not null;size:100"`
	DisplayName string `gorm:"not null;size:255"`
	Type        string `gorm:"not null;size:50"`
	Provider    string `gorm:"size:100"`

	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	BaseCostUSD decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	UnitCostUSD decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	CostUnit    string          `gorm:"not null;size:20;default:image"`

	MaxQuantity     int `gorm:"not null;default:1"`
	MaxPromptLength int `gorm:"not null;default:1000"`
	MaxInputImages  int `gorm:"not null;default:0"`
	DailyLimit      *int
	MinUserLevel    int `gorm:"not null;default:0"`
	DefaultParams   datatypes.JSONMap
	IsActive        bool `gorm:"not null;default:true;index"`

	TotalGenerations      uint64  `gorm:"default:0"`
	TotalErrors           uint64  `gorm:"default:0"`
	AverageGenerationTime float64 `gorm:"default:0"`
}

// TableName specifies the table name for AIModel
func (AIModel) TableName() string {
	return "ai_models"
}

// PricingSettings represents the database model for global pricing knobs
type PricingSettings struct {
	ID               uint64          `gorm:"primaryKey"`
	USDToTokenRate   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	MarkupMultiplier decimal.Decimal `gorm:"type:decimal(20,4);not null"`
}

// TableName specifies the table name for PricingSettings
func (PricingSettings) TableName() string {
	return "pricing_settings"
}
