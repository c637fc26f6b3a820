package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// GenRequest represents the database model for generation requests
type GenRequest struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement"`
	RunCode          string `gorm:"uniqueIndex;not null;size:64"`
	UserID           uint64 `gorm:"not null;index"`
	ChatID           int64  `gorm:"not null"`
	ModelID          uint64 `gorm:"not null;index"`
	ModelSlug        string `gorm:"not null;size:100"`
	Prompt           string `gorm:"type:text"`
	GenerationType   string `gorm:"not null;size:50"`
	Quantity         int    `gorm:"not null;default:1"`
	InputImages      datatypes.JSONSlice[string]
	GenerationParams datatypes.JSONMap

	Cost    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CostUSD decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`

	Status          string  `gorm:"not null;size:20;index"`
	TransactionID   *uint64 `gorm:"index"`
	ParentRequestID *uint64 `gorm:"index"`

	ResultURLs   datatypes.JSONSlice[string]
	FileSizes    datatypes.JSONSlice[int64]
	ErrorMessage string `gorm:"type:text"`

	Duration        *int
	VideoResolution string `gorm:"size:20"`
	AspectRatio     string `gorm:"size:20"`

	CreatedAt      time.Time `gorm:"not null;index"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
	ProcessingTime float64 `gorm:"default:0"`

	User  User    `gorm:"foreignKey:UserID;references:ID"`
	Model AIModel `gorm:"foreignKey:ModelID;references:ID"`
}

// TableName specifies the table name for GenRequest
func (GenRequest) TableName() string {
	return "gen_requests"
}
