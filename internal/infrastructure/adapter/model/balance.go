package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance represents the database model for user token balances
type Balance struct {
	UserID           uint64          `gorm:"primaryKey"`
	Balance          decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	BonusBalance     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalSpent       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	TotalDeposited   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	ReferralCode     string          `gorm:"uniqueIndex;size:32;not null"`
	ReferredByID     *uint64         `gorm:"index"`
	ReferralEarnings decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Balance
func (Balance) TableName() string {
	return "balances"
}
