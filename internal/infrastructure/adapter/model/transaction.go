package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID                   uint64          `gorm:"primaryKey;autoIncrement"`
	UserID               uint64          `gorm:"not null;index"`
	Type                 string          `gorm:"not null;size:50;index"`
	Amount               decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	BalanceAfter         decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	IsPending            bool            `gorm:"not null;default:true;index"`
	IsCompleted          bool            `gorm:"not null;default:false"`
	BonusKind            string          `gorm:"size:50"`
	Description          string          `gorm:"type:text"`
	PaymentMethod        string          `gorm:"size:100"`
	PaymentID            string          `gorm:"size:255;index"`
	PaymentData          datatypes.JSONMap
	RelatedTransactionID *uint64   `gorm:"index"`
	GenerationRequestID  *uint64   `gorm:"index"`
	CreatedAt            time.Time `gorm:"not null;index"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
