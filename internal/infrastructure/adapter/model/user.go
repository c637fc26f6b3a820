package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ChatID    int64     `gorm:"uniqueIndex;not null"`
	Username  string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// UserSettings represents the database model for per-user statistics
type UserSettings struct {
	UserID               uint64 `gorm:"primaryKey"`
	TotalGenerations     uint64 `gorm:"default:0"`
	TotalImagesGenerated uint64 `gorm:"default:0"`
	TotalVideosGenerated uint64 `gorm:"default:0"`
	ExperiencePoints     int    `gorm:"default:0"`
	UserLevel            int    `gorm:"default:0"`
	DailyRewardStreak    int    `gorm:"default:0"`
	LastDailyRewardAt    *time.Time
	LastGenerationAt     *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for UserSettings
func (UserSettings) TableName() string {
	return "user_settings"
}
