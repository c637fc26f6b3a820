package entity

import (
	"time"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
)

// User is a bot user identified by their Telegram chat id.
// Users are created on first contact and never deleted.
type User struct {
	ID        uint64
	ChatID    int64
	Username  string
	CreatedAt time.Time
}

// NewUser creates a user for the given chat id.
func NewUser(chatID int64, username string, timeProvider coreport.TimeProvider) (*User, error) {
	if chatID == 0 {
		return nil, errs.ErrInvalidChatID
	}
	return &User{
		ChatID:    chatID,
		Username:  username,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// ExperiencePerLevel is the amount of experience points per user level.
const ExperiencePerLevel = 100

// ExperiencePerGeneration is the amount of experience points awarded for
// each generated unit of a completed run.
const ExperiencePerGeneration = 10

// UserSettings carries per-user generation statistics and progression.
type UserSettings struct {
	UserID               uint64
	TotalGenerations     uint64
	TotalImagesGenerated uint64
	TotalVideosGenerated uint64
	ExperiencePoints     int
	UserLevel            int
	DailyRewardStreak    int
	LastDailyRewardAt    *time.Time
	LastGenerationAt     *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewUserSettings creates empty settings for a user.
func NewUserSettings(userID uint64, timeProvider coreport.TimeProvider) *UserSettings {
	now := timeProvider.Now()
	return &UserSettings{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordGeneration updates generation counters for a newly created request.
func (s *UserSettings) RecordGeneration(generationType string, quantity int, now time.Time) {
	s.TotalGenerations++
	switch generationType {
	case GenerationTypeText2Image, GenerationTypeImage2Image:
		s.TotalImagesGenerated += uint64(quantity)
	case GenerationTypeText2Video, GenerationTypeImage2Video:
		s.TotalVideosGenerated += uint64(quantity)
	}
	s.LastGenerationAt = &now
	s.UpdatedAt = now
}

// AddExperience grants experience points and recomputes the level.
// Returns true when the user leveled up. Levels never go down.
func (s *UserSettings) AddExperience(points int, now time.Time) bool {
	s.ExperiencePoints += points
	s.UpdatedAt = now

	newLevel := s.ExperiencePoints / ExperiencePerLevel
	if newLevel > s.UserLevel {
		s.UserLevel = newLevel
		return true
	}
	return false
}
