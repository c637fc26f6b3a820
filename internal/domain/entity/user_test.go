package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/berikbekishev-source/nanobanana-core/internal/domain/error"
	"github.com/berikbekishev-source/nanobanana-core/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates a user for a chat", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		user, err := NewUser(123456, "alice", mockTimeProvider)

		assert.NoError(t, err)
		assert.Equal(t, int64(123456), user.ChatID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("rejects zero chat ID", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		_, err := NewUser(0, "alice", mockTimeProvider)

		assert.ErrorIs(t, err, errs.ErrInvalidChatID)
	})
}

func TestUserSettings_RecordGeneration(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("counts image generations", func(t *testing.T) {
		settings := &UserSettings{}

		settings.RecordGeneration(GenerationTypeText2Image, 4, now)

		assert.Equal(t, uint64(1), settings.TotalGenerations)
		assert.Equal(t, uint64(4), settings.TotalImagesGenerated)
		assert.Zero(t, settings.TotalVideosGenerated)
		assert.Equal(t, now, *settings.LastGenerationAt)
	})

	t.Run("counts video generations", func(t *testing.T) {
		settings := &UserSettings{}

		settings.RecordGeneration(GenerationTypeImage2Video, 1, now)

		assert.Equal(t, uint64(1), settings.TotalGenerations)
		assert.Equal(t, uint64(1), settings.TotalVideosGenerated)
		assert.Zero(t, settings.TotalImagesGenerated)
	})
}

func TestUserSettings_AddExperience(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("accumulates points below the level threshold", func(t *testing.T) {
		settings := &UserSettings{}

		leveledUp := settings.AddExperience(40, now)

		assert.False(t, leveledUp)
		assert.Equal(t, 40, settings.ExperiencePoints)
		assert.Equal(t, 0, settings.UserLevel)
	})

	t.Run("levels up at the threshold", func(t *testing.T) {
		settings := &UserSettings{ExperiencePoints: 90}

		leveledUp := settings.AddExperience(10, now)

		assert.True(t, leveledUp)
		assert.Equal(t, 1, settings.UserLevel)
	})

	t.Run("can skip multiple levels", func(t *testing.T) {
		settings := &UserSettings{}

		leveledUp := settings.AddExperience(250, now)

		assert.True(t, leveledUp)
		assert.Equal(t, 2, settings.UserLevel)
	})

	t.Run("level never decreases", func(t *testing.T) {
		settings := &UserSettings{ExperiencePoints: 50, UserLevel: 3}

		leveledUp := settings.AddExperience(10, now)

		assert.False(t, leveledUp)
		assert.Equal(t, 3, settings.UserLevel)
	})
}
