package migration

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/infrastructure/adapter/model"
)

// defaultModels is the initial pricing catalog. Cost-first entries carry a
// provider cost in USD; the retail Price in tokens is cached by ops tooling
// and serves as the fallback for legacy price-first entries.
var defaultModels = []model.AIModel{
	{
		Slug:            "nano-banana",
		DisplayName:     "Nano Banana",
		Type:            "image",
		Provider:        "gemini",
		BaseCostUSD:     decimal.RequireFromString("0.0390"),
		CostUnit:        "image",
		Price:           decimal.RequireFromString("1.56"),
		MaxQuantity:     4,
		MaxPromptLength: 2000,
		MaxInputImages:  4,
		IsActive:        true,
		DefaultParams:   map[string]any{"aspect_ratio": "1:1"},
	},
	{
		Slug:            "veo3-fast",
		DisplayName:     "Veo 3 Fast",
		Type:            "video",
		Provider:        "gemini",
		BaseCostUSD:     decimal.RequireFromString("0.1500"),
		CostUnit:        "second",
		Price:           decimal.RequireFromString("6.00"),
		MaxQuantity:     1,
		MaxPromptLength: 2000,
		MaxInputImages:  1,
		IsActive:        true,
		DefaultParams:   map[string]any{"duration": 8, "resolution": "720p", "aspect_ratio": "16:9"},
	},
	{
		Slug:            "midjourney",
		DisplayName:     "Midjourney",
		Type:            "image",
		Provider:        "midjourney",
		CostUnit:        "generation",
		Price:           decimal.RequireFromString("4.00"),
		MaxQuantity:     1,
		MaxPromptLength: 4000,
		MaxInputImages:  5,
		IsActive:        true,
		DefaultParams:   map[string]any{"aspect_ratio": "1:1"},
	},
}

// SeedPricing inserts the pricing settings singleton and the default model
// catalog when they are absent. Existing rows are never touched.
func SeedPricing(db *gorm.DB, logger coreport.Logger) error {
	var settings model.PricingSettings
	err := db.Order("id").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.PricingSettings{
			ID:               1,
			USDToTokenRate:   decimal.RequireFromString("20.0000"),
			MarkupMultiplier: decimal.RequireFromString("2.0000"),
		}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
		logger.Info("Seeded pricing settings", map[string]any{
			"usd_to_token_rate": settings.USDToTokenRate.String(),
			"markup_multiplier": settings.MarkupMultiplier.String(),
		})
	} else if err != nil {
		return err
	}

	for i := range defaultModels {
		var existing model.AIModel
		err := db.Where("slug = ?", defaultModels[i].Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&defaultModels[i]).Error; err != nil {
				return err
			}
			logger.Info("Seeded model", map[string]any{"slug": defaultModels[i].Slug})
		} else if err != nil {
			return err
		}
	}
	return nil
}
