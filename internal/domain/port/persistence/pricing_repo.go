package persistence

import (
	"context"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
)

// PricingRepository reads the pricing settings singleton.
type PricingRepository interface {
	// Get returns the first (and only) pricing settings row
	//
	// Possible errors:
	// - ErrPricingNotConfigured: If no settings row exists
	Get(ctx context.Context) (*entity.PricingSettings, error)
}
