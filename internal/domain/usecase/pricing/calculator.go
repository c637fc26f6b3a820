package pricing

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/berikbekishev-source/nanobanana-core/internal/domain/entity"
	coreport "github.com/berikbekishev-source/nanobanana-core/internal/domain/port/core"
	"github.com/berikbekishev-source/nanobanana-core/internal/domain/port/persistence"
)

// Calculator converts provider-side model costs into user-facing token
// prices. All arithmetic is decimal with half-up rounding: USD at four
// decimal places, tokens at two.
type Calculator struct {
	pricingRepo persistence.PricingRepository
	logger      coreport.Logger

	mu     sync.RWMutex
	cached *entity.PricingSettings
}

// NewCalculator creates a cost calculator backed by the pricing settings row.
func NewCalculator(pricingRepo persistence.PricingRepository, logger coreport.Logger) *Calculator {
	return &Calculator{
		pricingRepo: pricingRepo,
		logger:      logger,
	}
}

// Settings returns the cached pricing settings, loading them on first use.
// Returns ErrPricingNotConfigured when no settings row exists.
func (c *Calculator) Settings(ctx context.Context) (*entity.PricingSettings, error) {
	c.mu.RLock()
	cached := c.cached
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	settings, err := c.pricingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = settings
	c.mu.Unlock()
	return settings, nil
}

// Invalidate drops the cached settings. Called after administrative updates.
func (c *Calculator) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// ResolveUnits returns the billable unit count for a request.
//
// Per-image models bill max(1, quantity). Per-second models bill the resolved
// duration, by priority: explicit duration argument, then the "duration" key
// of the request params, then the model's default params, then 1. Flat-fee
// models always bill a single unit regardless of quantity or duration.
func (c *Calculator) ResolveUnits(model *entity.AIModel, quantity int, duration *int, params map[string]any) decimal.Decimal {
	switch model.CostUnit {
	case entity.CostUnitSecond:
		seconds := 1
		switch {
		case duration != nil && *duration > 0:
			seconds = *duration
		default:
			if v, ok := intParam(params, "duration"); ok && v > 0 {
				seconds = v
			} else if v, ok := intParam(model.DefaultParams, "duration"); ok && v > 0 {
				seconds = v
			}
		}
		return decimal.NewFromInt(int64(seconds))
	case entity.CostUnitGeneration:
		return decimal.NewFromInt(1)
	default: // per image
		if quantity < 1 {
			quantity = 1
		}
		return decimal.NewFromInt(int64(quantity))
	}
}

// ComputeCostUSD returns the provider cost of a request in USD.
func (c *Calculator) ComputeCostUSD(model *entity.AIModel, quantity int, duration *int, params map[string]any) decimal.Decimal {
	units := c.ResolveUnits(model, quantity, duration, params)
	return entity.QuantizeUSD(model.UnitCost().Mul(units))
}

// USDToRetailTokens converts a USD amount to the retail token price using the
// configured exchange rate and markup.
func (c *Calculator) USDToRetailTokens(ctx context.Context, amountUSD decimal.Decimal) (decimal.Decimal, error) {
	settings, err := c.Settings(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return entity.QuantizeTokens(amountUSD.Mul(settings.RetailFactor())), nil
}

// CalculateRequestCost computes both the provider cost in USD and the retail
// token price for a request.
//
// Cost-first models derive the price from their USD cost. Models configured
// with only a legacy flat token Price take the price-first path: the price is
// Price times units, and the implied USD cost is back-computed by inverting
// the retail conversion when the combined rate allows it.
func (c *Calculator) CalculateRequestCost(
	ctx context.Context,
	model *entity.AIModel,
	quantity int,
	duration *int,
	params map[string]any,
) (costUSD, priceTokens decimal.Decimal, err error) {
	costUSD = c.ComputeCostUSD(model, quantity, duration, params)

	if costUSD.IsPositive() {
		priceTokens, err = c.USDToRetailTokens(ctx, costUSD)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return costUSD, priceTokens, nil
	}

	units := c.ResolveUnits(model, quantity, duration, params)
	priceTokens = entity.QuantizeTokens(model.Price.Mul(units))

	settings, err := c.Settings(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if factor := settings.RetailFactor(); factor.IsPositive() {
		costUSD = entity.QuantizeUSD(priceTokens.Div(factor))
	}
	return costUSD, priceTokens, nil
}

// intParam extracts an integer value from a parameter bag, coercing the
// numeric types JSON decoding produces.
func intParam(params map[string]any, key string) (int, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
