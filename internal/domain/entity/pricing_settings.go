package entity

import (
	"github.com/shopspring/decimal"
)

// PricingSettings is the singleton holding the USD to token exchange rate and
// the retail markup. Read-only from the core's perspective; updated through
// an administrative path that invalidates the calculator's cache.
type PricingSettings struct {
	ID               uint64
	USDToTokenRate   decimal.Decimal
	MarkupMultiplier decimal.Decimal
}

// RetailFactor is the combined rate applied to a USD amount to obtain the
// retail token price.
func (p *PricingSettings) RetailFactor() decimal.Decimal {
	return p.USDToTokenRate.Mul(p.MarkupMultiplier)
}
