package entity

import (
	"github.com/shopspring/decimal"
)

// CostUnit is the billing granularity of a model.
type CostUnit string

const (
	// CostUnitImage bills per generated image.
	CostUnitImage CostUnit = "image"
	// CostUnitSecond bills per second of generated video.
	CostUnitSecond CostUnit = "second"
	// CostUnitGeneration bills a flat fee per generation run.
	CostUnitGeneration CostUnit = "generation"
)

// AIModel is a pricing catalog entry for one provider model.
//
// Two pricing paths coexist: cost-first models carry a provider cost in USD
// (BaseCostUSD/UnitCostUSD) from which the retail Price is derived, while
// legacy price-first models carry only a manually set Price in tokens.
type AIModel struct {
	ID          uint64
	Slug        string
	DisplayName string
	Type        string
	Provider    string

	// Price is the cached retail price in tokens for one billable unit.
	Price       decimal.Decimal
	BaseCostUSD decimal.Decimal
	UnitCostUSD decimal.Decimal
	CostUnit    CostUnit

	MaxQuantity     int
	MaxPromptLength int
	MaxInputImages  int
	DailyLimit      *int
	MinUserLevel    int
	DefaultParams   map[string]any
	IsActive        bool

	TotalGenerations      uint64
	TotalErrors           uint64
	AverageGenerationTime float64
}

// UnitCost returns the provider cost in USD for one billable unit,
// preferring BaseCostUSD and falling back to UnitCostUSD.
func (m *AIModel) UnitCost() decimal.Decimal {
	if !m.BaseCostUSD.IsZero() {
		return m.BaseCostUSD
	}
	return m.UnitCostUSD
}

// HasCostData reports whether the model carries provider cost information.
// Models without it are priced directly from Price (price-first path).
func (m *AIModel) HasCostData() bool {
	return !m.UnitCost().IsZero()
}

// RecordGeneration bumps the lifetime generation counter. Called at request
// creation time, before the outcome is known.
func (m *AIModel) RecordGeneration() {
	m.TotalGenerations++
}

// RecordError bumps the error counter.
func (m *AIModel) RecordError() {
	m.TotalErrors++
}

// ObserveProcessingTime folds a completed run's processing time (seconds)
// into the running average. The divisor is the lifetime generation counter,
// which also counts runs that later failed; the average is therefore skewed
// toward the model's total volume rather than its completed runs. Kept for
// continuity with historical statistics.
func (m *AIModel) ObserveProcessingTime(seconds float64) {
	n := float64(m.TotalGenerations)
	if n < 1 {
		n = 1
	}
	m.AverageGenerationTime = (m.AverageGenerationTime*(n-1) + seconds) / n
}

// DefaultParam returns a value from the model's default parameter bag.
func (m *AIModel) DefaultParam(key string) (any, bool) {
	if m.DefaultParams == nil {
		return nil, false
	}
	v, ok := m.DefaultParams[key]
	return v, ok
}
