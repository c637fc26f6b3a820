package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAIModel_UnitCost(t *testing.T) {
	t.Run("prefers base cost", func(t *testing.T) {
		model := &AIModel{
			BaseCostUSD: decimal.RequireFromString("0.0390"),
			UnitCostUSD: decimal.RequireFromString("0.0500"),
		}

		assert.Equal(t, "0.0390", model.UnitCost().StringFixed(4))
	})

	t.Run("falls back to unit cost", func(t *testing.T) {
		model := &AIModel{UnitCostUSD: decimal.RequireFromString("0.1500")}

		assert.Equal(t, "0.1500", model.UnitCost().StringFixed(4))
	})
}

func TestAIModel_HasCostData(t *testing.T) {
	withCost := &AIModel{BaseCostUSD: decimal.RequireFromString("0.0390")}
	priceFirst := &AIModel{Price: decimal.RequireFromString("4.00")}

	assert.True(t, withCost.HasCostData())
	assert.False(t, priceFirst.HasCostData())
}

func TestAIModel_ObserveProcessingTime(t *testing.T) {
	t.Run("averages over the lifetime counter", func(t *testing.T) {
		model := &AIModel{TotalGenerations: 2}

		model.ObserveProcessingTime(10.0)

		// (0*1 + 10) / 2
		assert.InDelta(t, 5.0, model.AverageGenerationTime, 0.001)

		model.TotalGenerations = 3
		model.ObserveProcessingTime(20.0)

		// (5*2 + 20) / 3
		assert.InDelta(t, 10.0, model.AverageGenerationTime, 0.001)
	})

	t.Run("tolerates a zero counter", func(t *testing.T) {
		model := &AIModel{}

		model.ObserveProcessingTime(7.5)

		assert.InDelta(t, 7.5, model.AverageGenerationTime, 0.001)
	})
}

func TestAIModel_Counters(t *testing.T) {
	model := &AIModel{}

	model.RecordGeneration()
	model.RecordGeneration()
	model.RecordError()

	assert.Equal(t, uint64(2), model.TotalGenerations)
	assert.Equal(t, uint64(1), model.TotalErrors)
}

func TestAIModel_DefaultParam(t *testing.T) {
	model := &AIModel{DefaultParams: map[string]any{"duration": 8}}

	v, ok := model.DefaultParam("duration")
	assert.True(t, ok)
	assert.Equal(t, 8, v)

	_, ok = model.DefaultParam("missing")
	assert.False(t, ok)

	empty := &AIModel{}
	_, ok = empty.DefaultParam("duration")
	assert.False(t, ok)
}
