package production

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduction(t *testing.T) *FoodProduction {
	t.Helper()
	p, err := NewFoodProduction(uuid.New(), "prd-2025-001", "Nasi Ayam Goreng", time.Now(), 500)
	require.NoError(t, err)
	return p
}

func TestNewFoodProduction(t *testing.T) {
	t.Run("uppercases batch number", func(t *testing.T) {
		p := newTestProduction(t)
		assert.Equal(t, "PRD-2025-001", p.BatchNumber)
		assert.Equal(t, StatusPlanned, p.Status)
	})

	t.Run("rejects non-positive portions", func(t *testing.T) {
		_, err := NewFoodProduction(uuid.New(), "PRD-001", "Menu", time.Now(), 0)
		require.Error(t, err)
	})
}

func TestFoodProduction_StockUsage(t *testing.T) {
	t.Run("accumulates ingredient cost", func(t *testing.T) {
		p := newTestProduction(t)
		require.NoError(t, p.Start())

		_, err := p.RecordStockUsage(uuid.New(), "RICE-01", "Beras", "kg", decimal.NewFromInt(50), decimal.NewFromInt(12))
		require.NoError(t, err)
		_, err = p.RecordStockUsage(uuid.New(), "CHK-01", "Ayam", "kg", decimal.NewFromInt(30), decimal.NewFromInt(35))
		require.NoError(t, err)

		// 50*12 + 30*35 = 1650
		assert.True(t, p.IngredientCost.Equal(decimal.NewFromInt(1650)))
	})

	t.Run("planned batch cannot consume stock", func(t *testing.T) {
		p := newTestProduction(t)
		_, err := p.RecordStockUsage(uuid.New(), "RICE-01", "Beras", "kg", decimal.NewFromInt(10), decimal.NewFromInt(12))
		require.Error(t, err)
	})
}

func TestFoodProduction_Complete(t *testing.T) {
	t.Run("derives cost per meal from actual portions", func(t *testing.T) {
		p := newTestProduction(t)
		require.NoError(t, p.Start())
		_, err := p.RecordStockUsage(uuid.New(), "RICE-01", "Beras", "kg", decimal.NewFromInt(100), decimal.NewFromInt(10))
		require.NoError(t, err)

		require.NoError(t, p.Complete(480, decimal.NewFromInt(200), decimal.NewFromInt(100), decimal.NewFromInt(100)))

		// (1000 + 200 + 100 + 100) / 480 = 2.9167
		assert.True(t, p.TotalCost.Equal(decimal.NewFromInt(1400)))
		assert.True(t, p.CostPerMeal.Equal(decimal.RequireFromString("2.9167")))
	})

	t.Run("falls back to planned portions when actuals missing", func(t *testing.T) {
		p := newTestProduction(t)
		require.NoError(t, p.Start())
		_, err := p.RecordStockUsage(uuid.New(), "RICE-01", "Beras", "kg", decimal.NewFromInt(100), decimal.NewFromInt(10))
		require.NoError(t, err)

		require.NoError(t, p.Complete(0, decimal.Zero, decimal.Zero, decimal.Zero))

		// 1000 / 500 planned portions
		assert.True(t, p.CostPerMeal.Equal(decimal.NewFromInt(2)))
	})

	t.Run("cannot complete a planned batch", func(t *testing.T) {
		p := newTestProduction(t)
		require.Error(t, p.Complete(100, decimal.Zero, decimal.Zero, decimal.Zero))
	})
}

func TestFoodProduction_Cancel(t *testing.T) {
	p := newTestProduction(t)
	require.NoError(t, p.Start())
	require.NoError(t, p.Cancel())
	assert.Equal(t, StatusCancelled, p.Status)

	require.Error(t, p.Start())
}
