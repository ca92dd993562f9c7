package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSupplier(t *testing.T) *Supplier {
	t.Helper()
	s, err := NewSupplier(uuid.New(), "sup-01", "CV Sumber Pangan", SupplierCategoryFoodstuff)
	require.NoError(t, err)
	return s
}

func TestNewSupplier(t *testing.T) {
	t.Run("uppercases code and starts active", func(t *testing.T) {
		s := newTestSupplier(t)
		assert.Equal(t, "SUP-01", s.Code)
		assert.Equal(t, SupplierStatusActive, s.Status)
		assert.True(t, s.CanReceiveOrders())
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewSupplier(uuid.New(), "SUP-02", "X", SupplierCategory("LOGISTICS"))
		require.Error(t, err)
	})
}

func TestSupplier_Ratings(t *testing.T) {
	t.Run("overall rating averages all scores", func(t *testing.T) {
		s := newTestSupplier(t)
		require.NoError(t, s.AddRating(5))
		require.NoError(t, s.AddRating(4))
		require.NoError(t, s.AddRating(3))

		assert.Equal(t, 3, s.RatingCount)
		assert.True(t, s.OverallRating.Equal(decimal.NewFromInt(4)))
	})

	t.Run("rejects out-of-range scores", func(t *testing.T) {
		s := newTestSupplier(t)
		require.Error(t, s.AddRating(0))
		require.Error(t, s.AddRating(6))
		assert.Equal(t, 0, s.RatingCount)
	})
}

func TestSupplier_Performance(t *testing.T) {
	s := newTestSupplier(t)
	s.RecordOrderPlaced()
	s.RecordOrderPlaced()
	s.RecordOrderPlaced()
	s.RecordOrderCompleted(true)
	s.RecordOrderCompleted(false)
	s.RecordOrderRejected()

	assert.Equal(t, 3, s.TotalOrders)
	assert.Equal(t, 2, s.CompletedOrders)
	assert.Equal(t, 1, s.RejectedOrders)
	assert.True(t, s.OnTimeRate().Equal(decimal.RequireFromString("0.5")))
}

func TestSupplier_Block(t *testing.T) {
	s := newTestSupplier(t)
	require.NoError(t, s.Block("repeated quality failures"))
	assert.False(t, s.CanReceiveOrders())
	require.Error(t, s.Block("again"))

	s.Activate()
	assert.True(t, s.CanReceiveOrders())
}

func TestNewSupplierRating(t *testing.T) {
	t.Run("valid rating", func(t *testing.T) {
		poID := uuid.New()
		r, err := NewSupplierRating(uuid.New(), uuid.New(), uuid.New(), &poID, 4, " good delivery ")
		require.NoError(t, err)
		assert.Equal(t, 4, r.Score)
		assert.Equal(t, "good delivery", r.Comment)
	})

	t.Run("rejects out-of-range score", func(t *testing.T) {
		_, err := NewSupplierRating(uuid.New(), uuid.New(), uuid.New(), nil, 0, "")
		require.Error(t, err)
	})
}
