package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountUsable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base := Discount{
		Code:               "SAVE10",
		DiscountPercentage: 10,
		IsActive:           true,
		ExpirationDate:     now.Add(24 * time.Hour),
		UsageLimit:         5,
		UsedCount:          0,
	}

	t.Run("usable", func(t *testing.T) {
		d := base
		assert.NoError(t, d.Usable(now))
	})

	t.Run("inactive reads as not found", func(t *testing.T) {
		d := base
		d.IsActive = false
		assert.ErrorIs(t, d.Usable(now), ErrDiscountNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		d := base
		d.ExpirationDate = now.Add(-time.Minute)
		assert.ErrorIs(t, d.Usable(now), ErrDiscountExpired)
	})

	t.Run("expiration moment itself is still valid", func(t *testing.T) {
		d := base
		d.ExpirationDate = now
		assert.NoError(t, d.Usable(now))
	})

	t.Run("exhausted", func(t *testing.T) {
		d := base
		d.UsedCount = 5
		assert.ErrorIs(t, d.Usable(now), ErrDiscountExhausted)
	})

	t.Run("last use still available", func(t *testing.T) {
		d := base
		d.UsedCount = 4
		assert.NoError(t, d.Usable(now))
	})
}

func TestDiscountGrandTotal(t *testing.T) {
	tests := []struct {
		percentage float64
		total      float64
		want       float64
	}{
		{10, 1000, 900},
		{0, 1000, 1000},
		{100, 1000, 0},
		{15, 999, 849}, // 849.15 rounds down
		{33, 100, 67},
		{50, 75, 38}, // 37.5 rounds up
	}
	for _, tt := range tests {
		d := Discount{DiscountPercentage: tt.percentage}
		assert.InDelta(t, tt.want, d.GrandTotal(tt.total), 1e-9,
			"%.0f%% of %.2f", tt.percentage, tt.total)
	}
}
