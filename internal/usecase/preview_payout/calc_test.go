package preview_payout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dgarza/barberbook/internal/domain"
)

func TestCalculateBreakdown(t *testing.T) {
	rates := domain.CommissionRates{
		ServiceRate: 0.6,
		ProductRate: 0.1,
		TipRate:     1.0,
	}

	soldAt := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		{ID: 1, Status: domain.StatusCompleted, ServicePrice: 30, TipAmount: 5},
		{ID: 2, Status: domain.StatusCompleted, ServicePrice: 45, TipAmount: 0},
		{ID: 3, Status: domain.StatusBooked, ServicePrice: 50, TipAmount: 10},
		{ID: 4, Status: domain.StatusCompleted, ServicePrice: 25, TipAmount: 3, CommissionPaid: true},
	}
	sales := []*domain.ProductSale{
		{ID: 10, Quantity: 2, RetailPrice: 12.50, SoldAt: soldAt},
		{ID: 11, Quantity: 1, RetailPrice: 8, SoldAt: soldAt, CommissionPaid: true},
	}

	b := CalculateBreakdown(appointments, sales, rates)

	// only the completed, unsettled appointments count
	assert.Equal(t, 2, b.Services.Count)
	assert.InDelta(t, 75, b.Services.TotalRevenue, 1e-9)
	assert.InDelta(t, 0.6, b.Services.CommissionRate, 1e-9)
	assert.InDelta(t, 45, b.Services.CommissionAmount, 1e-9)
	assert.Equal(t, []int64{1, 2}, b.Services.ItemIDs)

	// the zero-tip appointment stays out of the tips bucket
	assert.Equal(t, 1, b.Tips.Count)
	assert.InDelta(t, 5, b.Tips.TotalRevenue, 1e-9)
	assert.InDelta(t, 5, b.Tips.CommissionAmount, 1e-9)
	assert.Equal(t, []int64{1}, b.Tips.ItemIDs)

	assert.Equal(t, 1, b.Products.Count)
	assert.InDelta(t, 25, b.Products.TotalRevenue, 1e-9)
	assert.InDelta(t, 2.5, b.Products.CommissionAmount, 1e-9)
	assert.Equal(t, []int64{10}, b.Products.ItemIDs)

	assert.InDelta(t, 52.5, b.CalculatedAmount(), 1e-9)
}

func TestCalculateBreakdown_Empty(t *testing.T) {
	rates := domain.CommissionRates{ServiceRate: 0.5, ProductRate: 0.1, TipRate: 1}

	b := CalculateBreakdown(nil, nil, rates)

	assert.Zero(t, b.Services.Count)
	assert.Zero(t, b.Products.Count)
	assert.Zero(t, b.Tips.Count)
	assert.Zero(t, b.CalculatedAmount())

	// rates are still carried for the preview rendering
	assert.InDelta(t, 0.5, b.Services.CommissionRate, 1e-9)
	assert.InDelta(t, 0.1, b.Products.CommissionRate, 1e-9)
	assert.InDelta(t, 1, b.Tips.CommissionRate, 1e-9)
}
