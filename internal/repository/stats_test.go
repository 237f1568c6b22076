package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"laptop-storefront/internal/models"
)

func TestComputeProductStats(t *testing.T) {
	products := []models.Product{
		{Category: models.CategoryPremium, Published: true, IsDeal: true, IsNewArrival: true, Price: 100000, StockCount: 1},
		{Category: models.CategoryPremium, Published: false, IsTopHighlight: true, Price: 90000, StockCount: 0},
		{Category: models.CategoryBasic, Published: true, IsLimitedStock: true, IsBottomHighlight: true, Price: 25000, StockCount: 10},
	}

	stats := ComputeProductStats(products)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Published)
	assert.Equal(t, 1, stats.Drafts)
	assert.Equal(t, 1, stats.Deals)
	assert.Equal(t, 1, stats.NewArrivals)
	assert.Equal(t, 1, stats.LimitedStock)
	assert.Equal(t, 1, stats.TopHighlights)
	assert.Equal(t, 1, stats.BottomHighlights)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, 1, stats.LowStock)
	assert.Equal(t, int64(350000), stats.InventoryValue)
	assert.Equal(t, 2, stats.ByCategory[models.CategoryPremium])
	assert.Equal(t, models.MaxProducts-3, stats.Remaining)
}

func TestComputeProductStats_Empty(t *testing.T) {
	stats := ComputeProductStats(nil)

	assert.Zero(t, stats.Total)
	assert.Equal(t, models.MaxProducts, stats.Remaining)
	assert.NotNil(t, stats.ByCategory)
}

func TestComputeCustomerStats(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	reminded := now.AddDate(0, 0, -3)
	customers := []models.Customer{
		{Status: models.CustomerActive, WarrantyEndDate: now.AddDate(0, 6, 0), WarrantyStatus: models.WarrantyExpired},
		{Status: models.CustomerActive, WarrantyEndDate: now.AddDate(0, 0, 5), LastReminderDate: &reminded},
		{Status: models.CustomerReviewRequested, WarrantyEndDate: now.AddDate(0, 0, -1), ReviewRequestDate: &reminded},
	}

	stats := ComputeCustomerStats(customers, now)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[models.CustomerActive])
	assert.Equal(t, 1, stats.WarrantyActive)
	assert.Equal(t, 1, stats.ExpiringSoon)
	assert.Equal(t, 1, stats.WarrantyExpired)
	assert.Equal(t, 1, stats.RemindersSent)
	assert.Equal(t, 1, stats.ReviewRequested)
}

func TestComputeReviewStats(t *testing.T) {
	reviews := []models.StoreReview{
		{Rating: 5, Status: models.ReviewApproved, Featured: true},
		{Rating: 4, Status: models.ReviewApproved},
		{Rating: 4, Status: models.ReviewPending},
	}

	stats := ComputeReviewStats(reviews)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[models.ReviewApproved])
	assert.Equal(t, 1, stats.Featured)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.Distribution)
}

func TestComputeReviewStats_Empty(t *testing.T) {
	stats := ComputeReviewStats(nil)

	assert.Zero(t, stats.AverageRating)
	assert.Len(t, stats.Distribution, 5)
}
