package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"laptop-storefront/internal/models"
	"laptop-storefront/internal/warranty"
)

// LowStockThreshold: con este stock o menos (y más de cero) el producto cuenta como stock bajo
const LowStockThreshold = 3

func ComputeProductStats(products []models.Product) models.ProductStats {
	stats := models.ProductStats{
		ByCategory: make(map[models.Category]int),
		Capacity:   models.MaxProducts,
	}

	for i := range products {
		p := &products[i]
		stats.Total++
		if p.Published {
			stats.Published++
		} else {
			stats.Drafts++
		}
		if p.IsNewArrival {
			stats.NewArrivals++
		}
		if p.IsDeal {
			stats.Deals++
		}
		if p.IsLimitedStock {
			stats.LimitedStock++
		}
		if p.IsTopHighlight {
			stats.TopHighlights++
		}
		if p.IsBottomHighlight {
			stats.BottomHighlights++
		}
		switch {
		case p.StockCount == 0:
			stats.OutOfStock++
		case p.StockCount <= LowStockThreshold:
			stats.LowStock++
		}
		stats.InventoryValue += p.Price * int64(p.StockCount)
		stats.ByCategory[p.Category]++
	}

	stats.Remaining = models.MaxProducts - stats.Total
	if stats.Remaining < 0 {
		stats.Remaining = 0
	}
	return stats
}

// ComputeCustomerStats recalcula el estado de garantía con now; no usa nada persistido
func ComputeCustomerStats(customers []models.Customer, now time.Time) models.CustomerStats {
	stats := models.CustomerStats{
		ByStatus: make(map[models.CustomerStatus]int),
	}

	for i := range customers {
		c := &customers[i]
		stats.Total++
		stats.ByStatus[c.Status]++

		switch warranty.Status(now, c.WarrantyEndDate) {
		case models.WarrantyActive:
			stats.WarrantyActive++
		case models.WarrantyExpiringSoon:
			stats.ExpiringSoon++
		case models.WarrantyExpired:
			stats.WarrantyExpired++
		}
		if c.LastReminderDate != nil {
			stats.RemindersSent++
		}
		if c.ReviewRequestDate != nil {
			stats.ReviewRequested++
		}
	}
	return stats
}

// ComputeReviewStats calcula el promedio con decimal y lo redondea a un decimal
func ComputeReviewStats(reviews []models.StoreReview) models.ReviewStats {
	stats := models.ReviewStats{
		ByStatus:     make(map[models.ReviewStatus]int),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	sum := decimal.Zero
	for i := range reviews {
		r := &reviews[i]
		stats.Total++
		stats.ByStatus[r.Status]++
		if r.Featured {
			stats.Featured++
		}
		if r.Rating >= 1 && r.Rating <= 5 {
			stats.Distribution[r.Rating]++
		}
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}

	if stats.Total > 0 {
		stats.AverageRating = sum.Div(decimal.NewFromInt(int64(stats.Total))).Round(1).InexactFloat64()
	}
	return stats
}
