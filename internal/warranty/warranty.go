package warranty

import (
	"time"

	"laptop-storefront/internal/models"
)

// ExpiringSoonWindow es el umbral para "Expiring Soon"
const ExpiringSoonWindow = 30 * 24 * time.Hour

// Status calcula el estado de garantía en el instante now. Se llama en cada lectura.
func Status(now, end time.Time) models.WarrantyStatus {
	if now.After(end) {
		return models.WarrantyExpired
	}
	if end.Sub(now) <= ExpiringSoonWindow {
		return models.WarrantyExpiringSoon
	}
	return models.WarrantyActive
}

// EndDate suma los días de garantía a la fecha de compra. days <= 0 usa DefaultWarrantyDays.
func EndDate(purchase time.Time, days int) time.Time {
	if days <= 0 {
		days = models.DefaultWarrantyDays
	}
	return purchase.AddDate(0, 0, days)
}

// DaysRemaining retorna los días completos que quedan, 0 si ya venció
func DaysRemaining(now, end time.Time) int {
	if !end.After(now) {
		return 0
	}
	return int(end.Sub(now) / (24 * time.Hour))
}

// Apply recalcula WarrantyStatus sobre el cliente
func Apply(c *models.Customer, now time.Time) {
	c.WarrantyStatus = Status(now, c.WarrantyEndDate)
}
