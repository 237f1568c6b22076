package services

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

type SettingsService struct {
	store  SettingsStore
	cache  readCache
	logger *logrus.Entry
}

func NewSettingsService(store SettingsStore, c cache.Cache, log logrus.FieldLogger) *SettingsService {
	entry := logger.Component(log, "services.settings")
	return &SettingsService{
		store:  store,
		cache:  readCache{cache: c, logger: entry},
		logger: entry,
	}
}

// Get retorna la configuración del sitio, creando la de defecto si no existe
func (s *SettingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if s.cache.get(ctx, cache.KeySettings, &settings) {
		return &settings, nil
	}

	current, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, cache.KeySettings, current)
	return current, nil
}

// WarrantyDays retorna la garantía por defecto configurada, o DefaultWarrantyDays
func (s *SettingsService) WarrantyDays(ctx context.Context) int {
	settings, err := s.Get(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("using default warranty period")
		return models.DefaultWarrantyDays
	}
	if settings.Business.WarrantyPeriodDays <= 0 {
		return models.DefaultWarrantyDays
	}
	return settings.Business.WarrantyPeriodDays
}

// Update mezcla las secciones enviadas con las guardadas
func (s *SettingsService) Update(ctx context.Context, update *models.SettingsUpdate) (*models.SiteSettings, error) {
	if update == nil || update.Empty() {
		return nil, models.NewValidationError("settings", "at least one settings section is required")
	}
	if err := ValidateSettings(update); err != nil {
		return nil, err
	}

	settings, err := s.store.Merge(ctx, update)
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, cache.KeySettings, cache.KeyHome)
	s.logger.Info("site settings updated")
	return settings, nil
}

// ValidateSettings valida las secciones presentes
func ValidateSettings(u *models.SettingsUpdate) error {
	if u.Business != nil && u.Business.WarrantyPeriodDays < 0 {
		return models.NewValidationError("business.warrantyPeriodDays", "warrantyPeriodDays cannot be negative")
	}

	if h := u.Homepage; h != nil {
		limits := map[string]int{
			"homepage.newArrivalsLimit":      h.NewArrivalsLimit,
			"homepage.dealsLimit":            h.DealsLimit,
			"homepage.limitedStockLimit":     h.LimitedStockLimit,
			"homepage.topHighlightsLimit":    h.TopHighlightsLimit,
			"homepage.bottomHighlightsLimit": h.BottomHighlightsLimit,
		}
		for field, n := range limits {
			if n < 1 || n > models.MaxPerSection {
				return models.NewValidationError(field, "%s must be between 1 and %d", field, models.MaxPerSection)
			}
		}
	}

	if m := u.Maintenance; m != nil {
		for _, ip := range m.AllowedIPs {
			if net.ParseIP(ip) == nil {
				return models.NewValidationError("maintenance.allowedIps", "%q is not a valid IP address", ip)
			}
		}
	}
	return nil
}
