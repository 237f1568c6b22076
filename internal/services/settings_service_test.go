package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

func TestSettingsService_Get_Cached(t *testing.T) {
	ctx := context.Background()
	store := new(MockSettingsStore)
	c := cache.NewMemoryCache(time.Minute, 0)
	defer c.Close()
	s := NewSettingsService(store, c, logger.Discard())

	defaults := models.DefaultSettings()
	store.On("Get", ctx).Return(&defaults, nil).Once()

	first, err := s.Get(ctx)
	require.NoError(t, err)
	second, err := s.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Branding.StoreName, second.Branding.StoreName)
	store.AssertNumberOfCalls(t, "Get", 1)
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	store := new(MockSettingsStore)
	c := cache.NewMemoryCache(time.Minute, 0)
	defer c.Close()
	s := NewSettingsService(store, c, logger.Discard())

	require.NoError(t, c.Set(ctx, cache.KeySettings, models.DefaultSettings(), time.Minute))
	require.NoError(t, c.Set(ctx, cache.KeyHome, []HomeSection{}, time.Minute))

	update := &models.SettingsUpdate{Contact: &models.Contact{Phone: "+91 98765 43210"}}
	merged := models.DefaultSettings()
	merged.Contact.Phone = "+91 98765 43210"
	store.On("Merge", ctx, update).Return(&merged, nil)

	got, err := s.Update(ctx, update)

	require.NoError(t, err)
	assert.Equal(t, "+91 98765 43210", got.Contact.Phone)
	var v interface{}
	found, _ := c.Get(ctx, cache.KeySettings, &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, cache.KeyHome, &v)
	assert.False(t, found)
}

func TestSettingsService_Update_Validation(t *testing.T) {
	homepage := models.DefaultSettings().Homepage
	homepage.DealsLimit = 11

	tests := []struct {
		name   string
		update *models.SettingsUpdate
		field  string
	}{
		{"empty", &models.SettingsUpdate{}, "settings"},
		{"negative warranty", &models.SettingsUpdate{Business: &models.Business{WarrantyPeriodDays: -1}}, "business.warrantyPeriodDays"},
		{"homepage limit", &models.SettingsUpdate{Homepage: &homepage}, "homepage.dealsLimit"},
		{"bad ip", &models.SettingsUpdate{Maintenance: &models.Maintenance{AllowedIPs: []string{"10.0.0.300"}}}, "maintenance.allowedIps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockSettingsStore)
			s := NewSettingsService(store, nil, logger.Discard())

			_, err := s.Update(context.Background(), tt.update)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			store.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything)
		})
	}
}

func TestSettingsService_WarrantyDays(t *testing.T) {
	ctx := context.Background()

	store := new(MockSettingsStore)
	store.On("Get", ctx).Return(nil, errors.New("connection refused"))
	s := NewSettingsService(store, nil, logger.Discard())
	assert.Equal(t, models.DefaultWarrantyDays, s.WarrantyDays(ctx))

	configured := models.DefaultSettings()
	configured.Business.WarrantyPeriodDays = 30
	store = new(MockSettingsStore)
	store.On("Get", ctx).Return(&configured, nil)
	s = NewSettingsService(store, nil, logger.Discard())
	assert.Equal(t, 30, s.WarrantyDays(ctx))
}
