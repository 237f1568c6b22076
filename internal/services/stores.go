package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/events"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

// ProductStore es lo que los servicios necesitan de la colección products
type ProductStore interface {
	ListPublished(ctx context.Context, q repository.ProductQuery) ([]models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Count(ctx context.Context) (int64, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SetPublished(ctx context.Context, id string, published bool) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.ProductStats, error)
}

type CustomerStore interface {
	List(ctx context.Context, q repository.CustomerQuery) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	SetStatus(ctx context.Context, id string, status models.CustomerStatus) error
	MarkReminderSent(ctx context.Context, id string, at time.Time) error
	MarkReviewRequested(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.CustomerStats, error)
}

type ReviewStore interface {
	List(ctx context.Context, q repository.ReviewQuery) ([]models.StoreReview, error)
	ListApproved(ctx context.Context, limit int) ([]models.StoreReview, error)
	Get(ctx context.Context, id string) (*models.StoreReview, error)
	Create(ctx context.Context, review *models.StoreReview) error
	Update(ctx context.Context, review *models.StoreReview) error
	SetStatus(ctx context.Context, id string, from, to models.ReviewStatus) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	Reply(ctx context.Context, id, reply string, at time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.ReviewStats, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Merge(ctx context.Context, update *models.SettingsUpdate) (*models.SiteSettings, error)
}

var (
	_ ProductStore  = (*repository.ProductRepository)(nil)
	_ CustomerStore = (*repository.CustomerRepository)(nil)
	_ ReviewStore   = (*repository.ReviewRepository)(nil)
	_ SettingsStore = (*repository.SettingsRepository)(nil)
)

// cacheTTL para las lecturas públicas
const cacheTTL = 2 * time.Minute

// readCache envuelve el caché: un error de caché se registra y se trata como miss
type readCache struct {
	cache  cache.Cache
	logger *logrus.Entry
}

func (c readCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}
	found, err := c.cache.Get(ctx, key, dest)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return found
}

func (c readCache) set(ctx context.Context, key string, value interface{}) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, value, cacheTTL); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (c readCache) invalidate(ctx context.Context, keys ...string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		c.logger.WithError(err).Warn("cache invalidation failed")
	}
}

func (c readCache) invalidatePrefix(ctx context.Context, prefix string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.DeleteByPrefix(ctx, prefix); err != nil {
		c.logger.WithError(err).WithField("prefix", prefix).Warn("cache invalidation failed")
	}
}

// publish no falla la operación si el evento no sale
func publish(ctx context.Context, p events.Publisher, log *logrus.Entry, event events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("subject", event.Type).Warn("failed to publish event")
	}
}
