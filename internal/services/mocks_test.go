package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"laptop-storefront/internal/events"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

type MockProductStore struct {
	mock.Mock
}

var _ ProductStore = (*MockProductStore)(nil)

func (m *MockProductStore) ListPublished(ctx context.Context, q repository.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductStore) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductStore) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil {
		product.ID = "new-id"
		product.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *MockProductStore) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductStore) SetPublished(ctx context.Context, id string, published bool) error {
	return m.Called(ctx, id, published).Error(0)
}

func (m *MockProductStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductStore) Stats(ctx context.Context) (models.ProductStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ProductStats), args.Error(1)
}

type MockCustomerStore struct {
	mock.Mock
}

var _ CustomerStore = (*MockCustomerStore)(nil)

func (m *MockCustomerStore) List(ctx context.Context, q repository.CustomerQuery) ([]models.Customer, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerStore) Get(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerStore) Create(ctx context.Context, c *models.Customer) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = "cust-1"
	}
	return args.Error(0)
}

func (m *MockCustomerStore) Update(ctx context.Context, c *models.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerStore) SetStatus(ctx context.Context, id string, status models.CustomerStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCustomerStore) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockCustomerStore) MarkReviewRequested(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockCustomerStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerStore) Stats(ctx context.Context) (models.CustomerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CustomerStats), args.Error(1)
}

type MockReviewStore struct {
	mock.Mock
}

var _ ReviewStore = (*MockReviewStore)(nil)

func (m *MockReviewStore) List(ctx context.Context, q repository.ReviewQuery) ([]models.StoreReview, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.StoreReview), args.Error(1)
}

func (m *MockReviewStore) ListApproved(ctx context.Context, limit int) ([]models.StoreReview, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StoreReview), args.Error(1)
}

func (m *MockReviewStore) Get(ctx context.Context, id string) (*models.StoreReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreReview), args.Error(1)
}

func (m *MockReviewStore) Create(ctx context.Context, review *models.StoreReview) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = "rev-1"
	}
	return args.Error(0)
}

func (m *MockReviewStore) Update(ctx context.Context, review *models.StoreReview) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewStore) SetStatus(ctx context.Context, id string, from, to models.ReviewStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockReviewStore) SetFeatured(ctx context.Context, id string, featured bool) error {
	return m.Called(ctx, id, featured).Error(0)
}

func (m *MockReviewStore) Reply(ctx context.Context, id, reply string, at time.Time) error {
	return m.Called(ctx, id, reply, at).Error(0)
}

func (m *MockReviewStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewStore) Stats(ctx context.Context) (models.ReviewStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ReviewStats), args.Error(1)
}

type MockSettingsStore struct {
	mock.Mock
}

var _ SettingsStore = (*MockSettingsStore)(nil)

func (m *MockSettingsStore) Get(ctx context.Context) (*models.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

func (m *MockSettingsStore) Merge(ctx context.Context, update *models.SettingsUpdate) (*models.SiteSettings, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

// recordingPublisher guarda los eventos publicados
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) subjects() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
