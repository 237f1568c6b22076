package handlers

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/media"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
	"laptop-storefront/internal/services"
)

type MockStorefront struct{ mock.Mock }

func (m *MockStorefront) Browse(ctx context.Context, spec catalog.FilterSpec, page, pageSize int) (*services.BrowseResult, error) {
	args := m.Called(ctx, spec, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BrowseResult), args.Error(1)
}

func (m *MockStorefront) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockStorefront) Detail(ctx context.Context, key string) (*services.ProductDetail, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProductDetail), args.Error(1)
}

func (m *MockStorefront) Home(ctx context.Context) ([]services.HomeSection, error) {
	args := m.Called(ctx)
	return args.Get(0).([]services.HomeSection), args.Error(1)
}

type MockProductAdmin struct{ mock.Mock }

func (m *MockProductAdmin) List(ctx context.Context, spec catalog.FilterSpec, search string) ([]models.Product, error) {
	args := m.Called(ctx, spec, search)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductAdmin) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductAdmin) Create(ctx context.Context, in *models.ProductInput) (*services.SaveResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SaveResult), args.Error(1)
}

func (m *MockProductAdmin) Update(ctx context.Context, id string, in *models.ProductInput) (*services.SaveResult, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SaveResult), args.Error(1)
}

func (m *MockProductAdmin) SetPublished(ctx context.Context, id string, published bool) (*models.Product, error) {
	args := m.Called(ctx, id, published)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductAdmin) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductAdmin) BulkDelete(ctx context.Context, ids []string) models.BulkResult {
	return m.Called(ctx, ids).Get(0).(models.BulkResult)
}

func (m *MockProductAdmin) Duplicate(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductAdmin) FlagWarnings(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductAdmin) Stats(ctx context.Context) (models.ProductStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ProductStats), args.Error(1)
}

type MockCustomerAdmin struct{ mock.Mock }

func (m *MockCustomerAdmin) List(ctx context.Context, q repository.CustomerQuery) ([]models.Customer, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerAdmin) Get(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerAdmin) Create(ctx context.Context, in *models.CustomerInput) (*models.Customer, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerAdmin) Update(ctx context.Context, id string, in *models.CustomerInput) (*models.Customer, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerAdmin) SetStatus(ctx context.Context, id string, status models.CustomerStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCustomerAdmin) SendReminder(ctx context.Context, id string) (time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockCustomerAdmin) RequestReview(ctx context.Context, id string) (time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockCustomerAdmin) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerAdmin) BulkDelete(ctx context.Context, ids []string) models.BulkResult {
	return m.Called(ctx, ids).Get(0).(models.BulkResult)
}

func (m *MockCustomerAdmin) Stats(ctx context.Context) (models.CustomerStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CustomerStats), args.Error(1)
}

type MockReviewModeration struct{ mock.Mock }

func (m *MockReviewModeration) List(ctx context.Context, q repository.ReviewQuery) ([]models.StoreReview, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) ListPublic(ctx context.Context) ([]models.StoreReview, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) Get(ctx context.Context, id string) (*models.StoreReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) Submit(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) Create(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) Update(ctx context.Context, id string, in *models.ReviewInput) (*models.StoreReview, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) SetStatus(ctx context.Context, id string, to models.ReviewStatus) (*models.StoreReview, error) {
	args := m.Called(ctx, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoreReview), args.Error(1)
}

func (m *MockReviewModeration) BulkStatus(ctx context.Context, ids []string, to models.ReviewStatus) (models.BulkResult, error) {
	args := m.Called(ctx, ids, to)
	return args.Get(0).(models.BulkResult), args.Error(1)
}

func (m *MockReviewModeration) SetFeatured(ctx context.Context, id string, featured bool) error {
	return m.Called(ctx, id, featured).Error(0)
}

func (m *MockReviewModeration) Reply(ctx context.Context, id, reply string) (time.Time, error) {
	args := m.Called(ctx, id, reply)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockReviewModeration) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewModeration) BulkDelete(ctx context.Context, ids []string) models.BulkResult {
	return m.Called(ctx, ids).Get(0).(models.BulkResult)
}

func (m *MockReviewModeration) Stats(ctx context.Context) (models.ReviewStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ReviewStats), args.Error(1)
}

type MockSiteSettings struct{ mock.Mock }

func (m *MockSiteSettings) Get(ctx context.Context) (*models.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

func (m *MockSiteSettings) Update(ctx context.Context, update *models.SettingsUpdate) (*models.SiteSettings, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteSettings), args.Error(1)
}

type MockImageUploader struct{ mock.Mock }

func (m *MockImageUploader) Upload(ctx context.Context, name string, r io.Reader) (*media.Result, error) {
	args := m.Called(ctx, name, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Result), args.Error(1)
}

func (m *MockImageUploader) UploadMany(ctx context.Context, files []media.File) media.BatchResult {
	return m.Called(ctx, files).Get(0).(media.BatchResult)
}
