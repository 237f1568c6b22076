package handlers

import (
	"context"
	"io"
	"time"

	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/media"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
	"laptop-storefront/internal/services"
)

// Storefront son las lecturas públicas del catálogo
type Storefront interface {
	Browse(ctx context.Context, spec catalog.FilterSpec, page, pageSize int) (*services.BrowseResult, error)
	Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, error)
	Detail(ctx context.Context, key string) (*services.ProductDetail, error)
	Home(ctx context.Context) ([]services.HomeSection, error)
}

type ProductAdmin interface {
	List(ctx context.Context, spec catalog.FilterSpec, search string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, in *models.ProductInput) (*services.SaveResult, error)
	Update(ctx context.Context, id string, in *models.ProductInput) (*services.SaveResult, error)
	SetPublished(ctx context.Context, id string, published bool) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) models.BulkResult
	Duplicate(ctx context.Context, id string) (*models.Product, error)
	FlagWarnings(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (models.ProductStats, error)
}

type CustomerAdmin interface {
	List(ctx context.Context, q repository.CustomerQuery) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, in *models.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id string, in *models.CustomerInput) (*models.Customer, error)
	SetStatus(ctx context.Context, id string, status models.CustomerStatus) error
	SendReminder(ctx context.Context, id string) (time.Time, error)
	RequestReview(ctx context.Context, id string) (time.Time, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) models.BulkResult
	Stats(ctx context.Context) (models.CustomerStats, error)
}

type ReviewModeration interface {
	List(ctx context.Context, q repository.ReviewQuery) ([]models.StoreReview, error)
	ListPublic(ctx context.Context) ([]models.StoreReview, error)
	Get(ctx context.Context, id string) (*models.StoreReview, error)
	Submit(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error)
	Create(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error)
	Update(ctx context.Context, id string, in *models.ReviewInput) (*models.StoreReview, error)
	SetStatus(ctx context.Context, id string, to models.ReviewStatus) (*models.StoreReview, error)
	BulkStatus(ctx context.Context, ids []string, to models.ReviewStatus) (models.BulkResult, error)
	SetFeatured(ctx context.Context, id string, featured bool) error
	Reply(ctx context.Context, id, reply string) (time.Time, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) models.BulkResult
	Stats(ctx context.Context) (models.ReviewStats, error)
}

type SiteSettings interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, update *models.SettingsUpdate) (*models.SiteSettings, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (*media.Result, error)
	UploadMany(ctx context.Context, files []media.File) media.BatchResult
}

var (
	_ Storefront       = (*services.CatalogService)(nil)
	_ ProductAdmin     = (*services.ProductService)(nil)
	_ CustomerAdmin    = (*services.CustomerService)(nil)
	_ ReviewModeration = (*services.ReviewService)(nil)
	_ SiteSettings     = (*services.SettingsService)(nil)
	_ ImageUploader    = (*media.Uploader)(nil)
)
