package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/events"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

// ProductService maneja el catálogo desde el admin
type ProductService struct {
	store     ProductStore
	cache     readCache
	publisher events.Publisher
	logger    *logrus.Entry
	now       func() time.Time
}

func NewProductService(store ProductStore, c cache.Cache, publisher events.Publisher, log logrus.FieldLogger) *ProductService {
	entry := logger.Component(log, "services.products")
	return &ProductService{
		store:     store,
		cache:     readCache{cache: c, logger: entry},
		publisher: publisher,
		logger:    entry,
		now:       time.Now,
	}
}

// SaveResult acompaña al producto con avisos que no bloquean el guardado
type SaveResult struct {
	Product  *models.Product `json:"product"`
	Warnings []string        `json:"warnings,omitempty"`
}

// List lista todo el catálogo para el admin, con el mismo motor de filtros que la tienda
func (s *ProductService) List(ctx context.Context, spec catalog.FilterSpec, search string) ([]models.Product, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	products = catalog.Refine(products, catalog.Refinement{Search: search})
	return catalog.Apply(products, spec), nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *ProductService) Stats(ctx context.Context) (models.ProductStats, error) {
	return s.store.Stats(ctx)
}

// Create valida, revisa el tope de 80 productos y guarda
func (s *ProductService) Create(ctx context.Context, in *models.ProductInput) (*SaveResult, error) {
	if err := ValidateProduct(in); err != nil {
		return nil, err
	}
	if err := s.checkCapacity(ctx); err != nil {
		return nil, err
	}

	product := &models.Product{}
	in.Apply(product)

	var err error
	product.Slug, err = s.uniqueSlug(ctx, in.Slug, in.Title, "")
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"product_id": product.ID, "slug": product.Slug}).Info("product created")
	s.afterWrite(ctx, events.ProductCreated, product)
	return &SaveResult{Product: product, Warnings: s.flagWarnings(ctx)}, nil
}

// Update reemplaza los campos editables; último en escribir gana
func (s *ProductService) Update(ctx context.Context, id string, in *models.ProductInput) (*SaveResult, error) {
	if err := ValidateProduct(in); err != nil {
		return nil, err
	}

	product, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(product)
	product.Slug, err = s.uniqueSlug(ctx, in.Slug, in.Title, product.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, product); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, events.ProductUpdated, product)
	return &SaveResult{Product: product, Warnings: s.flagWarnings(ctx)}, nil
}

// SetPublished publica o despublica. Publicar exige los campos obligatorios.
func (s *ProductService) SetPublished(ctx context.Context, id string, published bool) (*models.Product, error) {
	product, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if published {
		in := inputFrom(product)
		in.Published = true
		if err := ValidateProduct(in); err != nil {
			return nil, err
		}
	}

	if err := s.store.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}
	product.Published = published

	s.afterWrite(ctx, events.ProductPublished, product)
	return product, nil
}

// Delete borra definitivamente
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, events.ProductDeleted, &models.Product{ID: id})
	return nil
}

// BulkDelete borra uno por uno; los que fallan no afectan a los demás
func (s *ProductService) BulkDelete(ctx context.Context, ids []string) models.BulkResult {
	var result models.BulkResult
	for _, id := range ids {
		err := s.store.Delete(ctx, id)
		result.Record(id, err)
		if err == nil {
			publish(ctx, s.publisher, s.logger, events.NewEvent(events.ProductDeleted, id, nil))
		}
	}
	if result.Succeeded > 0 {
		s.cache.invalidatePrefix(ctx, cache.PrefixCatalog)
	}

	s.logger.WithFields(logrus.Fields{
		"requested": result.Requested,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	}).Info("bulk delete finished")
	return result
}

// Duplicate copia todo menos ID y fechas. La copia queda sin publicar.
func (s *ProductService) Duplicate(ctx context.Context, id string) (*models.Product, error) {
	original, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCapacity(ctx); err != nil {
		return nil, err
	}

	clone := *original
	clone.ID = ""
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	clone.Published = false
	clone.Title = original.Title + " (Copy)"
	clone.Slug = fmt.Sprintf("%s-copy-%d", original.Key(), s.now().UnixMilli())
	clone.Tags = append([]string(nil), original.Tags...)
	clone.GalleryImages = append([]string(nil), original.GalleryImages...)

	if err := s.store.Create(ctx, &clone); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, events.ProductDuplicated, &clone)
	return &clone, nil
}

// FlagWarnings avisa qué secciones del home tienen más de MaxPerSection productos
func (s *ProductService) FlagWarnings(ctx context.Context) ([]string, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return flagWarnings(products), nil
}

func (s *ProductService) flagWarnings(ctx context.Context) []string {
	warnings, err := s.FlagWarnings(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("could not compute flag warnings")
		return nil
	}
	return warnings
}

func flagWarnings(products []models.Product) []string {
	counts := catalog.FlagCount(products)
	var warnings []string
	for _, f := range catalog.AllFlags {
		if n := counts[f]; n > models.MaxPerSection {
			warnings = append(warnings, fmt.Sprintf(
				"%s has %d products; only %d are shown on the homepage", f.Label(), n, models.MaxPerSection))
		}
	}
	return warnings
}

func (s *ProductService) checkCapacity(ctx context.Context) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n >= models.MaxProducts {
		return models.ErrCapacityReached
	}
	return nil
}

// uniqueSlug normaliza el slug pedido (o lo genera del título) y agrega -2, -3... si ya existe
func (s *ProductService) uniqueSlug(ctx context.Context, requested, title, excludeID string) (string, error) {
	base := slug.Make(requested)
	if base == "" {
		base = slug.Make(title)
	}
	if base == "" {
		return "", models.NewValidationError("slug", "slug could not be generated from title")
	}

	candidate := base
	for i := 2; i <= models.MaxProducts+1; i++ {
		exists, err := s.store.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", models.NewValidationError("slug", "slug %q is already taken", base)
}

func (s *ProductService) afterWrite(ctx context.Context, subject string, p *models.Product) {
	s.cache.invalidatePrefix(ctx, cache.PrefixCatalog)
	publish(ctx, s.publisher, s.logger, events.NewEvent(subject, p.ID, map[string]interface{}{
		"slug":      p.Slug,
		"published": p.Published,
	}))
}

// ValidateProduct valida los campos requeridos del producto
func ValidateProduct(in *models.ProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("title", "title is required")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return models.NewValidationError("brand", "brand is required")
	}
	if strings.TrimSpace(in.Model) == "" {
		return models.NewValidationError("model", "model is required")
	}
	if !in.Category.Valid() {
		return models.NewValidationError("category", "category must be one of Premium, Standard, Basic")
	}
	if !in.Condition.Valid() {
		return models.NewValidationError("condition", "condition must be one of New, Like New, Refurbished, Used")
	}
	if in.Price < 0 {
		return models.NewValidationError("price", "price cannot be negative")
	}
	if in.StockCount < 0 {
		return models.NewValidationError("stockCount", "stockCount cannot be negative")
	}
	if in.Published && strings.TrimSpace(in.FeaturedImage) == "" {
		return models.NewValidationError("featuredImage", "featuredImage is required to publish")
	}
	for _, t := range in.Tags {
		if strings.TrimSpace(t) == "" {
			return models.NewValidationError("tags", "tags cannot be empty")
		}
	}
	return nil
}

func inputFrom(p *models.Product) *models.ProductInput {
	return &models.ProductInput{
		Slug:              p.Slug,
		Title:             p.Title,
		Brand:             p.Brand,
		Model:             p.Model,
		ShortSlogan:       p.ShortSlogan,
		Description:       p.Description,
		Category:          p.Category,
		Condition:         p.Condition,
		Tags:              p.Tags,
		Price:             p.Price,
		StockCount:        p.StockCount,
		IsNewArrival:      p.IsNewArrival,
		IsDeal:            p.IsDeal,
		IsLimitedStock:    p.IsLimitedStock,
		IsTopHighlight:    p.IsTopHighlight,
		IsBottomHighlight: p.IsBottomHighlight,
		FeaturedImage:     p.FeaturedImage,
		GalleryImages:     p.GalleryImages,
		Published:         p.Published,
	}
}
