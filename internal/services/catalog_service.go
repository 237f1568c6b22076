package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

// RelatedLimit es la cantidad de productos relacionados en el detalle
const RelatedLimit = 4

// CatalogService atiende las lecturas de la tienda pública
type CatalogService struct {
	products ProductStore
	settings *SettingsService
	cache    readCache
	logger   *logrus.Entry
}

func NewCatalogService(products ProductStore, settings *SettingsService, c cache.Cache, log logrus.FieldLogger) *CatalogService {
	entry := logger.Component(log, "services.catalog")
	return &CatalogService{
		products: products,
		settings: settings,
		cache:    readCache{cache: c, logger: entry},
		logger:   entry,
	}
}

// BrowseResult es la página pedida más las facetas del catálogo completo
type BrowseResult struct {
	catalog.Page
	Facets  catalog.Facets     `json:"facets"`
	Applied catalog.FilterSpec `json:"applied"`
}

// Browse filtra y ordena el catálogo publicado en memoria
func (s *CatalogService) Browse(ctx context.Context, spec catalog.FilterSpec, page, pageSize int) (*BrowseResult, error) {
	published, err := s.published(ctx)
	if err != nil {
		return nil, err
	}

	if spec.Price != nil {
		normalized := spec.Price.Normalize()
		spec.Price = &normalized
	}

	return &BrowseResult{
		Page:    catalog.Paginate(catalog.Apply(published, spec), page, pageSize),
		Facets:  catalog.BuildFacets(published),
		Applied: spec,
	}, nil
}

// Search busca en dos fases: igualdades en Mongo y texto en memoria
func (s *CatalogService) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, error) {
	q.Refine.Search = strings.TrimSpace(q.Refine.Search)
	return s.products.ListPublished(ctx, q)
}

// ProductDetail es un producto con sus relacionados
type ProductDetail struct {
	Product *models.Product  `json:"product"`
	Related []models.Product `json:"related"`
}

// Detail busca por slug (o id). Un borrador no existe para la tienda.
func (s *CatalogService) Detail(ctx context.Context, key string) (*ProductDetail, error) {
	product, err := s.products.GetBySlug(ctx, key)
	if err != nil {
		return nil, err
	}
	if !product.Published {
		return nil, models.ErrNotFound
	}

	sameCategory, err := s.products.ListPublished(ctx, repository.ProductQuery{
		Category: product.Category,
		Limit:    RelatedLimit + 1,
	})
	if err != nil {
		// sin relacionados el detalle sigue sirviendo
		s.logger.WithError(err).WithField("product_id", product.ID).Warn("failed to load related products")
		sameCategory = nil
	}

	related := make([]models.Product, 0, RelatedLimit)
	for _, p := range sameCategory {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == RelatedLimit {
			break
		}
	}

	return &ProductDetail{Product: product, Related: related}, nil
}

// HomeSection es una sección del home controlada por un flag
type HomeSection struct {
	Key      string           `json:"key"`
	Title    string           `json:"title"`
	Products []models.Product `json:"products"`
}

// Home arma las cinco secciones del home, cada una limitada por la configuración
func (s *CatalogService) Home(ctx context.Context) ([]HomeSection, error) {
	var sections []HomeSection
	if s.cache.get(ctx, cache.KeyHome, &sections) {
		return sections, nil
	}

	limits := models.DefaultSettings().Homepage
	if s.settings != nil {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("using default homepage limits")
		} else {
			limits = settings.Homepage
		}
	}

	sections = make([]HomeSection, 0, len(catalog.AllFlags))
	for _, f := range catalog.AllFlags {
		products, err := s.products.ListPublished(ctx, repository.ProductQuery{
			Flags: []catalog.Flag{f},
			Limit: SectionLimit(limits, f),
		})
		if err != nil {
			return nil, err
		}
		sections = append(sections, HomeSection{Key: f.Key(), Title: f.Label(), Products: products})
	}

	s.cache.set(ctx, cache.KeyHome, sections)
	return sections, nil
}

// SectionLimit retorna el límite de la sección, acotado a 1..MaxPerSection
func SectionLimit(h models.Homepage, f catalog.Flag) int {
	var n int
	switch f {
	case catalog.FlagNewArrival:
		n = h.NewArrivalsLimit
	case catalog.FlagDeal:
		n = h.DealsLimit
	case catalog.FlagLimitedStock:
		n = h.LimitedStockLimit
	case catalog.FlagTopHighlight:
		n = h.TopHighlightsLimit
	case catalog.FlagBottomHighlight:
		n = h.BottomHighlightsLimit
	}
	if n < 1 || n > models.MaxPerSection {
		return models.MaxPerSection
	}
	return n
}

// published retorna todos los publicados, desde el caché si está
func (s *CatalogService) published(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if s.cache.get(ctx, cache.KeyPublished, &products) {
		return products, nil
	}

	products, err := s.products.ListPublished(ctx, repository.ProductQuery{})
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, cache.KeyPublished, products)
	return products, nil
}
