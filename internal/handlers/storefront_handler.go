package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

// StorefrontHandler atiende las rutas públicas
type StorefrontHandler struct {
	catalog  Storefront
	reviews  ReviewModeration
	settings SiteSettings
	logger   *logrus.Entry
}

func NewStorefrontHandler(catalog Storefront, reviews ReviewModeration, settings SiteSettings, log logrus.FieldLogger) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:  catalog,
		reviews:  reviews,
		settings: settings,
		logger:   logger.Component(log, "handlers.storefront"),
	}
}

// BrowseResponse agrega el query string aplicado para que el cliente lo refleje en la URL
type BrowseResponse struct {
	catalog.Page
	Facets  catalog.Facets     `json:"facets"`
	Applied catalog.FilterSpec `json:"applied"`
	Query   string             `json:"query"`
}

// GET /v1/products
func (h *StorefrontHandler) Browse(c *gin.Context) {
	spec, err := catalog.ParseQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	page, pageSize, err := paginationParams(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.catalog.Browse(c.Request.Context(), spec, page, pageSize)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, BrowseResponse{
		Page:    result.Page,
		Facets:  result.Facets,
		Applied: result.Applied,
		Query:   result.Applied.Values().Encode(),
	})
}

// GET /v1/products/search?q=
func (h *StorefrontHandler) Search(c *gin.Context) {
	q := repository.ProductQuery{
		Brand:  c.Query("brand"),
		Refine: catalog.Refinement{Search: c.Query("q")},
	}

	if cat := c.Query("category"); cat != "" {
		q.Category = models.Category(cat)
		if !q.Category.Valid() {
			respondError(c, h.logger, models.NewValidationError("category", "unknown category %q", cat))
			return
		}
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		q.Refine.Tags = tags
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			respondError(c, h.logger, models.NewValidationError("limit", "limit must be a non-negative integer"))
			return
		}
		q.Limit = limit
	}

	products, err := h.catalog.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products, "total": len(products)})
}

// GET /v1/products/:slug
func (h *StorefrontHandler) Detail(c *gin.Context) {
	detail, err := h.catalog.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /v1/home
func (h *StorefrontHandler) Home(c *gin.Context) {
	sections, err := h.catalog.Home(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// GET /v1/reviews
func (h *StorefrontHandler) Reviews(c *gin.Context) {
	reviews, err := h.reviews.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	items := make([]models.PublicReview, 0, len(reviews))
	for i := range reviews {
		items = append(items, reviews[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// POST /v1/reviews
func (h *StorefrontHandler) SubmitReview(c *gin.Context) {
	var in models.ReviewInput
	if !bindJSON(c, &in) {
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      review.ID,
		"status":  review.Status,
		"message": "thank you, your review will appear once approved",
	})
}

// GET /v1/settings
func (h *StorefrontHandler) Settings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings.Public())
}

// paginationParams lee page y pageSize; vacíos usan los valores por defecto
func paginationParams(c *gin.Context) (int, int, error) {
	page, pageSize := 1, catalog.DefaultPageSize
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, models.NewValidationError("page", "page must be a positive integer")
		}
		page = n
	}
	if v := c.Query("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > catalog.MaxPageSize {
			return 0, 0, models.NewValidationError("pageSize", "pageSize must be between 1 and %d", catalog.MaxPageSize)
		}
		pageSize = n
	}
	return page, pageSize, nil
}
