package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

// ProductHandler es el CRUD de productos del back-office
type ProductHandler struct {
	products ProductAdmin
	logger   *logrus.Entry
}

func NewProductHandler(products ProductAdmin, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger.Component(log, "handlers.products"),
	}
}

// ProductListResponse incluye borradores, a diferencia del storefront
type ProductListResponse struct {
	Items    []models.Product `json:"items"`
	Total    int              `json:"total"`
	Capacity int              `json:"capacity"`
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// GET /v1/admin/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	spec, err := catalog.ParseQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	products, err := h.products.List(c.Request.Context(), spec, c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ProductListResponse{Items: products, Total: len(products), Capacity: models.MaxProducts})
}

// GET /v1/admin/products/stats
func (h *ProductHandler) Stats(c *gin.Context) {
	stats, err := h.products.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /v1/admin/products/warnings
func (h *ProductHandler) Warnings(c *gin.Context) {
	warnings, err := h.products.FlagWarnings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"warnings": warnings})
}

// GET /v1/admin/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in models.ProductInput
	if !bindJSON(c, &in) {
		return
	}

	result, err := h.products.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithField("product_id", result.Product.ID).Info("product created")
	c.JSON(http.StatusCreated, result)
}

// PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var in models.ProductInput
	if !bindJSON(c, &in) {
		return
	}

	result, err := h.products.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PATCH /v1/admin/products/:id/publish
func (h *ProductHandler) SetPublished(c *gin.Context) {
	var req PublishRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.products.SetPublished(c.Request.Context(), c.Param("id"), *req.Published)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /v1/admin/products/:id/duplicate
func (h *ProductHandler) DuplicateProduct(c *gin.Context) {
	product, err := h.products.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

// POST /v1/admin/products/bulk-delete
func (h *ProductHandler) BulkDelete(c *gin.Context) {
	var req BulkRequest
	if !bindJSON(c, &req) {
		return
	}
	respondBulk(c, h.products.BulkDelete(c.Request.Context(), req.IDs))
}
