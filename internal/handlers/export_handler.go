package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/export"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

// ExportHandler genera los archivos CSV/XLSX del back-office.
// Respeta los mismos filtros que el listado correspondiente.
type ExportHandler struct {
	products  ProductAdmin
	customers CustomerAdmin
	reviews   ReviewModeration
	logger    *logrus.Entry
	now       func() time.Time
}

func NewExportHandler(products ProductAdmin, customers CustomerAdmin, reviews ReviewModeration, log logrus.FieldLogger) *ExportHandler {
	return &ExportHandler{
		products:  products,
		customers: customers,
		reviews:   reviews,
		logger:    logger.Component(log, "handlers.export"),
		now:       time.Now,
	}
}

// GET /v1/admin/products/export?format=csv|xlsx
func (h *ExportHandler) Products(c *gin.Context) {
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
	h.send(c, "products", export.ProductsTable(products))
}

// GET /v1/admin/customers/export?format=csv|xlsx
func (h *ExportHandler) Customers(c *gin.Context) {
	q, err := customerQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	customers, err := h.customers.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.send(c, "customers", export.CustomersTable(customers, h.now()))
}

// GET /v1/admin/reviews/export?format=csv|xlsx
func (h *ExportHandler) Reviews(c *gin.Context) {
	q, err := reviewQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	reviews, err := h.reviews.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.send(c, "reviews", export.ReviewsTable(reviews))
}

// send arma el archivo completo en memoria para poder responder 500 si falla
func (h *ExportHandler) send(c *gin.Context, entity string, table export.Table) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, models.NewValidationError("format", "%s", err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		respondError(c, h.logger, fmt.Errorf("failed to build %s export: %w", entity, err))
		return
	}

	filename := export.Filename(entity, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())

	h.logger.WithFields(logrus.Fields{
		"entity": entity,
		"format": string(format),
		"rows":   len(table.Rows),
	}).Info("export generated")
}
