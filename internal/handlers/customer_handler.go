package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

type CustomerHandler struct {
	customers CustomerAdmin
	logger    *logrus.Entry
}

func NewCustomerHandler(customers CustomerAdmin, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger.Component(log, "handlers.customers"),
	}
}

type CustomerStatusRequest struct {
	Status models.CustomerStatus `json:"status" binding:"required"`
}

// GET /v1/admin/customers?status=&warrantyStatus=&q=
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"items": customers, "total": len(customers)})
}

// GET /v1/admin/customers/stats
func (h *CustomerHandler) Stats(c *gin.Context) {
	stats, err := h.customers.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /v1/admin/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// POST /v1/admin/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var in models.CustomerInput
	if !bindJSON(c, &in) {
		return
	}

	customer, err := h.customers.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// PUT /v1/admin/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var in models.CustomerInput
	if !bindJSON(c, &in) {
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PATCH /v1/admin/customers/:id/status
func (h *CustomerHandler) SetStatus(c *gin.Context) {
	var req CustomerStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.customers.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "status updated"})
}

// POST /v1/admin/customers/:id/reminder
func (h *CustomerHandler) SendReminder(c *gin.Context) {
	h.markContact(c, h.customers.SendReminder, "lastReminderDate")
}

// POST /v1/admin/customers/:id/review-request
func (h *CustomerHandler) RequestReview(c *gin.Context) {
	h.markContact(c, h.customers.RequestReview, "reviewRequestDate")
}

// markContact registra un contacto manual; el mensaje en sí lo envía el admin fuera del sistema
func (h *CustomerHandler) markContact(c *gin.Context, mark func(ctx context.Context, id string) (time.Time, error), field string) {
	at, err := mark(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{field: at})
}

// DELETE /v1/admin/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "customer deleted"})
}

// POST /v1/admin/customers/bulk-delete
func (h *CustomerHandler) BulkDelete(c *gin.Context) {
	var req BulkRequest
	if !bindJSON(c, &req) {
		return
	}
	respondBulk(c, h.customers.BulkDelete(c.Request.Context(), req.IDs))
}

func customerQuery(c *gin.Context) (repository.CustomerQuery, error) {
	q := repository.CustomerQuery{Search: c.Query("q")}

	if v := c.Query("status"); v != "" {
		q.Status = models.CustomerStatus(v)
		if !q.Status.Valid() {
			return q, models.NewValidationError("status", "unknown customer status %q", v)
		}
	}
	if v := c.Query("warrantyStatus"); v != "" {
		q.WarrantyStatus = models.WarrantyStatus(v)
		switch q.WarrantyStatus {
		case models.WarrantyActive, models.WarrantyExpiringSoon, models.WarrantyExpired:
		default:
			return q, models.NewValidationError("warrantyStatus", "unknown warranty status %q", v)
		}
	}
	return q, nil
}
