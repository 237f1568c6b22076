package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

// ReviewHandler es la cola de moderación del admin
type ReviewHandler struct {
	reviews ReviewModeration
	logger  *logrus.Entry
}

func NewReviewHandler(reviews ReviewModeration, log logrus.FieldLogger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger.Component(log, "handlers.reviews"),
	}
}

type ReviewStatusRequest struct {
	Status models.ReviewStatus `json:"status" binding:"required"`
}

type FeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// GET /v1/admin/reviews?status=&featured=&rating=
func (h *ReviewHandler) ListReviews(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"items": reviews, "total": len(reviews)})
}

// GET /v1/admin/reviews/stats
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.reviews.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /v1/admin/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// POST /v1/admin/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var in models.ReviewInput
	if !bindJSON(c, &in) {
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// PUT /v1/admin/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var in models.ReviewInput
	if !bindJSON(c, &in) {
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// PATCH /v1/admin/reviews/:id/status
func (h *ReviewHandler) SetStatus(c *gin.Context) {
	var req ReviewStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.reviews.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// POST /v1/admin/reviews/bulk-status
func (h *ReviewHandler) BulkStatus(c *gin.Context) {
	var req BulkStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reviews.BulkStatus(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondBulk(c, result)
}

// PATCH /v1/admin/reviews/:id/featured
func (h *ReviewHandler) SetFeatured(c *gin.Context) {
	var req FeaturedRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.reviews.SetFeatured(c.Request.Context(), c.Param("id"), *req.Featured); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured": *req.Featured})
}

// POST /v1/admin/reviews/:id/reply
func (h *ReviewHandler) Reply(c *gin.Context) {
	var req ReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	at, err := h.reviews.Reply(c.Request.Context(), c.Param("id"), req.Reply)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adminReplyDate": at})
}

// DELETE /v1/admin/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "review deleted"})
}

// POST /v1/admin/reviews/bulk-delete
func (h *ReviewHandler) BulkDelete(c *gin.Context) {
	var req BulkRequest
	if !bindJSON(c, &req) {
		return
	}
	respondBulk(c, h.reviews.BulkDelete(c.Request.Context(), req.IDs))
}

func reviewQuery(c *gin.Context) (repository.ReviewQuery, error) {
	q := repository.ReviewQuery{Status: models.ReviewStatus(c.Query("status"))}

	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return q, models.NewValidationError("featured", "featured must be true or false")
		}
		q.Featured = &featured
	}
	if v := c.Query("rating"); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil || rating < 1 || rating > 5 {
			return q, models.NewValidationError("rating", "rating must be between 1 and 5")
		}
		q.Rating = rating
	}
	return q, nil
}
