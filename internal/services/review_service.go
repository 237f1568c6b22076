package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/events"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/repository"
)

// PublicReviewsLimit es el máximo de reseñas aprobadas que muestra la tienda
const PublicReviewsLimit = 50

// ReviewService maneja la cola de moderación
type ReviewService struct {
	store     ReviewStore
	settings  *SettingsService
	cache     readCache
	publisher events.Publisher
	logger    *logrus.Entry
	now       func() time.Time
}

func NewReviewService(store ReviewStore, settings *SettingsService, c cache.Cache, publisher events.Publisher, log logrus.FieldLogger) *ReviewService {
	entry := logger.Component(log, "services.reviews")
	return &ReviewService{
		store:     store,
		settings:  settings,
		cache:     readCache{cache: c, logger: entry},
		publisher: publisher,
		logger:    entry,
		now:       time.Now,
	}
}

func (s *ReviewService) List(ctx context.Context, q repository.ReviewQuery) ([]models.StoreReview, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, models.NewValidationError("status", "unknown review status %q", q.Status)
	}
	return s.store.List(ctx, q)
}

// ListPublic retorna solo las aprobadas, destacadas primero
func (s *ReviewService) ListPublic(ctx context.Context) ([]models.StoreReview, error) {
	var reviews []models.StoreReview
	if s.cache.get(ctx, cache.KeyReviewsFeed, &reviews) {
		return reviews, nil
	}

	reviews, err := s.store.ListApproved(ctx, PublicReviewsLimit)
	if err != nil {
		return nil, err
	}
	s.cache.set(ctx, cache.KeyReviewsFeed, reviews)
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*models.StoreReview, error) {
	return s.store.Get(ctx, id)
}

func (s *ReviewService) Stats(ctx context.Context) (models.ReviewStats, error) {
	return s.store.Stats(ctx)
}

// Submit recibe una reseña del formulario público. Siempre entra como Pending.
func (s *ReviewService) Submit(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error) {
	if s.settings != nil {
		settings, err := s.settings.Get(ctx)
		if err == nil && !settings.Business.EnableReviews {
			return nil, models.NewValidationError("reviews", "reviews are currently disabled")
		}
	}

	review, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.publisher, s.logger, events.NewEvent(events.ReviewSubmitted, review.ID, map[string]interface{}{
		"rating": review.Rating,
	}))
	return review, nil
}

// Create es la carga manual desde el admin; también queda Pending hasta moderarla
func (s *ReviewService) Create(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error) {
	return s.create(ctx, in)
}

func (s *ReviewService) create(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error) {
	if err := ValidateReview(in); err != nil {
		return nil, err
	}

	review := &models.StoreReview{Status: models.ReviewPending}
	applyReview(review, in)

	if err := s.store.Create(ctx, review); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"review_id": review.ID, "rating": review.Rating}).Info("review received")
	return review, nil
}

// Update edita el contenido sin tocar la moderación
func (s *ReviewService) Update(ctx context.Context, id string, in *models.ReviewInput) (*models.StoreReview, error) {
	if err := ValidateReview(in); err != nil {
		return nil, err
	}

	review, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyReview(review, in)

	if err := s.store.Update(ctx, review); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx, review)
	return review, nil
}

// SetStatus aprueba o rechaza. Solo una reseña Pending puede cambiar; repetir el estado no hace nada.
func (s *ReviewService) SetStatus(ctx context.Context, id string, to models.ReviewStatus) (*models.StoreReview, error) {
	if !to.Valid() {
		return nil, models.NewValidationError("status", "unknown review status %q", to)
	}

	review, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status == to {
		return review, nil
	}
	if !review.Status.CanTransitionTo(to) {
		return nil, models.ErrInvalidTransition
	}

	from := review.Status
	if err := s.store.SetStatus(ctx, id, from, to); err != nil {
		return nil, err
	}
	review.Status = to

	s.cache.invalidate(ctx, cache.KeyReviewsFeed)
	publish(ctx, s.publisher, s.logger, events.NewEvent(events.ReviewStatusChanged, id, map[string]interface{}{
		"from": string(from),
		"to":   string(to),
	}))
	s.logger.WithFields(logrus.Fields{"review_id": id, "from": from, "to": to}).Info("review moderated")
	return review, nil
}

// BulkStatus aplica SetStatus a cada id; los fallos no revierten los éxitos
func (s *ReviewService) BulkStatus(ctx context.Context, ids []string, to models.ReviewStatus) (models.BulkResult, error) {
	if !to.Valid() {
		return models.BulkResult{}, models.NewValidationError("status", "unknown review status %q", to)
	}

	var result models.BulkResult
	for _, id := range ids {
		_, err := s.SetStatus(ctx, id, to)
		result.Record(id, err)
	}
	return result, nil
}

func (s *ReviewService) SetFeatured(ctx context.Context, id string, featured bool) error {
	if err := s.store.SetFeatured(ctx, id, featured); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cache.KeyReviewsFeed)
	return nil
}

// Reply guarda la respuesta del admin
func (s *ReviewService) Reply(ctx context.Context, id, reply string) (time.Time, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return time.Time{}, models.NewValidationError("reply", "reply cannot be empty")
	}
	if len(reply) > 2000 {
		return time.Time{}, models.NewValidationError("reply", "reply is too long")
	}

	at := s.now().UTC()
	if err := s.store.Reply(ctx, id, reply, at); err != nil {
		return time.Time{}, err
	}
	s.cache.invalidate(ctx, cache.KeyReviewsFeed)
	return at, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(ctx, cache.KeyReviewsFeed)
	return nil
}

func (s *ReviewService) BulkDelete(ctx context.Context, ids []string) models.BulkResult {
	var result models.BulkResult
	for _, id := range ids {
		result.Record(id, s.store.Delete(ctx, id))
	}
	if result.Succeeded > 0 {
		s.cache.invalidate(ctx, cache.KeyReviewsFeed)
	}
	return result
}

func (s *ReviewService) invalidateFeed(ctx context.Context, r *models.StoreReview) {
	if r.Status == models.ReviewApproved {
		s.cache.invalidate(ctx, cache.KeyReviewsFeed)
	}
}

// ValidateReview valida la reseña sin depender del binding de gin
func ValidateReview(in *models.ReviewInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return models.NewValidationError("customerName", "customerName is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return models.NewValidationError("rating", "rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return models.NewValidationError("comment", "comment is required")
	}
	return nil
}

func applyReview(r *models.StoreReview, in *models.ReviewInput) {
	r.CustomerName = strings.TrimSpace(in.CustomerName)
	r.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	r.Rating = in.Rating
	r.Title = in.Title
	r.Comment = strings.TrimSpace(in.Comment)
	r.ProductID = in.ProductID
	r.ProductName = in.ProductName
}
