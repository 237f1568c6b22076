package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

func newReviewService(store *MockReviewStore, settings *SettingsService) (*ReviewService, *recordingPublisher) {
	pub := &recordingPublisher{}
	s := NewReviewService(store, settings, nil, pub, logger.Discard())
	s.now = func() time.Time { return fixedNow }
	return s, pub
}

func reviewInput() *models.ReviewInput {
	return &models.ReviewInput{CustomerName: "Ravi", Rating: 5, Comment: "Great laptop, works like new"}
}

func TestReviewService_Submit_StartsPending(t *testing.T) {
	ctx := context.Background()
	store := new(MockReviewStore)
	s, pub := newReviewService(store, nil)

	store.On("Create", ctx, mock.MatchedBy(func(r *models.StoreReview) bool {
		return r.Status == models.ReviewPending && !r.Featured
	})).Return(nil)

	review, err := s.Submit(ctx, reviewInput())

	require.NoError(t, err)
	assert.Equal(t, "rev-1", review.ID)
	assert.Equal(t, []string{"review.submitted"}, pub.subjects())
}

func TestReviewService_Submit_Disabled(t *testing.T) {
	ctx := context.Background()
	store := new(MockReviewStore)
	settingsStore := new(MockSettingsStore)

	settings := models.DefaultSettings()
	settings.Business.EnableReviews = false
	settingsStore.On("Get", ctx).Return(&settings, nil)

	s, _ := newReviewService(store, NewSettingsService(settingsStore, nil, logger.Discard()))

	_, err := s.Submit(ctx, reviewInput())

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Submit_Validation(t *testing.T) {
	store := new(MockReviewStore)
	s, _ := newReviewService(store, nil)

	in := reviewInput()
	in.Rating = 6
	_, err := s.Submit(context.Background(), in)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
}

func TestReviewService_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		current models.ReviewStatus
		to      models.ReviewStatus
		wantErr error
		stored  bool
	}{
		{"approve pending", models.ReviewPending, models.ReviewApproved, nil, true},
		{"reject pending", models.ReviewPending, models.ReviewRejected, nil, true},
		{"approve approved is a no-op", models.ReviewApproved, models.ReviewApproved, nil, false},
		{"approve rejected", models.ReviewRejected, models.ReviewApproved, models.ErrInvalidTransition, false},
		{"back to pending", models.ReviewApproved, models.ReviewPending, models.ErrInvalidTransition, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := new(MockReviewStore)
			s, pub := newReviewService(store, nil)

			store.On("Get", ctx, "r1").Return(&models.StoreReview{ID: "r1", Status: tt.current}, nil)
			store.On("SetStatus", ctx, "r1", tt.current, tt.to).Return(nil)

			review, err := s.SetStatus(ctx, "r1", tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.to, review.Status)
			}
			if tt.stored {
				store.AssertCalled(t, "SetStatus", ctx, "r1", tt.current, tt.to)
				assert.Equal(t, []string{"review.status_changed"}, pub.subjects())
			} else {
				store.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestReviewService_SetStatus_ConcurrentChange(t *testing.T) {
	ctx := context.Background()
	store := new(MockReviewStore)
	s, _ := newReviewService(store, nil)

	store.On("Get", ctx, "r1").Return(&models.StoreReview{ID: "r1", Status: models.ReviewPending}, nil)
	store.On("SetStatus", ctx, "r1", models.ReviewPending, models.ReviewApproved).Return(models.ErrInvalidTransition)

	_, err := s.SetStatus(ctx, "r1", models.ReviewApproved)

	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestReviewService_BulkStatus(t *testing.T) {
	ctx := context.Background()
	store := new(MockReviewStore)
	s, _ := newReviewService(store, nil)

	store.On("Get", ctx, "a").Return(&models.StoreReview{ID: "a", Status: models.ReviewPending}, nil)
	store.On("Get", ctx, "b").Return(&models.StoreReview{ID: "b", Status: models.ReviewRejected}, nil)
	store.On("Get", ctx, "c").Return(nil, models.ErrNotFound)
	store.On("SetStatus", ctx, "a", models.ReviewPending, models.ReviewApproved).Return(nil)

	result, err := s.BulkStatus(ctx, []string{"a", "b", "c"}, models.ReviewApproved)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
}

func TestReviewService_Reply(t *testing.T) {
	ctx := context.Background()
	store := new(MockReviewStore)
	s, _ := newReviewService(store, nil)

	store.On("Reply", ctx, "r1", "Thank you!", fixedNow).Return(nil)

	at, err := s.Reply(ctx, "r1", "  Thank you!  ")
	require.NoError(t, err)
	assert.Equal(t, fixedNow, at)

	_, err = s.Reply(ctx, "r1", "   ")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestReviewService_ListPublic_Cached(t *testing.T) {
	ctx := context.Background()
	store := new(MockReviewStore)
	c := cache.NewMemoryCache(time.Minute, 0)
	defer c.Close()
	s := NewReviewService(store, nil, c, nil, logger.Discard())

	store.On("ListApproved", ctx, PublicReviewsLimit).
		Return([]models.StoreReview{{ID: "r1", Status: models.ReviewApproved}}, nil).Once()
	store.On("SetFeatured", ctx, "r1", true).Return(nil)

	first, err := s.ListPublic(ctx)
	require.NoError(t, err)
	second, err := s.ListPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	store.AssertNumberOfCalls(t, "ListApproved", 1)

	require.NoError(t, s.SetFeatured(ctx, "r1", true))
	var cached []models.StoreReview
	found, _ := c.Get(ctx, cache.KeyReviewsFeed, &cached)
	assert.False(t, found)
}
