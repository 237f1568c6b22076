package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"laptop-storefront/internal/models"
)

const reviewsNS = "test.reviews"

func reviewDoc(t *testing.T, name string, rating int, status models.ReviewStatus) bson.D {
	ts := toDateTime(time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC))
	return toD(t, reviewDocument{
		ID:           primitive.NewObjectID(),
		CustomerName: name,
		Rating:       rating,
		Comment:      "Great service",
		Status:       string(status),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
}

func TestReviewRepository_List(t *testing.T) {
	mt := newMockT(t)

	mt.Run("decodes", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)
		mt.AddMockResponses(cursor(reviewsNS,
			reviewDoc(t, "Priya", 5, models.ReviewApproved),
			reviewDoc(t, "Rahul", 3, models.ReviewApproved),
		))

		reviews, err := repo.ListApproved(context.Background(), 10)

		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, models.ReviewApproved, reviews[0].Status)
		assert.Equal(t, 5, reviews[0].Rating)
	})
}

func TestReviewRepository_SetStatus(t *testing.T) {
	mt := newMockT(t)

	mt.Run("applies when still in from state", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)
		mt.AddMockResponses(matched(1))

		err := repo.SetStatus(context.Background(), primitive.NewObjectID().Hex(), models.ReviewPending, models.ReviewApproved)

		assert.NoError(t, err)
	})

	mt.Run("concurrent change is an invalid transition", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)
		mt.AddMockResponses(
			matched(0),
			cursor(reviewsNS, reviewDoc(t, "Priya", 5, models.ReviewRejected)),
		)

		err := repo.SetStatus(context.Background(), primitive.NewObjectID().Hex(), models.ReviewPending, models.ReviewApproved)

		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	})

	mt.Run("missing review", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)
		mt.AddMockResponses(matched(0), cursor(reviewsNS))

		err := repo.SetStatus(context.Background(), primitive.NewObjectID().Hex(), models.ReviewPending, models.ReviewApproved)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestReviewRepository_Writes(t *testing.T) {
	mt := newMockT(t)

	mt.Run("create, feature, reply, delete", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), matched(1), matched(1), deleted(1))
		review := &models.StoreReview{CustomerName: "Anil", Rating: 4, Comment: "ok", Status: models.ReviewPending}

		require.NoError(t, repo.Create(context.Background(), review))
		assert.NotEmpty(t, review.ID)
		assert.NoError(t, repo.SetFeatured(context.Background(), review.ID, true))
		assert.NoError(t, repo.Reply(context.Background(), review.ID, "Thank you!", time.Now()))
		assert.NoError(t, repo.Delete(context.Background(), review.ID))
	})

	mt.Run("update rejects malformed id without a round trip", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)

		err := repo.Update(context.Background(), &models.StoreReview{ID: "nope"})

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestReviewRepository_Stats(t *testing.T) {
	mt := newMockT(t)

	mt.Run("average", func(mt *mtest.T) {
		repo := NewReviewRepository(mt.DB)
		mt.AddMockResponses(cursor(reviewsNS,
			reviewDoc(t, "A", 5, models.ReviewApproved),
			reviewDoc(t, "B", 2, models.ReviewPending),
		))

		stats, err := repo.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3.5, stats.AverageRating)
		assert.Equal(t, 1, stats.ByStatus[models.ReviewPending])
	})
}
