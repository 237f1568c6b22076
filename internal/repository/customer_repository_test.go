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

const customersNS = "test.customers"

var clockNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func customerDoc(t *testing.T, name string, end time.Time, stored string) bson.D {
	return toD(t, bson.M{
		"_id":                primitive.NewObjectID(),
		"name":               name,
		"email":              "buyer@example.in",
		"productName":        "Dell Inspiron 15",
		"purchaseDate":       toDateTime(end.AddDate(0, 0, -15)),
		"warrantyPeriodDays": 15,
		"warrantyEndDate":    toDateTime(end),
		"status":             string(models.CustomerActive),
		// estado viejo que nunca debe leerse
		"warrantyStatus": stored,
		"createdAt":      toDateTime(clockNow),
		"updatedAt":      toDateTime(clockNow),
	})
}

func fixedCustomerRepo(mt *mtest.T) *CustomerRepository {
	repo := NewCustomerRepository(mt.DB)
	repo.clock = func() time.Time { return clockNow }
	return repo
}

func TestCustomerRepository_ListRecomputesWarranty(t *testing.T) {
	mt := newMockT(t)

	mt.Run("derived status ignores stored value", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		mt.AddMockResponses(cursor(customersNS,
			customerDoc(t, "Asha", clockNow.AddDate(0, 0, -1), "Active"),
			customerDoc(t, "Ravi", clockNow.AddDate(0, 0, 25), "Expired"),
			customerDoc(t, "Meera", clockNow.AddDate(0, 3, 0), "Expired"),
		))

		customers, err := repo.List(context.Background(), CustomerQuery{})

		require.NoError(t, err)
		require.Len(t, customers, 3)
		assert.Equal(t, models.WarrantyExpired, customers[0].WarrantyStatus)
		assert.Equal(t, models.WarrantyExpiringSoon, customers[1].WarrantyStatus)
		assert.Equal(t, models.WarrantyActive, customers[2].WarrantyStatus)
	})

	mt.Run("filters by derived status and search in memory", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		mt.AddMockResponses(cursor(customersNS,
			customerDoc(t, "Asha", clockNow.AddDate(0, 0, -1), ""),
			customerDoc(t, "Ravi", clockNow.AddDate(0, 0, -5), ""),
			customerDoc(t, "Meera", clockNow.AddDate(0, 3, 0), ""),
		))

		customers, err := repo.List(context.Background(), CustomerQuery{
			WarrantyStatus: models.WarrantyExpired,
			Search:         "RAVI",
		})

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Ravi", customers[0].Name)
	})
}

func TestCustomerRepository_Get(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		end := clockNow.AddDate(0, 0, 10)
		mt.AddMockResponses(cursor(customersNS, customerDoc(t, "Kiran", end, "")))

		c, err := repo.Get(context.Background(), primitive.NewObjectID().Hex())

		require.NoError(t, err)
		assert.True(t, end.Equal(c.WarrantyEndDate))
		assert.Equal(t, models.WarrantyExpiringSoon, c.WarrantyStatus)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		mt.AddMockResponses(cursor(customersNS))

		_, err := repo.Get(context.Background(), primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestCustomerRepository_Writes(t *testing.T) {
	mt := newMockT(t)

	mt.Run("create", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		c := &models.Customer{Name: "Neha", WarrantyEndDate: clockNow.AddDate(1, 0, 0)}

		require.NoError(t, repo.Create(context.Background(), c))

		assert.NotEmpty(t, c.ID)
		assert.Equal(t, models.WarrantyActive, c.WarrantyStatus)
	})

	mt.Run("timestamps only", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		mt.AddMockResponses(matched(1), matched(1), matched(0))
		id := primitive.NewObjectID().Hex()

		assert.NoError(t, repo.MarkReminderSent(context.Background(), id, clockNow))
		assert.NoError(t, repo.MarkReviewRequested(context.Background(), id, clockNow))
		assert.ErrorIs(t, repo.SetStatus(context.Background(), id, models.CustomerCompleted), models.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := fixedCustomerRepo(mt)
		mt.AddMockResponses(deleted(1))

		assert.NoError(t, repo.Delete(context.Background(), primitive.NewObjectID().Hex()))
		assert.ErrorIs(t, repo.Delete(context.Background(), "bad"), models.ErrNotFound)
	})
}

func TestCustomerDocumentRoundTrip(t *testing.T) {
	purchase := time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC)
	reminded := purchase.AddDate(0, 0, 10)
	in := models.Customer{
		ID:                 primitive.NewObjectID().Hex(),
		Name:               "Arjun",
		PurchaseDate:       purchase,
		WarrantyPeriodDays: 15,
		WarrantyEndDate:    purchase.AddDate(0, 0, 15),
		Status:             models.CustomerActive,
		LastReminderDate:   &reminded,
		CreatedAt:          purchase,
		UpdatedAt:          purchase,
	}

	doc := newCustomerDocument(&in)
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var back customerDocument
	require.NoError(t, bson.Unmarshal(raw, &back))
	out := back.toModel()

	assert.Equal(t, in.ID, out.ID)
	assert.True(t, in.PurchaseDate.Equal(out.PurchaseDate))
	assert.True(t, in.WarrantyEndDate.Equal(out.WarrantyEndDate))
	assert.True(t, in.LastReminderDate.Equal(*out.LastReminderDate))
	assert.Nil(t, out.ReviewRequestDate)
}
