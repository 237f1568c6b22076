package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"laptop-storefront/internal/cache"
	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
)

func validInput() *models.ProductInput {
	return &models.ProductInput{
		Title:         "Dell XPS 13",
		Brand:         "Dell",
		Model:         "9310",
		Category:      models.CategoryPremium,
		Condition:     models.ConditionLikeNew,
		Tags:          []string{"ultrabook"},
		Price:         72000,
		StockCount:    2,
		FeaturedImage: "https://cdn.example.com/xps.jpg",
		Published:     true,
	}
}

func newProductService(store *MockProductStore) (*ProductService, *recordingPublisher, *cache.MemoryCache) {
	pub := &recordingPublisher{}
	c := cache.NewMemoryCache(time.Minute, 0)
	s := NewProductService(store, c, pub, logger.Discard())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, pub, c
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, pub, c := newProductService(store)
	defer c.Close()

	require.NoError(t, c.Set(ctx, cache.KeyPublished, []models.Product{}, time.Minute))

	store.On("Count", ctx).Return(int64(3), nil)
	store.On("SlugExists", ctx, "dell-xps-13", "").Return(false, nil)
	store.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Slug == "dell-xps-13" && p.Title == "Dell XPS 13"
	})).Return(nil)
	store.On("List", ctx).Return([]models.Product{}, nil)

	result, err := s.Create(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "new-id", result.Product.ID)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"product.created"}, pub.subjects())

	var cached []models.Product
	found, _ := c.Get(ctx, cache.KeyPublished, &cached)
	assert.False(t, found, "catalog cache should be invalidated")
	store.AssertExpectations(t)
}

func TestProductService_Create_CapacityReached(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, pub, c := newProductService(store)
	defer c.Close()

	store.On("Count", ctx).Return(int64(models.MaxProducts), nil)

	result, err := s.Create(ctx, validInput())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrCapacityReached)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, pub.events)
}

func TestProductService_Create_UniqueSlug(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	store.On("Count", ctx).Return(int64(10), nil)
	store.On("SlugExists", ctx, "dell-xps-13", "").Return(true, nil)
	store.On("SlugExists", ctx, "dell-xps-13-2", "").Return(true, nil)
	store.On("SlugExists", ctx, "dell-xps-13-3", "").Return(false, nil)
	store.On("Create", ctx, mock.Anything).Return(nil)
	store.On("List", ctx).Return([]models.Product{}, nil)

	result, err := s.Create(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "dell-xps-13-3", result.Product.Slug)
}

func TestProductService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *models.ProductInput)
		field  string
	}{
		{"missing title", func(in *models.ProductInput) { in.Title = " " }, "title"},
		{"missing brand", func(in *models.ProductInput) { in.Brand = "" }, "brand"},
		{"missing model", func(in *models.ProductInput) { in.Model = "" }, "model"},
		{"unknown category", func(in *models.ProductInput) { in.Category = "Gaming" }, "category"},
		{"unknown condition", func(in *models.ProductInput) { in.Condition = "Broken" }, "condition"},
		{"negative price", func(in *models.ProductInput) { in.Price = -1 }, "price"},
		{"negative stock", func(in *models.ProductInput) { in.StockCount = -1 }, "stockCount"},
		{"published without image", func(in *models.ProductInput) { in.FeaturedImage = "" }, "featuredImage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockProductStore)
			s, _, c := newProductService(store)
			defer c.Close()

			in := validInput()
			tt.mutate(in)
			_, err := s.Create(context.Background(), in)

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_Create_DraftWithoutImage(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	store.On("Count", ctx).Return(int64(0), nil)
	store.On("SlugExists", ctx, "dell-xps-13", "").Return(false, nil)
	store.On("Create", ctx, mock.Anything).Return(nil)
	store.On("List", ctx).Return([]models.Product{}, nil)

	in := validInput()
	in.Published = false
	in.FeaturedImage = ""
	_, err := s.Create(ctx, in)

	assert.NoError(t, err)
}

func TestProductService_Create_FlagWarnings(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	deals := make([]models.Product, models.MaxPerSection+1)
	for i := range deals {
		deals[i].IsDeal = true
	}

	store.On("Count", ctx).Return(int64(11), nil)
	store.On("SlugExists", ctx, mock.Anything, "").Return(false, nil)
	store.On("Create", ctx, mock.Anything).Return(nil)
	store.On("List", ctx).Return(deals, nil)

	result, err := s.Create(ctx, validInput())

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "Deals has 11 products"))
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, pub, c := newProductService(store)
	defer c.Close()

	existing := &models.Product{ID: "p1", Slug: "old", Title: "Old"}
	store.On("Get", ctx, "p1").Return(existing, nil)
	store.On("SlugExists", ctx, "custom-slug", "p1").Return(false, nil)
	store.On("Update", ctx, existing).Return(nil)
	store.On("List", ctx).Return([]models.Product{}, nil)

	in := validInput()
	in.Slug = "Custom Slug"
	result, err := s.Update(ctx, "p1", in)

	require.NoError(t, err)
	assert.Equal(t, "custom-slug", result.Product.Slug)
	assert.Equal(t, "Dell XPS 13", result.Product.Title)
	assert.Equal(t, []string{"product.updated"}, pub.subjects())
}

func TestProductService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	store.On("Get", ctx, "missing").Return(nil, models.ErrNotFound)

	_, err := s.Update(ctx, "missing", validInput())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductService_Duplicate(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, pub, c := newProductService(store)
	defer c.Close()

	original := &models.Product{
		ID:        "p1",
		Slug:      "dell-xps-13",
		Title:     "Dell XPS 13",
		Tags:      []string{"ultrabook"},
		Published: true,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	store.On("Get", ctx, "p1").Return(original, nil)
	store.On("Count", ctx).Return(int64(5), nil)
	store.On("Create", ctx, mock.Anything).Return(nil)

	clone, err := s.Duplicate(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, "Dell XPS 13 (Copy)", clone.Title)
	assert.Equal(t, "dell-xps-13-copy-1700000000000", clone.Slug)
	assert.False(t, clone.Published)
	assert.Equal(t, "new-id", clone.ID)
	assert.True(t, original.Published, "original must not change")

	clone.Tags[0] = "changed"
	assert.Equal(t, "ultrabook", original.Tags[0])
	assert.Equal(t, []string{"product.duplicated"}, pub.subjects())
}

func TestProductService_Duplicate_CapacityReached(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	store.On("Get", ctx, "p1").Return(&models.Product{ID: "p1"}, nil)
	store.On("Count", ctx).Return(int64(80), nil)

	_, err := s.Duplicate(ctx, "p1")

	assert.ErrorIs(t, err, models.ErrCapacityReached)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_SetPublished_RequiresImage(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	draft := &models.Product{
		ID: "p1", Title: "T", Brand: "B", Model: "M",
		Category: models.CategoryBasic, Condition: models.ConditionUsed,
	}
	store.On("Get", ctx, "p1").Return(draft, nil)

	_, err := s.SetPublished(ctx, "p1", true)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "featuredImage", verr.Field)
	store.AssertNotCalled(t, "SetPublished", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_SetPublished_Unpublish(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	store.On("Get", ctx, "p1").Return(&models.Product{ID: "p1", Published: true}, nil)
	store.On("SetPublished", ctx, "p1", false).Return(nil)

	p, err := s.SetPublished(ctx, "p1", false)

	require.NoError(t, err)
	assert.False(t, p.Published)
}

func TestProductService_BulkDelete_Partial(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, pub, c := newProductService(store)
	defer c.Close()

	store.On("Delete", ctx, "a").Return(nil)
	store.On("Delete", ctx, "b").Return(models.ErrNotFound)
	store.On("Delete", ctx, "c").Return(nil)

	result := s.BulkDelete(ctx, []string{"a", "b", "c"})

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Partial())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "b", result.Errors[0].ID)
	assert.Len(t, pub.events, 2)
}

func TestProductService_List_UsesCatalogEngine(t *testing.T) {
	ctx := context.Background()
	store := new(MockProductStore)
	s, _, c := newProductService(store)
	defer c.Close()

	store.On("List", ctx).Return([]models.Product{
		{ID: "1", Title: "ThinkPad", Brand: "Lenovo", Price: 50000},
		{ID: "2", Title: "XPS", Brand: "Dell", Price: 90000},
		{ID: "3", Title: "Inspiron", Brand: "Dell", Price: 40000},
	}, nil)

	products, err := s.List(ctx, catalog.FilterSpec{Brands: []string{"Dell"}, SortBy: catalog.SortPriceLow}, "")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "3", products[0].ID)
	assert.Equal(t, "2", products[1].ID)
}
