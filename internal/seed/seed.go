package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/services"
)

// Los datos de demo pasan por los servicios, así se respetan el tope del catálogo y las validaciones

type ProductCreator interface {
	Create(ctx context.Context, in *models.ProductInput) (*services.SaveResult, error)
}

type CustomerCreator interface {
	Create(ctx context.Context, in *models.CustomerInput) (*models.Customer, error)
}

type ReviewCreator interface {
	Create(ctx context.Context, in *models.ReviewInput) (*models.StoreReview, error)
	SetStatus(ctx context.Context, id string, to models.ReviewStatus) (*models.StoreReview, error)
}

type Options struct {
	Products  int
	Customers int
	Reviews   int
	// Seed fija la secuencia aleatoria; 0 usa la hora actual
	Seed int64
}

type Summary struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Reviews   int `json:"reviews"`
	// CapacityReached indica que se cortó la carga de productos por el tope
	CapacityReached bool `json:"capacityReached"`
}

type Seeder struct {
	products  ProductCreator
	customers CustomerCreator
	reviews   ReviewCreator
	logger    *logrus.Entry
	now       func() time.Time
}

func NewSeeder(products ProductCreator, customers CustomerCreator, reviews ReviewCreator, log logrus.FieldLogger) *Seeder {
	return &Seeder{
		products:  products,
		customers: customers,
		reviews:   reviews,
		logger:    logger.Component(log, "seed"),
		now:       time.Now,
	}
}

var laptopLines = map[string][]string{
	"Dell":   {"XPS 13", "XPS 15", "Latitude 5420", "Inspiron 15", "Vostro 3510"},
	"HP":     {"EliteBook 840", "Pavilion 14", "Spectre x360", "ProBook 450", "Victus 16"},
	"Lenovo": {"ThinkPad E14", "ThinkPad T14", "IdeaPad Slim 5", "Legion 5", "Yoga 7"},
	"Apple":  {"MacBook Air M1", "MacBook Air M2", "MacBook Pro 14"},
	"Asus":   {"ZenBook 14", "VivoBook 15", "ROG Strix G15", "TUF Gaming F15"},
	"Acer":   {"Aspire 5", "Swift 3", "Nitro 5"},
}

var productTags = []string{"business", "gaming", "student", "ultrabook", "14-inch", "15-inch", "touchscreen", "ssd", "16gb-ram", "backlit-keyboard"}

// Run carga productos, clientes y reseñas. Un error de capacidad corta solo la carga de productos.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	var summary Summary
	var created []models.Product

	for i := 0; i < opts.Products; i++ {
		result, err := s.products.Create(ctx, fakeProduct(rnd, i))
		if errors.Is(err, models.ErrCapacityReached) {
			summary.CapacityReached = true
			s.logger.WithField("created", summary.Products).Warn("catalog capacity reached, skipping remaining products")
			break
		}
		if err != nil {
			return summary, fmt.Errorf("seed product %d: %w", i, err)
		}
		created = append(created, *result.Product)
		summary.Products++
	}

	for i := 0; i < opts.Customers; i++ {
		if _, err := s.customers.Create(ctx, s.fakeCustomer(rnd, created)); err != nil {
			return summary, fmt.Errorf("seed customer %d: %w", i, err)
		}
		summary.Customers++
	}

	for i := 0; i < opts.Reviews; i++ {
		review, err := s.reviews.Create(ctx, fakeReview(rnd, created))
		if err != nil {
			return summary, fmt.Errorf("seed review %d: %w", i, err)
		}
		// la mayoría queda aprobada para que el storefront tenga contenido
		if to := fakeModeration(rnd); to != models.ReviewPending {
			if _, err := s.reviews.SetStatus(ctx, review.ID, to); err != nil {
				return summary, fmt.Errorf("moderate seeded review %s: %w", review.ID, err)
			}
		}
		summary.Reviews++
	}

	s.logger.WithFields(logrus.Fields{
		"products":  summary.Products,
		"customers": summary.Customers,
		"reviews":   summary.Reviews,
	}).Info("demo data seeded")
	return summary, nil
}

func fakeProduct(rnd *rand.Rand, i int) *models.ProductInput {
	brand := pick(rnd, brands())
	model := pick(rnd, laptopLines[brand])
	category := models.Categories[rnd.Intn(len(models.Categories))]
	title := brand + " " + model

	tags := make([]string, 0, 3)
	for _, idx := range rnd.Perm(len(productTags))[:1+rnd.Intn(3)] {
		tags = append(tags, productTags[idx])
	}

	stock := rnd.Intn(12)
	key := slug.Make(title)
	return &models.ProductInput{
		Slug:              fmt.Sprintf("%s-%d", key, i+1),
		Title:             title,
		Brand:             brand,
		Model:             model,
		ShortSlogan:       faker.Sentence(),
		Description:       faker.Paragraph(),
		Category:          category,
		Condition:         models.Conditions[rnd.Intn(len(models.Conditions))],
		Tags:              tags,
		Price:             priceFor(rnd, category),
		StockCount:        stock,
		IsNewArrival:      rnd.Intn(4) == 0,
		IsDeal:            rnd.Intn(5) == 0,
		IsLimitedStock:    stock > 0 && stock <= 2,
		IsTopHighlight:    rnd.Intn(8) == 0,
		IsBottomHighlight: rnd.Intn(8) == 0,
		FeaturedImage:     fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/600", key, i+1),
		GalleryImages: []string{
			fmt.Sprintf("https://picsum.photos/seed/%s-%d-a/800/600", key, i+1),
			fmt.Sprintf("https://picsum.photos/seed/%s-%d-b/800/600", key, i+1),
		},
		Published: rnd.Intn(10) != 0,
	}
}

// priceFor genera precios en rupias redondeados a 500 según la categoría
func priceFor(rnd *rand.Rand, c models.Category) int64 {
	low, high := 18000, 45000
	switch c {
	case models.CategoryPremium:
		low, high = 65000, 200000
	case models.CategoryStandard:
		low, high = 35000, 80000
	}
	return int64((low + rnd.Intn(high-low)) / 500 * 500)
}

func (s *Seeder) fakeCustomer(rnd *rand.Rand, products []models.Product) *models.CustomerInput {
	addr := faker.GetRealAddress()
	in := &models.CustomerInput{
		Name:         faker.FirstName() + " " + faker.LastName(),
		Email:        faker.Email(),
		Phone:        fmt.Sprintf("+91 9%09d", rnd.Intn(1_000_000_000)),
		Address:      addr.Address + ", " + addr.City,
		ProductName:  "Refurbished laptop",
		PurchaseDate: s.now().UTC().AddDate(0, 0, -rnd.Intn(45)).Truncate(24 * time.Hour),
	}
	if len(products) > 0 {
		p := products[rnd.Intn(len(products))]
		in.ProductID = p.ID
		in.ProductName = p.Title
	}
	return in
}

func fakeReview(rnd *rand.Rand, products []models.Product) *models.ReviewInput {
	in := &models.ReviewInput{
		CustomerName:  faker.FirstName() + " " + faker.LastName()[:1] + ".",
		CustomerEmail: faker.Email(),
		Rating:        weightedRating(rnd),
		Title:         faker.Sentence(),
		Comment:       faker.Paragraph(),
	}
	if len(products) > 0 && rnd.Intn(2) == 0 {
		p := products[rnd.Intn(len(products))]
		in.ProductID = p.ID
		in.ProductName = p.Title
	}
	return in
}

// weightedRating sesga las notas hacia 4 y 5
func weightedRating(rnd *rand.Rand) int {
	weights := []int{1, 1, 2, 5, 8}
	n := rnd.Intn(17)
	for i, w := range weights {
		if n < w {
			return i + 1
		}
		n -= w
	}
	return 5
}

func fakeModeration(rnd *rand.Rand) models.ReviewStatus {
	switch n := rnd.Intn(10); {
	case n < 7:
		return models.ReviewApproved
	case n < 8:
		return models.ReviewRejected
	}
	return models.ReviewPending
}

func brands() []string {
	out := make([]string, 0, len(laptopLines))
	for b := range laptopLines {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

func pick(rnd *rand.Rand, list []string) string {
	return list[rnd.Intn(len(list))]
}
