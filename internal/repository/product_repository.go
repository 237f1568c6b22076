package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/database"
	"laptop-storefront/internal/models"
)

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Slug        string             `bson:"slug,omitempty"`
	Title       string             `bson:"title"`
	Brand       string             `bson:"brand"`
	Model       string             `bson:"model"`
	ShortSlogan string             `bson:"shortSlogan,omitempty"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Condition   string             `bson:"condition"`
	Tags        []string           `bson:"tags"`
	Price       int64              `bson:"price"`
	StockCount  int                `bson:"stockCount"`

	IsNewArrival      bool `bson:"isNewArrival"`
	IsDeal            bool `bson:"isDeal"`
	IsLimitedStock    bool `bson:"isLimitedStock"`
	IsTopHighlight    bool `bson:"isTopHighlight"`
	IsBottomHighlight bool `bson:"isBottomHighlight"`

	FeaturedImage string   `bson:"featuredImage"`
	GalleryImages []string `bson:"galleryImages"`

	Published bool               `bson:"published"`
	CreatedAt primitive.DateTime `bson:"createdAt"`
	UpdatedAt primitive.DateTime `bson:"updatedAt"`
}

func newProductDocument(p *models.Product) productDocument {
	doc := productDocument{
		Slug:              p.Slug,
		Title:             p.Title,
		Brand:             p.Brand,
		Model:             p.Model,
		ShortSlogan:       p.ShortSlogan,
		Description:       p.Description,
		Category:          string(p.Category),
		Condition:         string(p.Condition),
		Tags:              p.Tags,
		Price:             p.Price,
		StockCount:        p.StockCount,
		IsNewArrival:      p.IsNewArrival,
		IsDeal:            p.IsDeal,
		IsLimitedStock:    p.IsLimitedStock,
		IsTopHighlight:    p.IsTopHighlight,
		IsBottomHighlight: p.IsBottomHighlight,
		FeaturedImage:     p.FeaturedImage,
		GalleryImages:     p.GalleryImages,
		Published:         p.Published,
		CreatedAt:         toDateTime(p.CreatedAt),
		UpdatedAt:         toDateTime(p.UpdatedAt),
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.GalleryImages == nil {
		doc.GalleryImages = []string{}
	}
	if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d *productDocument) toModel() models.Product {
	return models.Product{
		ID:                d.ID.Hex(),
		Slug:              d.Slug,
		Title:             d.Title,
		Brand:             d.Brand,
		Model:             d.Model,
		ShortSlogan:       d.ShortSlogan,
		Description:       d.Description,
		Category:          models.Category(d.Category),
		Condition:         models.Condition(d.Condition),
		Tags:              d.Tags,
		Price:             d.Price,
		StockCount:        d.StockCount,
		IsNewArrival:      d.IsNewArrival,
		IsDeal:            d.IsDeal,
		IsLimitedStock:    d.IsLimitedStock,
		IsTopHighlight:    d.IsTopHighlight,
		IsBottomHighlight: d.IsBottomHighlight,
		FeaturedImage:     d.FeaturedImage,
		GalleryImages:     d.GalleryImages,
		Published:         d.Published,
		CreatedAt:         fromDateTime(d.CreatedAt),
		UpdatedAt:         fromDateTime(d.UpdatedAt),
	}
}

// ProductQuery combina los filtros de igualdad (fase servidor) con la fase en memoria
type ProductQuery struct {
	Category models.Category
	Brand    string
	Flags    []catalog.Flag
	Refine   catalog.Refinement
	Limit    int
}

// ServerFilter arma la fase servidor: solo igualdades que Mongo resuelve con índices.
// Siempre restringe a publicados.
func ServerFilter(q ProductQuery) bson.M {
	filter := bson.M{"published": true}
	if q.Category != "" {
		filter["category"] = string(q.Category)
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	for _, f := range q.Flags {
		filter[f.Key()] = true
	}
	return filter
}

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(database.ProductsCollection),
	}
}

// ListPublished ejecuta la fase servidor y luego refina en memoria.
// El límite se aplica en Mongo solo si no hay refinamiento; si lo hay, se aplica al final.
func (r *ProductRepository) ListPublished(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 && q.Refine.Empty() {
		findOptions.SetLimit(int64(q.Limit))
	}

	products, err := r.find(ctx, ServerFilter(q), findOptions)
	if err != nil {
		return nil, err
	}

	products = catalog.Refine(products, q.Refine)
	if q.Limit > 0 && len(products) > q.Limit {
		products = products[:q.Limit]
	}
	return products, nil
}

// List retorna todo el catálogo (publicados y borradores) para el admin
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]models.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toModel())
	}
	return products, nil
}

// Get obtiene un producto por ID
func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

// GetBySlug busca por slug y, si no existe, intenta con el ID
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := r.findOne(ctx, bson.M{"slug": slug})
	if errors.Is(err, models.ErrNotFound) {
		return r.Get(ctx, slug)
	}
	return product, err
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc productDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := doc.toModel()
	return &product, nil
}

// Count cuenta todos los productos, publicados o no
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// SlugExists indica si otro producto (distinto de excludeID) ya usa el slug
func (r *ProductRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	filter := bson.M{"slug": slug}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return n > 0, nil
}

// Create crea un nuevo producto y completa ID y fechas
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ts := now()
	product.CreatedAt = ts
	product.UpdatedAt = ts

	doc := newProductDocument(product)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = doc.ID.Hex()
	return nil
}

// Update reemplaza los campos editables. createdAt nunca se modifica.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return models.ErrNotFound
	}

	product.UpdatedAt = now()
	doc := newProductDocument(product)

	set := bson.M{
		"title":             doc.Title,
		"brand":             doc.Brand,
		"model":             doc.Model,
		"shortSlogan":       doc.ShortSlogan,
		"description":       doc.Description,
		"category":          doc.Category,
		"condition":         doc.Condition,
		"tags":              doc.Tags,
		"price":             doc.Price,
		"stockCount":        doc.StockCount,
		"isNewArrival":      doc.IsNewArrival,
		"isDeal":            doc.IsDeal,
		"isLimitedStock":    doc.IsLimitedStock,
		"isTopHighlight":    doc.IsTopHighlight,
		"isBottomHighlight": doc.IsBottomHighlight,
		"featuredImage":     doc.FeaturedImage,
		"galleryImages":     doc.GalleryImages,
		"published":         doc.Published,
		"updatedAt":         doc.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if doc.Slug != "" {
		set["slug"] = doc.Slug
	} else {
		update["$unset"] = bson.M{"slug": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetPublished publica o despublica
func (r *ProductRepository) SetPublished(ctx context.Context, id string, published bool) error {
	return r.updateFields(ctx, id, bson.M{"published": published})
}

func (r *ProductRepository) updateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	fields["updatedAt"] = toDateTime(now())
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete borra el producto definitivamente
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Stats trae el catálogo completo y lo reduce en memoria (máximo 80 documentos)
func (r *ProductRepository) Stats(ctx context.Context) (models.ProductStats, error) {
	products, err := r.List(ctx)
	if err != nil {
		return models.ProductStats{}, err
	}
	return ComputeProductStats(products), nil
}
