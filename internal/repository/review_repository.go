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

	"laptop-storefront/internal/database"
	"laptop-storefront/internal/models"
)

type reviewDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName  string             `bson:"customerName"`
	CustomerEmail string             `bson:"customerEmail,omitempty"`
	Rating        int                `bson:"rating"`
	Title         string             `bson:"title,omitempty"`
	Comment       string             `bson:"comment"`
	ProductID     string             `bson:"productId,omitempty"`
	ProductName   string             `bson:"productName,omitempty"`
	Status        string             `bson:"status"`
	Featured      bool               `bson:"featured"`

	AdminReply     string              `bson:"adminReply,omitempty"`
	AdminReplyDate *primitive.DateTime `bson:"adminReplyDate,omitempty"`

	CreatedAt primitive.DateTime `bson:"createdAt"`
	UpdatedAt primitive.DateTime `bson:"updatedAt"`
}

func newReviewDocument(r *models.StoreReview) reviewDocument {
	doc := reviewDocument{
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		Rating:         r.Rating,
		Title:          r.Title,
		Comment:        r.Comment,
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		Status:         string(r.Status),
		Featured:       r.Featured,
		AdminReply:     r.AdminReply,
		AdminReplyDate: toDateTimePtr(r.AdminReplyDate),
		CreatedAt:      toDateTime(r.CreatedAt),
		UpdatedAt:      toDateTime(r.UpdatedAt),
	}
	if oid, err := primitive.ObjectIDFromHex(r.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d *reviewDocument) toModel() models.StoreReview {
	return models.StoreReview{
		ID:             d.ID.Hex(),
		CustomerName:   d.CustomerName,
		CustomerEmail:  d.CustomerEmail,
		Rating:         d.Rating,
		Title:          d.Title,
		Comment:        d.Comment,
		ProductID:      d.ProductID,
		ProductName:    d.ProductName,
		Status:         models.ReviewStatus(d.Status),
		Featured:       d.Featured,
		AdminReply:     d.AdminReply,
		AdminReplyDate: fromDateTimePtr(d.AdminReplyDate),
		CreatedAt:      fromDateTime(d.CreatedAt),
		UpdatedAt:      fromDateTime(d.UpdatedAt),
	}
}

type ReviewQuery struct {
	Status   models.ReviewStatus
	Featured *bool
	Rating   int
}

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection(database.ReviewsCollection),
	}
}

// List lista reseñas para moderación, más recientes primero
func (r *ReviewRepository) List(ctx context.Context, q ReviewQuery) ([]models.StoreReview, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	if q.Featured != nil {
		filter["featured"] = *q.Featured
	}
	if q.Rating > 0 {
		filter["rating"] = q.Rating
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// ListApproved retorna las reseñas públicas: destacadas primero, luego las más nuevas
func (r *ReviewRepository) ListApproved(ctx context.Context, limit int) ([]models.StoreReview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"status": string(models.ReviewApproved)}, opts)
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.StoreReview, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reviewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]models.StoreReview, 0, len(docs))
	for i := range docs {
		reviews = append(reviews, docs[i].toModel())
	}
	return reviews, nil
}

// Get obtiene una reseña por ID
func (r *ReviewRepository) Get(ctx context.Context, id string) (*models.StoreReview, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	var doc reviewDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	review := doc.toModel()
	return &review, nil
}

// Create inserta la reseña tal como viene; el estado lo decide el servicio
func (r *ReviewRepository) Create(ctx context.Context, review *models.StoreReview) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ts := now()
	review.CreatedAt = ts
	review.UpdatedAt = ts

	doc := newReviewDocument(review)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	review.ID = doc.ID.Hex()
	return nil
}

// Update edita el contenido. No toca status, featured ni la respuesta del admin.
func (r *ReviewRepository) Update(ctx context.Context, review *models.StoreReview) error {
	review.UpdatedAt = now()
	doc := newReviewDocument(review)

	return r.updateOne(ctx, bson.M{"_id": doc.ID}, bson.M{
		"customerName":  doc.CustomerName,
		"customerEmail": doc.CustomerEmail,
		"rating":        doc.Rating,
		"title":         doc.Title,
		"comment":       doc.Comment,
		"productId":     doc.ProductID,
		"productName":   doc.ProductName,
		"updatedAt":     doc.UpdatedAt,
	}, review.ID)
}

// SetStatus cambia el estado solo si sigue siendo from. Si otro admin lo cambió antes
// retorna ErrInvalidTransition.
func (r *ReviewRepository) SetStatus(ctx context.Context, id string, from, to models.ReviewStatus) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	err = r.updateOne(ctx, bson.M{"_id": objID, "status": string(from)}, bson.M{"status": string(to)}, id)
	if errors.Is(err, models.ErrNotFound) {
		if _, getErr := r.Get(ctx, id); getErr == nil {
			return models.ErrInvalidTransition
		}
	}
	return err
}

// SetFeatured destaca o no la reseña, independiente del estado
func (r *ReviewRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	return r.updateOne(ctx, bson.M{"_id": objID}, bson.M{"featured": featured}, id)
}

// Reply guarda la respuesta del admin con su fecha
func (r *ReviewRepository) Reply(ctx context.Context, id, reply string, at time.Time) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}
	return r.updateOne(ctx, bson.M{"_id": objID}, bson.M{
		"adminReply":     reply,
		"adminReplyDate": toDateTime(at),
	}, id)
}

func (r *ReviewRepository) updateOne(ctx context.Context, filter, fields bson.M, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if oid, ok := filter["_id"].(primitive.ObjectID); !ok || oid.IsZero() {
		return models.ErrNotFound
	}
	if _, ok := fields["updatedAt"]; !ok {
		fields["updatedAt"] = toDateTime(now())
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete borra la reseña
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) Stats(ctx context.Context) (models.ReviewStats, error) {
	reviews, err := r.List(ctx, ReviewQuery{})
	if err != nil {
		return models.ReviewStats{}, err
	}
	return ComputeReviewStats(reviews), nil
}
