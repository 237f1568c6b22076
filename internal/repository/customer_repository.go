package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"laptop-storefront/internal/database"
	"laptop-storefront/internal/models"
	"laptop-storefront/internal/warranty"
)

type customerDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Email   string             `bson:"email,omitempty"`
	Phone   string             `bson:"phone,omitempty"`
	Address string             `bson:"address,omitempty"`

	ProductID   string `bson:"productId,omitempty"`
	ProductName string `bson:"productName"`

	PurchaseDate       primitive.DateTime `bson:"purchaseDate"`
	WarrantyPeriodDays int                `bson:"warrantyPeriodDays"`
	WarrantyEndDate    primitive.DateTime `bson:"warrantyEndDate"`

	Status string `bson:"status"`
	Notes  string `bson:"notes,omitempty"`

	LastReminderDate  *primitive.DateTime `bson:"lastReminderDate,omitempty"`
	ReviewRequestDate *primitive.DateTime `bson:"reviewRequestDate,omitempty"`

	CreatedAt primitive.DateTime `bson:"createdAt"`
	UpdatedAt primitive.DateTime `bson:"updatedAt"`
}

func newCustomerDocument(c *models.Customer) customerDocument {
	doc := customerDocument{
		Name:               c.Name,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		ProductID:          c.ProductID,
		ProductName:        c.ProductName,
		PurchaseDate:       toDateTime(c.PurchaseDate),
		WarrantyPeriodDays: c.WarrantyPeriodDays,
		WarrantyEndDate:    toDateTime(c.WarrantyEndDate),
		Status:             string(c.Status),
		Notes:              c.Notes,
		LastReminderDate:   toDateTimePtr(c.LastReminderDate),
		ReviewRequestDate:  toDateTimePtr(c.ReviewRequestDate),
		CreatedAt:          toDateTime(c.CreatedAt),
		UpdatedAt:          toDateTime(c.UpdatedAt),
	}
	if oid, err := primitive.ObjectIDFromHex(c.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

// toModel no copia ningún estado de garantía: siempre se recalcula con warranty.Apply
func (d *customerDocument) toModel() models.Customer {
	return models.Customer{
		ID:                 d.ID.Hex(),
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Address:            d.Address,
		ProductID:          d.ProductID,
		ProductName:        d.ProductName,
		PurchaseDate:       fromDateTime(d.PurchaseDate),
		WarrantyPeriodDays: d.WarrantyPeriodDays,
		WarrantyEndDate:    fromDateTime(d.WarrantyEndDate),
		Status:             models.CustomerStatus(d.Status),
		Notes:              d.Notes,
		LastReminderDate:   fromDateTimePtr(d.LastReminderDate),
		ReviewRequestDate:  fromDateTimePtr(d.ReviewRequestDate),
		CreatedAt:          fromDateTime(d.CreatedAt),
		UpdatedAt:          fromDateTime(d.UpdatedAt),
	}
}

// CustomerQuery: Status se filtra en Mongo; WarrantyStatus y Search en memoria
type CustomerQuery struct {
	Status         models.CustomerStatus
	WarrantyStatus models.WarrantyStatus
	Search         string
}

type CustomerRepository struct {
	collection *mongo.Collection
	clock      func() time.Time
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection(database.CustomersCollection),
		clock:      time.Now,
	}
}

// List lista clientes, más recientes primero, con el estado de garantía recalculado
func (r *CustomerRepository) List(ctx context.Context, q CustomerQuery) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "purchaseDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []customerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}

	at := r.clock()
	term := strings.ToLower(strings.TrimSpace(q.Search))
	customers := make([]models.Customer, 0, len(docs))
	for i := range docs {
		c := docs[i].toModel()
		warranty.Apply(&c, at)

		if q.WarrantyStatus != "" && c.WarrantyStatus != q.WarrantyStatus {
			continue
		}
		if term != "" && !customerMatches(&c, term) {
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func customerMatches(c *models.Customer, term string) bool {
	for _, f := range []string{c.Name, c.Email, c.Phone, c.ProductName} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Get obtiene un cliente por ID
func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	var doc customerDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	c := doc.toModel()
	warranty.Apply(&c, r.clock())
	return &c, nil
}

// Create crea el cliente; la fecha de fin de garantía ya debe venir calculada
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ts := now()
	c.CreatedAt = ts
	c.UpdatedAt = ts

	doc := newCustomerDocument(c)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	c.ID = doc.ID.Hex()
	warranty.Apply(c, r.clock())
	return nil
}

// Update reemplaza los datos editables del cliente
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	c.UpdatedAt = now()
	doc := newCustomerDocument(c)

	err := r.updateFields(ctx, c.ID, bson.M{
		"name":               doc.Name,
		"email":              doc.Email,
		"phone":              doc.Phone,
		"address":            doc.Address,
		"productId":          doc.ProductID,
		"productName":        doc.ProductName,
		"purchaseDate":       doc.PurchaseDate,
		"warrantyPeriodDays": doc.WarrantyPeriodDays,
		"warrantyEndDate":    doc.WarrantyEndDate,
		"status":             doc.Status,
		"notes":              doc.Notes,
	})
	if err != nil {
		return err
	}
	warranty.Apply(c, r.clock())
	return nil
}

// SetStatus cambia el estado de seguimiento
func (r *CustomerRepository) SetStatus(ctx context.Context, id string, status models.CustomerStatus) error {
	return r.updateFields(ctx, id, bson.M{"status": string(status)})
}

// MarkReminderSent solo registra la fecha, no envía ningún mensaje
func (r *CustomerRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	return r.updateFields(ctx, id, bson.M{"lastReminderDate": toDateTime(at)})
}

// MarkReviewRequested registra la fecha y pasa el estado a Review Requested
func (r *CustomerRepository) MarkReviewRequested(ctx context.Context, id string, at time.Time) error {
	return r.updateFields(ctx, id, bson.M{
		"reviewRequestDate": toDateTime(at),
		"status":            string(models.CustomerReviewRequested),
	})
}

func (r *CustomerRepository) updateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	if _, ok := fields["updatedAt"]; !ok {
		fields["updatedAt"] = toDateTime(now())
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete borra el cliente
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Stats(ctx context.Context) (models.CustomerStats, error) {
	customers, err := r.List(ctx, CustomerQuery{})
	if err != nil {
		return models.CustomerStats{}, err
	}
	return ComputeCustomerStats(customers, r.clock()), nil
}
