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

type settingsDocument struct {
	ID                  string `bson:"_id,omitempty"`
	models.SiteSettings `bson:",inline"`
	UpdatedAt           primitive.DateTime `bson:"updatedAt"`
}

type SettingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{
		collection: db.Collection(database.SettingsCollection),
	}
}

// Get lee settings/site; si no existe lo crea con los valores por defecto
func (r *SettingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc settingsDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": models.SettingsID}).Decode(&doc)
	if err == nil {
		settings := doc.SiteSettings
		settings.UpdatedAt = fromDateTime(doc.UpdatedAt)
		return &settings, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := models.DefaultSettings()
	settings.UpdatedAt = now()
	doc = settingsDocument{SiteSettings: settings, UpdatedAt: toDateTime(settings.UpdatedAt)}

	// $setOnInsert evita pisar un documento creado en paralelo
	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": models.SettingsID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	return &settings, nil
}

// Merge actualiza solo las secciones presentes. Si el documento no existe,
// las demás secciones se inicializan con los valores por defecto.
func (r *SettingsRepository) Merge(ctx context.Context, update *models.SettingsUpdate) (*models.SiteSettings, error) {
	set, setOnInsert := mergeDocuments(update, models.DefaultSettings())
	set["updatedAt"] = toDateTime(now())

	mongoUpdate := bson.M{"$set": set}
	if len(setOnInsert) > 0 {
		mongoUpdate["$setOnInsert"] = setOnInsert
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(writeCtx,
		bson.M{"_id": models.SettingsID},
		mongoUpdate,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return r.Get(ctx)
}

// mergeDocuments separa las secciones enviadas ($set) de las que solo se escriben al crear
func mergeDocuments(update *models.SettingsUpdate, defaults models.SiteSettings) (bson.M, bson.M) {
	set := bson.M{}
	setOnInsert := bson.M{}

	section := func(key string, value interface{}, present bool, fallback interface{}) {
		if present {
			set[key] = value
		} else {
			setOnInsert[key] = fallback
		}
	}

	section("branding", update.Branding, update.Branding != nil, defaults.Branding)
	section("contact", update.Contact, update.Contact != nil, defaults.Contact)
	section("business", update.Business, update.Business != nil, defaults.Business)
	section("pages", update.Pages, update.Pages != nil, defaults.Pages)
	section("seo", update.SEO, update.SEO != nil, defaults.SEO)
	section("integrations", update.Integrations, update.Integrations != nil, defaults.Integrations)
	section("notifications", update.Notifications, update.Notifications != nil, defaults.Notifications)
	section("maintenance", update.Maintenance, update.Maintenance != nil, defaults.Maintenance)
	section("homepage", update.Homepage, update.Homepage != nil, defaults.Homepage)

	return set, setOnInsert
}
