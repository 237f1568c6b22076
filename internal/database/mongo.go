package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Nombres de las colecciones
const (
	ProductsCollection  = "products"
	CustomersCollection = "customers"
	ReviewsCollection   = "reviews"
	SettingsCollection  = "settings"
)

// Connect abre el cliente de MongoDB y verifica la conexión con un ping
func Connect(ctx context.Context, uri string, log logrus.FieldLogger) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("database connection URL is empty")
	}

	clientOptions := options.Client().ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info("connected to MongoDB")
	return client, nil
}

func Ping(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}

// Close cierra la conexión
func Close(ctx context.Context, client *mongo.Client, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("failed to disconnect MongoDB client")
		return err
	}
	log.Info("disconnected from MongoDB")
	return nil
}

// Indexes retorna los índices de cada colección
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		ProductsCollection: {
			{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetName("slug_unique").SetUnique(true).SetSparse(true),
			},
			{
				Keys:    bson.D{{Key: "published", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("published_createdAt"),
			},
		},
		CustomersCollection: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}},
				Options: options.Index().SetName("status"),
			},
			{
				Keys:    bson.D{{Key: "warrantyEndDate", Value: 1}},
				Options: options.Index().SetName("warrantyEndDate"),
			},
		},
		ReviewsCollection: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("status_createdAt"),
			},
		},
	}
}

// EnsureIndexes crea los índices si no existen. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for coll, models := range Indexes() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
		log.WithField("collection", coll).WithField("indexes", names).Info("indexes ensured")
	}
	return nil
}
