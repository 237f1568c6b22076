package cache

import (
	"context"
	"time"
)

// Prefijos de claves. Toda escritura sobre productos invalida PrefixCatalog.
const (
	PrefixCatalog  = "catalog:"
	KeySettings    = "settings:site"
	KeyPublished   = PrefixCatalog + "published"
	KeyHome        = PrefixCatalog + "home"
	KeyReviewsFeed = "reviews:approved"
)

// Cache es un caché de valores serializados en JSON.
// Los errores de caché nunca deben romper una lectura: quien llama sigue contra la base.
type Cache interface {
	// Get deserializa el valor en dest; retorna false si no existe o expiró
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}
