package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type memoryItem struct {
	Value      []byte
	Expiration int64
}

// MemoryCache es el caché en proceso, usado cuando no hay Redis configurado
type MemoryCache struct {
	items map[string]memoryItem
	mu    sync.RWMutex
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryCache crea el caché y arranca la limpieza periódica
func NewMemoryCache(defaultTTL time.Duration, cleanupEvery time.Duration) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]memoryItem),
		ttl:   defaultTTL,
		stop:  make(chan struct{}),
	}
	if cleanupEvery > 0 {
		go c.cleanupExpired(cleanupEvery)
	}
	return c
}

// Set guarda un valor en caché; ttl <= 0 usa el TTL por defecto
func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryItem{
		Value:      data,
		Expiration: time.Now().Add(ttl).UnixNano(),
	}
	return nil
}

// Get obtiene y deserializa un valor del caché
func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found {
		return false, nil
	}
	// Verificar si expiró
	if time.Now().UnixNano() > item.Expiration {
		return false, nil
	}

	if err := json.Unmarshal(item.Value, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Delete elimina valores del caché
func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

// DeleteByPrefix elimina todas las claves que empiecen con un prefijo
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

// Size retorna el número de items en caché, incluidos los expirados aún no limpiados
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close detiene la limpieza periódica
func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

// cleanupExpired limpia items expirados periódicamente
func (c *MemoryCache) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.purge()
		}
	}
}

func (c *MemoryCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for key, item := range c.items {
		if now > item.Expiration {
			delete(c.items, key)
		}
	}
}
