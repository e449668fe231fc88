package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = time.Hour
)

// Cache is an in-process typed cache. Keys are case-insensitive because
// they usually embed hex addresses.
type Cache[V any] struct {
	store *gocache.Cache
}

func New[V any](expiration, cleanup time.Duration) *Cache[V] {
	return &Cache[V]{store: gocache.New(expiration, cleanup)}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	value, found := c.store.Get(strings.ToLower(key))
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.store.SetDefault(strings.ToLower(key), value)
}

func (c *Cache[V]) Len() int { return c.store.ItemCount() }

func (c *Cache[V]) Flush() { c.store.Flush() }
