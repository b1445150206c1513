package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache de queries con ventana de frescura.
// - dentro de la ventana: se sirve el valor sin refetch
// - vencida la ventana: se sirve el valor viejo IGUAL (no bloquea el render)
//   y se dispara un refresh en background, uno solo por key
// - toda mutación invalida sus keys antes de que la UI se dé por settled
type Cache struct {
	ttl time.Duration
	log *logrus.Logger

	mu       sync.Mutex
	entries  map[string]entry
	inflight map[string]struct{}
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// FetchFunc trae el valor fresco desde el backend.
type FetchFunc func(ctx context.Context) (any, error)

func New(ttl time.Duration, log *logrus.Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		ttl:      ttl,
		log:      log,
		entries:  make(map[string]entry),
		inflight: make(map[string]struct{}),
	}
}

// GetOrFetch devuelve el valor para key.
// Sin valor cacheado => fetch sincrónico. Con valor fresco => directo.
// Con valor viejo => lo devuelve ya y refresca en background.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		fresh := time.Since(e.fetchedAt) < c.ttl
		if !fresh {
			c.maybeRefreshLocked(key, fetch)
		}
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(key, v)
	return v, nil
}

// maybeRefreshLocked lanza un refresh en background si no hay uno en vuelo.
// El request que lo disparó puede morir antes: el refresh usa su propio ctx.
func (c *Cache) maybeRefreshLocked(key string, fetch FetchFunc) {
	if _, busy := c.inflight[key]; busy {
		return
	}
	c.inflight[key] = struct{}{}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		v, err := fetch(ctx)

		c.mu.Lock()
		delete(c.inflight, key)
		if err == nil {
			c.entries[key] = entry{value: v, fetchedAt: time.Now()}
		}
		c.mu.Unlock()

		if err != nil {
			c.log.WithError(err).WithField("key", key).Debug("background cache refresh failed")
		}
	}()
}

// Get devuelve el valor cacheado si existe, sin política de frescura.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, fetchedAt: time.Now()}
}

// Invalidate descarta las keys dadas.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}
