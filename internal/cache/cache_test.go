package cache_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"farm-records/internal/cache"
)

func newCache(ttl time.Duration) *cache.Cache {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return cache.New(ttl, log)
}

func TestGetOrFetch_MissFetchesOnce(t *testing.T) {
	c := newCache(time.Minute)

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}

	v, err := c.GetOrFetch(context.Background(), "k", fetch)
	if err != nil {
		t.Fatalf("GetOrFetch: %v", err)
	}
	if v != "v1" {
		t.Fatalf("v = %v", v)
	}

	// Segunda lectura dentro de la ventana: sin refetch.
	v, err = c.GetOrFetch(context.Background(), "k", fetch)
	if err != nil {
		t.Fatalf("GetOrFetch: %v", err)
	}
	if v != "v1" {
		t.Fatalf("v = %v", v)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	c := newCache(time.Minute)

	boom := errors.New("backend down")
	if _, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	// El error no queda cacheado: el siguiente intento vuelve a pegarle al fetch.
	v, err := c.GetOrFetch(context.Background(), "k", func(ctx context.Context) (any, error) {
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("v = %v, err = %v", v, err)
	}
}

func TestGetOrFetch_StaleServesOldAndRefreshes(t *testing.T) {
	c := newCache(10 * time.Millisecond)

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "old", nil
		}
		return "new", nil
	}

	if _, err := c.GetOrFetch(context.Background(), "k", fetch); err != nil {
		t.Fatalf("prime: %v", err)
	}

	time.Sleep(20 * time.Millisecond) // vence la ventana

	// Lectura stale: devuelve lo viejo sin bloquear.
	v, err := c.GetOrFetch(context.Background(), "k", fetch)
	if err != nil {
		t.Fatalf("stale read: %v", err)
	}
	if v != "old" {
		t.Fatalf("stale read = %v, want old", v)
	}

	// El refresh corre en background; eventualmente el valor nuevo aparece.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if v, ok := c.Get("k"); ok && v == "new" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("background refresh never landed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestInvalidate(t *testing.T) {
	c := newCache(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")

	if _, ok := c.Get("a"); ok {
		t.Fatal("a should be gone")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Fatalf("b = %v, %v", v, ok)
	}

	// Invalidate de key inexistente: no-op.
	c.Invalidate("zzz")
}

func TestGetOrFetch_StaleRefreshFailureKeepsOldValue(t *testing.T) {
	c := newCache(5 * time.Millisecond)

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "old", nil
		}
		return nil, errors.New("backend down")
	}

	if _, err := c.GetOrFetch(context.Background(), "k", fetch); err != nil {
		t.Fatalf("prime: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	v, err := c.GetOrFetch(context.Background(), "k", fetch)
	if err != nil || v != "old" {
		t.Fatalf("stale read = %v, err = %v", v, err)
	}

	// El refresh falló en background; el valor viejo sigue sirviendo.
	time.Sleep(50 * time.Millisecond)
	if v, ok := c.Get("k"); !ok || v != "old" {
		t.Fatalf("after failed refresh: %v, %v", v, ok)
	}
}
