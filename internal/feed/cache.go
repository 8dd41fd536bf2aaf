package feed

import (
	"context"
	"sync"
	"time"
)

// FetchError indica falha na busca do feed externo. O valor em cache
// anterior, se houver, permanece intacto.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "falha ao buscar feed: " + e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// Info descreve o estado do cache, sempre derivado na hora.
type Info struct {
	Cached     bool     `json:"cached"`
	CacheAge   *float64 `json:"cache_age_seconds"`
	TotalRows  int      `json:"total_rows"`
	CacheStamp *string  `json:"cache_timestamp,omitempty"`
}

// Cache guarda o resultado de uma busca externa por um TTL fixo. A
// expiração é avaliada de forma preguiçosa no acesso; o mutex cobre apenas
// a troca do slot, então dois misses simultâneos podem buscar em dobro.
type Cache[T any] struct {
	ttl   time.Duration
	now   func() time.Time
	fetch func(context.Context) (T, error)
	rows  func(T) int

	mu     sync.Mutex
	value  T
	stamp  time.Time
	primed bool
}

// NewCache cria cache com relógio e busca injetáveis.
func NewCache[T any](ttl time.Duration, now func() time.Time, fetch func(context.Context) (T, error), rows func(T) int) *Cache[T] {
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{ttl: ttl, now: now, fetch: fetch, rows: rows}
}

// Get devolve o valor em cache enquanto fresco; expirado ou vazio, busca
// de novo. Falha de busca propaga FetchError sem descartar o valor antigo.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	if c.primed && c.now().Sub(c.stamp) < c.ttl {
		value := c.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	return c.refresh(ctx)
}

// ForceRefresh busca sempre, ignorando a validade atual.
func (c *Cache[T]) ForceRefresh(ctx context.Context) (T, error) {
	return c.refresh(ctx)
}

func (c *Cache[T]) refresh(ctx context.Context) (T, error) {
	value, err := c.fetch(ctx)
	if err != nil {
		var zero T
		return zero, &FetchError{Err: err}
	}

	c.mu.Lock()
	c.value = value
	c.stamp = c.now()
	c.primed = true
	c.mu.Unlock()

	return value, nil
}

// Info devolve estado atual do cache.
func (c *Cache[T]) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.primed {
		return Info{Cached: false, CacheAge: nil, TotalRows: 0}
	}

	age := c.now().Sub(c.stamp).Seconds()
	stamp := c.stamp.UTC().Format(time.RFC3339Nano)
	return Info{
		Cached:     true,
		CacheAge:   &age,
		TotalRows:  c.rows(c.value),
		CacheStamp: &stamp,
	}
}
