package feed

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCacheValidadePorTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	fetches := 0
	cache := NewCache(15*time.Minute, clock.Now, func(ctx context.Context) ([]Row, error) {
		fetches++
		return []Row{{"Município": "Curitiba"}}, nil
	}, func(rows []Row) int { return len(rows) })

	ctx := context.Background()

	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("primeiro get: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("primeiro get deveria buscar, fetches=%d", fetches)
	}

	// um instante antes de expirar: hit
	clock.Advance(15*time.Minute - time.Second)
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get antes do TTL: %v", err)
	}
	if fetches != 1 {
		t.Fatalf("get antes do TTL não deveria rebuscar, fetches=%d", fetches)
	}

	// um instante depois: exatamente uma nova busca
	clock.Advance(2 * time.Second)
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get após o TTL: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("get após o TTL deveria buscar uma vez, fetches=%d", fetches)
	}
}

func TestCacheForceRefresh(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	fetches := 0
	cache := NewCache(15*time.Minute, clock.Now, func(ctx context.Context) ([]Row, error) {
		fetches++
		return []Row{}, nil
	}, func(rows []Row) int { return len(rows) })

	ctx := context.Background()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := cache.ForceRefresh(ctx); err != nil {
		t.Fatalf("force refresh: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("force refresh deveria ignorar a validade, fetches=%d", fetches)
	}
}

func TestCacheFalhaPreservaValorAnterior(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	fail := false
	cache := NewCache(time.Minute, clock.Now, func(ctx context.Context) ([]Row, error) {
		if fail {
			return nil, errors.New("fonte fora do ar")
		}
		return []Row{{"Município": "Toledo"}}, nil
	}, func(rows []Row) int { return len(rows) })

	ctx := context.Background()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("get inicial: %v", err)
	}

	fail = true
	clock.Advance(2 * time.Minute)

	_, err := cache.Get(ctx)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("falha de busca deveria virar FetchError, got %v", err)
	}

	// o valor antigo segue disponível e o carimbo não andou
	info := cache.Info()
	if !info.Cached || info.TotalRows != 1 {
		t.Errorf("cache anterior deveria permanecer intacto: %+v", info)
	}

	// fonte volta: próximo acesso rebusca normalmente
	fail = false
	rows, err := cache.Get(ctx)
	if err != nil || len(rows) != 1 {
		t.Fatalf("recuperação após falha: %v", err)
	}
}

func TestCacheInfoDerivada(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(time.Minute, clock.Now, func(ctx context.Context) ([]Row, error) {
		return []Row{{}, {}}, nil
	}, func(rows []Row) int { return len(rows) })

	info := cache.Info()
	if info.Cached || info.CacheAge != nil || info.TotalRows != 0 {
		t.Errorf("cache vazio deveria reportar tudo zerado: %+v", info)
	}

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	clock.Advance(30 * time.Second)

	info = cache.Info()
	if !info.Cached || info.CacheAge == nil || *info.CacheAge != 30 {
		t.Errorf("idade deveria ser 30s: %+v", info)
	}
	if info.TotalRows != 2 {
		t.Errorf("total_rows = %d, esperava 2", info.TotalRows)
	}
}
