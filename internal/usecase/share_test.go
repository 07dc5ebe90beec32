package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"LipeCore/internal/domain/models"
	drepo "LipeCore/internal/domain/repository"
	"LipeCore/internal/repository"
	pkgcache "LipeCore/pkg/cache"
	"LipeCore/pkg/metrics"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newRegistry(clk *testClock, opts ...ShareOption) (*ShareRegistry, *repository.CacheShareStore) {
	store := repository.NewCacheShareStore(pkgcache.NewMemoryCache(pkgcache.WithMemoryClock(clk.Now)), clk.Now)
	opts = append([]ShareOption{WithShareClock(clk.Now)}, opts...)
	return NewShareRegistry(store, nil, metrics.Noop{}, opts...), store
}

var payload = models.SharePayload{Arena: "crypto", Symbol: "BTCUSDT", Horizon: 7, TTLHours: 24}

func TestShareRoundTrip(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	reg, _ := newRegistry(clk)
	ctx := context.Background()

	link, err := reg.Create(ctx, payload, 24)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(link.Token) {
		t.Fatalf("unexpected token format %q", link.Token)
	}
	if link.URL != "/v1/share/"+link.Token || link.ExpiresInHours != 24 {
		t.Fatalf("unexpected link %+v", link)
	}

	clk.Advance(23 * time.Hour)
	got, err := reg.Get(ctx, link.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != payload {
		t.Fatalf("payload mismatch: %+v", got)
	}
}

func TestShareExpiresAfterTTL(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	reg, store := newRegistry(clk)
	ctx := context.Background()

	link, _ := reg.Create(ctx, payload, 1)
	clk.Advance(time.Hour)
	if _, err := reg.Get(ctx, link.Token); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected not found at expiry, got %v", err)
	}
	if _, ok, _ := store.Get(ctx, link.Token); ok {
		t.Fatalf("expired record should be deleted on read")
	}
}

func TestShareZeroAndNegativeTTLExpireImmediately(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	reg, _ := newRegistry(clk)
	ctx := context.Background()

	for _, ttl := range []int{0, -5} {
		link, err := reg.Create(ctx, payload, ttl)
		if err != nil {
			t.Fatalf("create ttl=%d: %v", ttl, err)
		}
		if _, err := reg.Get(ctx, link.Token); !errors.Is(err, ErrShareNotFound) {
			t.Fatalf("ttl=%d should be expired on first read, got %v", ttl, err)
		}
	}
}

func TestShareUnknownToken(t *testing.T) {
	clk := &testClock{t: time.Now()}
	reg, _ := newRegistry(clk)
	if _, err := reg.Get(context.Background(), "never-issued"); !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSharePublicBaseURL(t *testing.T) {
	clk := &testClock{t: time.Now()}
	reg, _ := newRegistry(clk, WithPublicBaseURL("https://lipe.example/"), WithTokenGenerator(func() string { return "tok" }))
	link, err := reg.Create(context.Background(), payload, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if link.URL != "https://lipe.example/v1/share/tok" {
		t.Fatalf("url=%s", link.URL)
	}
}

func TestShareConcurrentAccess(t *testing.T) {
	clk := &testClock{t: time.Now()}
	reg, _ := newRegistry(clk)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := payload
			p.Horizon = i%30 + 1
			link, err := reg.Create(ctx, p, 1)
			if err != nil {
				errs <- err
				return
			}
			got, err := reg.Get(ctx, link.Token)
			if err != nil {
				errs <- err
				return
			}
			if got != p {
				errs <- fmt.Errorf("payload mismatch for %s", link.Token)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestShareLiveLinksSurviveCapacity(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := pkgcache.NewMemoryCache(
		pkgcache.WithMemoryMaxSize(3),
		pkgcache.WithMemoryNoEvict(),
		pkgcache.WithMemoryClock(clk.Now),
	)
	store := repository.NewCacheShareStore(cache, clk.Now)
	reg := NewShareRegistry(store, nil, metrics.Noop{}, WithShareClock(clk.Now))
	ctx := context.Background()

	first, err := reg.Create(ctx, payload, 24)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := reg.Create(ctx, payload, 24); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := reg.Create(ctx, payload, 24); !errors.Is(err, drepo.ErrShareStoreFull) {
		t.Fatalf("expected ErrShareStoreFull, got %v", err)
	}
	if got, err := reg.Get(ctx, first.Token); err != nil || got != payload {
		t.Fatalf("first link lost at capacity: %+v %v", got, err)
	}

	// once a record expires its slot is reusable
	if _, err := reg.Create(ctx, payload, 0); !errors.Is(err, drepo.ErrShareStoreFull) {
		t.Fatalf("expected full store, got %v", err)
	}
	clk.Advance(25 * time.Hour)
	if _, err := reg.Create(ctx, payload, 24); err != nil {
		t.Fatalf("create after expiry: %v", err)
	}
}
