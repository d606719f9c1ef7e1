package services

import (
	"context"
	"shipping-cost-service/internal/adapters/cache"
	"shipping-cost-service/internal/domain"
	"testing"
	"time"
)

func TestGeoCacheTTL(t *testing.T) {
	gc := NewGeoCache(cache.NewMemoryStore(time.Minute), time.Hour)
	ctx := context.Background()
	want := domain.GeocodeResult{Coordinates: brno, FormattedAddress: "Brno, Czechia", OriginalAddress: "Brno", Provider: "ors"}

	gc.Set(ctx, "Brno", want, 50*time.Millisecond)

	got, ok := gc.Get(ctx, " brno ")
	if !ok || got != want {
		t.Fatalf("Get = %+v, %v; want %+v", got, ok, want)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := gc.Get(ctx, "Brno"); ok {
		t.Fatal("expected miss after TTL")
	}
}

func TestGeoCacheInvalidate(t *testing.T) {
	gc := NewGeoCache(cache.NewMemoryStore(time.Minute), time.Hour)
	ctx := context.Background()

	gc.Set(ctx, "Brno", domain.GeocodeResult{Coordinates: brno}, time.Hour)
	if err := gc.Invalidate(ctx, "BRNO"); err != nil {
		t.Fatal(err)
	}
	if _, ok := gc.Get(ctx, "Brno"); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestDistanceCacheRoundTrip(t *testing.T) {
	dc := NewDistanceCache(cache.NewMemoryStore(time.Minute), time.Hour)
	ctx := context.Background()
	secs := 7380
	want := domain.DistanceResult{Kilometers: 205.4, DurationSeconds: &secs, Provider: domain.ProviderORS}

	dc.Set(ctx, "Prague", "Brno", want, time.Hour)

	got, ok := dc.Get(ctx, "prague", "brno")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Kilometers != want.Kilometers || got.Provider != want.Provider || got.DurationSeconds == nil || *got.DurationSeconds != secs {
		t.Fatalf("Get = %+v", got)
	}
	if _, ok := dc.Get(ctx, "Brno", "Prague"); ok {
		t.Fatal("reverse direction must be a separate entry")
	}
}

func TestCachesDegradeOnStoreError(t *testing.T) {
	ctx := context.Background()

	gc := NewGeoCache(failingStore{}, time.Hour)
	gc.Set(ctx, "Brno", domain.GeocodeResult{}, time.Hour)
	if _, ok := gc.Get(ctx, "Brno"); ok {
		t.Fatal("failing store must read as miss")
	}

	dc := NewDistanceCache(failingStore{}, time.Hour)
	dc.Set(ctx, "a", "b", domain.DistanceResult{}, time.Hour)
	if _, ok := dc.Get(ctx, "a", "b"); ok {
		t.Fatal("failing store must read as miss")
	}
}

func TestCacheKeys(t *testing.T) {
	if DistanceKey("  Prague ", "BRNO") != DistanceKey("prague", "brno") {
		t.Fatal("distance key must normalize input")
	}
	if DistanceKey("a", "b") == DistanceKey("b", "a") {
		t.Fatal("distance key must be ordered")
	}
	if got := NormalizeAddress("  Store   A,\tPrague "); got != "store a, prague" {
		t.Fatalf("NormalizeAddress = %q", got)
	}
}
