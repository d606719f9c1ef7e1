package app

import (
	"context"
	"io"
	"shipping-cost-service/internal/config"
	"testing"
)

func TestNewWithoutDatabase(t *testing.T) {
	s := config.Load(config.Map{"ORS_API_KEY": "k"})

	a, err := New(context.Background(), s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Resolver == nil || a.Calculator == nil {
		t.Fatal("pipeline not wired")
	}
	if a.Quotes != nil || a.Rules != nil {
		t.Fatal("registry services need a database")
	}
	if err := a.RequireDB(); err == nil {
		t.Fatal("RequireDB should fail without a database")
	}

	got := a.Resolver.Providers()
	if len(got) != 2 || got[0].Name() != "ors" || got[1].Name() != "nominatim" {
		t.Fatalf("chain = %v", got)
	}
}

func TestNewRejectsBadCacheBackend(t *testing.T) {
	for _, backend := range []string{"postgres", "memcached"} {
		s := config.Load(config.Map{"CACHE_BACKEND": backend})
		if _, err := New(context.Background(), s); err == nil {
			t.Fatalf("backend %q should fail", backend)
		}
	}
}

func TestCloseReleasesCache(t *testing.T) {
	a, err := New(context.Background(), config.Load(config.Map{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := a.Cache.(io.Closer); !ok {
		t.Fatalf("memory cache %T must be closable", a.Cache)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
