package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"shipping-cost-service/internal/adapters/cache"
	"shipping-cost-service/internal/adapters/geocoding"
	"shipping-cost-service/internal/adapters/repositories"
	"shipping-cost-service/internal/config"
	"shipping-cost-service/internal/platform/db"
	"shipping-cost-service/internal/platform/obs"
	"shipping-cost-service/internal/ports"
	"shipping-cost-service/internal/services"
	"strings"
)

// App holds the wired services shared by the server and the CLI.
// DB and the registry-backed services are nil when no DATABASE_URL is set.
type App struct {
	Settings config.Settings

	DB    *sql.DB
	Cache ports.CacheStore

	Resolver   *services.AddressResolver
	Calculator *services.DistanceCalculator

	Rules  *repositories.PostgresRuleRepository
	Stores *repositories.PostgresStoreRepository
	Quotes *services.QuoteService
}

// New connects the configured backends and builds the pipeline.
func New(ctx context.Context, s config.Settings) (*App, error) {
	a := &App{Settings: s}

	if strings.TrimSpace(s.DatabaseURL) != "" {
		conn, err := db.Open(ctx, s.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.DB = conn
	}

	store, err := cache.New(cache.Options{
		Backend:       s.CacheBackend,
		DB:            a.DB,
		RedisAddr:     s.RedisAddr,
		RedisPassword: s.RedisPassword,
		RedisDB:       s.RedisDB,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}
	a.Cache = store

	chain, err := geocoding.BuildChain(s)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	names := make([]string, 0, len(chain))
	for _, p := range chain {
		names = append(names, p.Name())
	}
	obs.Logger().Info().
		Strs("providers", names).
		Str("cache", s.CacheBackend).
		Bool("verify", s.VerifyMatches).
		Msg("geocoding chain ready")

	policy := services.MatchPolicy{ToleranceKm: s.ToleranceKm, MinSimilarity: s.MinSimilarity}
	a.Resolver = services.NewAddressResolver(chain, services.NewGeoCache(store, s.GeocodeCacheTTL), policy, s.VerifyMatches)
	a.Calculator = services.NewDistanceCalculator(a.Resolver, services.NewDistanceCache(store, s.DistanceCacheTTL))

	if a.DB != nil {
		a.Rules = repositories.NewPostgresRuleRepository(a.DB)
		a.Stores = repositories.NewPostgresStoreRepository(a.DB)
		a.Quotes = services.NewQuoteService(
			a.Rules,
			services.NewStoreLocator(a.Stores, a.Calculator),
			services.QuoteOptions{
				FallbackRate:  s.FallbackRate,
				FallbackLabel: s.FallbackLabel,
				Debug:         s.Debug,
			},
		)
	}

	return a, nil
}

// RequireDB reports an error when the app was built without a database.
func (a *App) RequireDB() error {
	if a.DB == nil {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func (a *App) Close() error {
	var errs []error
	if c, ok := a.Cache.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
