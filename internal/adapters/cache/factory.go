package cache

import (
	"database/sql"
	"fmt"
	"shipping-cost-service/internal/ports"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options selects and configures a CacheStore backend.
type Options struct {
	Backend       string // memory, redis or postgres
	DB            *sql.DB
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New builds the configured backend.
func New(opts Options) (ports.CacheStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", "memory":
		return NewMemoryStore(10 * time.Minute), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		return NewRedisStore(client, "shipping:"), nil
	case "postgres", "sql":
		if opts.DB == nil {
			return nil, fmt.Errorf("new cache: backend %q requires a database", opts.Backend)
		}
		return NewSQLStore(opts.DB), nil
	default:
		return nil, fmt.Errorf("new cache: unknown backend %q", opts.Backend)
	}
}
