package config

import (
	"strconv"
	"time"
)

// Settings is the typed view of the service configuration.
type Settings struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string

	GeocodingProvider  string
	ORSAPIKey          string
	MapyAPIKey         string
	NominatimUserAgent string
	NominatimEmail     string
	ProviderTimeout    time.Duration

	GeocodeCacheTTL  time.Duration
	DistanceCacheTTL time.Duration
	CacheBackend     string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int

	ToleranceKm   float64
	MinSimilarity float64
	VerifyMatches bool

	FallbackRate  float64
	FallbackLabel string
	Debug         bool
}

// Load reads Settings from p, applying defaults.
func Load(p Provider) Settings {
	return Settings{
		Port:        p.GetString("PORT", "8080"),
		Env:         p.GetString("ENV", "development"),
		LogLevel:    p.GetString("LOG_LEVEL", "info"),
		DatabaseURL: p.GetString("DATABASE_URL", ""),

		GeocodingProvider:  p.GetString("GEOCODING_PROVIDER", "ors"),
		ORSAPIKey:          p.GetString("ORS_API_KEY", ""),
		MapyAPIKey:         p.GetString("MAPY_API_KEY", ""),
		NominatimUserAgent: p.GetString("NOMINATIM_USER_AGENT", "shipping-cost-service/1.0"),
		NominatimEmail:     p.GetString("NOMINATIM_EMAIL", ""),
		ProviderTimeout:    p.GetDuration("PROVIDER_TIMEOUT", 30*time.Second),

		GeocodeCacheTTL:  p.GetDuration("GEOCODE_CACHE_TTL", 7*24*time.Hour),
		DistanceCacheTTL: p.GetDuration("DISTANCE_CACHE_TTL", 24*time.Hour),
		CacheBackend:     p.GetString("CACHE_BACKEND", "memory"),
		RedisAddr:        p.GetString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    p.GetString("REDIS_PASSWORD", ""),
		RedisDB:          int(p.GetFloat("REDIS_DB", 0)),

		ToleranceKm:   p.GetFloat("GEOCODE_TOLERANCE_KM", 10),
		MinSimilarity: p.GetFloat("GEOCODE_MIN_SIMILARITY", 0.75),
		VerifyMatches: p.GetBool("GEOCODE_VERIFY", true),

		FallbackRate:  p.GetFloat("FALLBACK_RATE", 0),
		FallbackLabel: p.GetString("FALLBACK_LABEL", "Flat rate"),
		Debug:         p.GetBool("SHIPPING_DEBUG", false),
	}
}

// FallbackRateString formats the flat rate for logs.
func (s Settings) FallbackRateString() string {
	return strconv.FormatFloat(s.FallbackRate, 'f', 2, 64)
}
