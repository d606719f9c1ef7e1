package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider is a read-only key/value settings source.
type Provider interface {
	GetString(key, fallback string) string
	GetBool(key string, fallback bool) bool
	GetFloat(key string, fallback float64) float64
	GetDuration(key string, fallback time.Duration) time.Duration
}

// Env reads settings from the process environment.
type Env struct{}

// LoadEnv loads CONFIG_FILE (or .env when unset) into the environment and
// returns an Env provider. A missing file is not an error.
func LoadEnv() Env {
	if file := os.Getenv("CONFIG_FILE"); file != "" {
		if err := godotenv.Load(file); err != nil {
			log.Printf("config: load %q: %v (using environment variables)", file, err)
		}
		return Env{}
	}
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return Env{}
}

func (Env) GetString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (e Env) GetBool(key string, fallback bool) bool {
	return parseBool(key, e.GetString(key, ""), fallback)
}

func (e Env) GetFloat(key string, fallback float64) float64 {
	return parseFloat(key, e.GetString(key, ""), fallback)
}

func (e Env) GetDuration(key string, fallback time.Duration) time.Duration {
	return parseDuration(key, e.GetString(key, ""), fallback)
}

// Map is a static Provider, used by tests and the CLI.
type Map map[string]string

func (m Map) GetString(key, fallback string) string {
	if v, ok := m[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (m Map) GetBool(key string, fallback bool) bool {
	return parseBool(key, m.GetString(key, ""), fallback)
}

func (m Map) GetFloat(key string, fallback float64) float64 {
	return parseFloat(key, m.GetString(key, ""), fallback)
}

func (m Map) GetDuration(key string, fallback time.Duration) time.Duration {
	return parseDuration(key, m.GetString(key, ""), fallback)
}

func parseBool(key, v string, fallback bool) bool {
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid bool for %s, using fallback", key)
		return fallback
	}
	return b
}

func parseFloat(key, v string, fallback float64) float64 {
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float for %s, using fallback", key)
		return fallback
	}
	return f
}

func parseDuration(key, v string, fallback time.Duration) time.Duration {
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration for %s, using fallback", key)
		return fallback
	}
	return d
}
