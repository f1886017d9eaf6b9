package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the immutable process configuration, built once at startup
// and passed explicitly into constructors. Nothing reads the environment
// after Load returns.
type AppConfig struct {
	// BearerToken authenticates against the primary weather API. Empty
	// means the service runs in mock mode for its whole lifetime.
	BearerToken string

	// APIBaseURL is the primary provider's endpoint root.
	APIBaseURL string

	// DefaultLocation is the provider location id unmapped cities resolve to.
	DefaultLocation string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// Cache sizing and expiry.
	CacheCapacity int
	CacheTTL      time.Duration
	CachePolicy   string // "lru" or "fifo"

	// SweepInterval controls how often expired cache entries are reaped.
	SweepInterval time.Duration

	Port string
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		BearerToken:     os.Getenv("WEATHER_API_BEARER_TOKEN"),
		APIBaseURL:      getenvDefault("WEATHER_API_BASE_URL", "https://kf5g7cg6t3.re.qweatherapi.com/v7"),
		DefaultLocation: getenvDefault("WEATHER_DEFAULT_LOCATION", "101010100"),
		CacheCapacity:   getenvInt("CACHE_CAPACITY", 1000),
		CachePolicy:     getenvDefault("CACHE_EVICTION_POLICY", "lru"),
		Port:            getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.SweepInterval, err = getenvDuration("CACHE_SWEEP_INTERVAL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_SWEEP_INTERVAL: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
