package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level

	// HTTP client and per-provider timeouts. A timed-out provider call
	// counts as a provider failure, never a crash.
	HTTPTimeout     time.Duration
	ProviderTimeout time.Duration
	MaxRetries      int

	GeocoderBaseURL     string
	HydrographicBaseURL string
	MeteoBaseURL        string
	WorldTidesBaseURL   string
	WorldTidesAPIKey    string

	// Default location used when geocoding fails entirely.
	DefaultName string
	DefaultLat  float64
	DefaultLon  float64

	// MaxFallbackDistanceKM rejects nearest-station matches farther than
	// this from the query point. Zero disables the check.
	MaxFallbackDistanceKM float64

	CacheBackend string // "memory" | "sqlite"
	CachePath    string
	CacheTTL     time.Duration
	CacheSize    int
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithCacheBackend selects the cache implementation.
func WithCacheBackend(backend string) Option {
	return func(c *Config) {
		c.CacheBackend = backend
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:     "production",
		LogLevel:        zerolog.InfoLevel,
		HTTPTimeout:     10 * time.Second,
		ProviderTimeout: 5 * time.Second,
		MaxRetries:      2,

		GeocoderBaseURL:     "https://nominatim.openstreetmap.org",
		HydrographicBaseURL: "https://api.puertos.es",
		MeteoBaseURL:        "https://opendata.aemet.es",
		WorldTidesBaseURL:   "https://www.worldtides.info",

		DefaultName: "Vigo",
		DefaultLat:  42.2406,
		DefaultLon:  -8.7245,

		MaxFallbackDistanceKM: 500,

		CacheBackend: "memory",
		CachePath:    "tidecast-cache.db",
		CacheTTL:     6 * time.Hour,
		CacheSize:    256,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithCacheBackend(getEnvOrDefault("CACHE_BACKEND", "memory")),
	)

	cfg.ProviderTimeout = getDurationEnvOrDefault("PROVIDER_TIMEOUT", cfg.ProviderTimeout)
	cfg.GeocoderBaseURL = getEnvOrDefault("GEOCODER_BASE_URL", cfg.GeocoderBaseURL)
	cfg.HydrographicBaseURL = getEnvOrDefault("HYDROGRAPHIC_BASE_URL", cfg.HydrographicBaseURL)
	cfg.MeteoBaseURL = getEnvOrDefault("METEO_BASE_URL", cfg.MeteoBaseURL)
	cfg.WorldTidesBaseURL = getEnvOrDefault("WORLDTIDES_BASE_URL", cfg.WorldTidesBaseURL)
	cfg.WorldTidesAPIKey = getEnvOrDefault("WORLDTIDES_API_KEY", "")
	cfg.DefaultName = getEnvOrDefault("DEFAULT_LOCATION", cfg.DefaultName)
	cfg.DefaultLat = getFloatEnvOrDefault("DEFAULT_LAT", cfg.DefaultLat)
	cfg.DefaultLon = getFloatEnvOrDefault("DEFAULT_LON", cfg.DefaultLon)
	cfg.MaxFallbackDistanceKM = getFloatEnvOrDefault("MAX_FALLBACK_DISTANCE_KM", cfg.MaxFallbackDistanceKM)
	cfg.CachePath = getEnvOrDefault("CACHE_PATH", cfg.CachePath)
	cfg.CacheTTL = getDurationEnvOrDefault("CACHE_TTL", cfg.CacheTTL)
	cfg.CacheSize = getIntEnvOrDefault("CACHE_SIZE", cfg.CacheSize)

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Warn().Str("key", key).Msg("Invalid duration in environment variable, using default")
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Msg("Invalid float in environment variable, using default")
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Warn().Str("key", key).Msg("Invalid integer in environment variable, using default")
	}
	return defaultValue
}
