package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/internal/api"
	"github.com/coastwatch/tidecast/internal/cache"
	"github.com/coastwatch/tidecast/internal/config"
	"github.com/coastwatch/tidecast/internal/forecast"
	"github.com/coastwatch/tidecast/internal/geocode"
	"github.com/coastwatch/tidecast/internal/provider"
	"github.com/coastwatch/tidecast/internal/station"
	"github.com/coastwatch/tidecast/pkg/http/client"
	"github.com/coastwatch/tidecast/pkg/metrics"
)

type serverEnv struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`
}

func main() {
	var env serverEnv
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("Reading server environment failed")
	}

	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	resolver := buildResolver(cfg)
	tideCache := buildCache(cfg)
	svc := forecast.NewService(
		geocode.New(client.New(client.Options{
			BaseURL:    cfg.GeocoderBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})),
		resolver,
		buildProviders(cfg),
		tideCache,
		cfg,
	)

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()
	api.NewHandler(svc, resolver).Register(s)
	s.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}
}

// buildResolver loads the bundled catalog. A load failure is not fatal:
// the service degrades to fully simulated forecasts.
func buildResolver(cfg *config.Config) *station.Resolver {
	stations, err := station.Catalog()
	if err != nil {
		log.Error().Err(err).Msg("Station catalog unavailable, running in simulated mode")
		return nil
	}
	return station.NewResolver(stations, cfg.MaxFallbackDistanceKM)
}

func buildCache(cfg *config.Config) cache.TideCache {
	if cfg.CacheBackend == "sqlite" {
		sqliteCache, err := cache.OpenSQLite(cfg.CachePath, cfg.CacheTTL)
		if err == nil {
			return sqliteCache
		}
		log.Warn().Err(err).Msg("Opening sqlite cache failed, falling back to memory")
	}

	memoryCache, err := cache.NewMemory(cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Creating memory cache failed")
	}
	return memoryCache
}

// buildProviders wires the chain in its fixed priority order: official
// hydrographic source, meteorological agency, commercial API.
func buildProviders(cfg *config.Config) []provider.Provider {
	newClient := func(baseURL string) *client.Client {
		return client.New(client.Options{
			BaseURL:    baseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})
	}

	providers := []provider.Provider{
		provider.NewHydrographic(newClient(cfg.HydrographicBaseURL), cfg.ProviderTimeout),
		provider.NewMeteo(newClient(cfg.MeteoBaseURL), cfg.ProviderTimeout),
	}
	if cfg.WorldTidesAPIKey != "" {
		providers = append(providers,
			provider.NewWorldTides(newClient(cfg.WorldTidesBaseURL), cfg.WorldTidesAPIKey, cfg.ProviderTimeout))
	} else {
		log.Debug().Msg("No WorldTides API key, commercial source disabled")
	}
	return providers
}
