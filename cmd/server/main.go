package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopscout/backend/config"
	httpDelivery "github.com/shopscout/backend/internal/delivery/http"
	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/cache"
	"github.com/shopscout/backend/internal/infrastructure/catalog"
	"github.com/shopscout/backend/internal/infrastructure/llm"
	"github.com/shopscout/backend/internal/infrastructure/websearch"
	"github.com/shopscout/backend/internal/synthetic"
	"github.com/shopscout/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("starting ShopScout backend")

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	generator := synthetic.New()
	searchSources, detailChain := buildSources(cfg, generator, logger)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		searchSources,
		generator,
		memoryCache,
		usecase.SearchServiceConfig{
			MaxResults:    cfg.Aggregator.MaxResults,
			PadCount:      cfg.Aggregator.PadCount,
			FallbackCount: cfg.Aggregator.FallbackCount,
			CacheTTL:      cfg.Aggregator.CacheTTL,
		},
		logger,
	)
	detailService := usecase.NewDetailService(generator, detailChain, logger)

	handler := httpDelivery.NewHandler(searchService, detailService, version, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newLogger writes human-readable output in development and JSON elsewhere
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Server.Environment == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// buildSources returns the search sources in aggregation order and the
// detail chain in resolution order: catalogs, web search, generative.
func buildSources(cfg *config.Config, generator *synthetic.Generator, logger zerolog.Logger) ([]domain.Source, []domain.Source) {
	var searchSources, detailChain []domain.Source
	var catalogs []domain.Source

	if cfg.Catalog.Enabled {
		for _, c := range catalog.Defaults(cfg.Catalog.MaxDelay, logger) {
			catalogs = append(catalogs, c)
		}
		// Any one catalog resolves ids across all of them
		detailChain = append(detailChain, catalogs[0])
	} else {
		logger.Info().Msg("static catalogs disabled")
	}

	if cfg.Search.Enabled() {
		client := websearch.NewClient(websearch.ClientConfig{
			APIKey:            cfg.Search.APIKey,
			EngineID:          cfg.Search.EngineID,
			BaseURL:           cfg.Search.BaseURL,
			Timeout:           cfg.Search.Timeout,
			RequestsPerSecond: cfg.Search.RequestsPerSecond,
			Burst:             cfg.Search.Burst,
		}, logger)
		adapter := websearch.NewAdapter(client, generator, websearch.AdapterConfig{
			Domains:    cfg.Search.Domains,
			NumResults: cfg.Search.NumResults,
		}, logger)
		searchSources = append(searchSources, adapter)
		detailChain = append(detailChain, adapter)
		logger.Info().Strs("domains", cfg.Search.Domains).Msg("web search enabled")
	} else {
		logger.Warn().Msg("web search disabled (set SHOPSCOUT_SEARCH_API_KEY and SHOPSCOUT_SEARCH_ENGINE_ID)")
	}

	if cfg.OpenAI.Enabled() {
		client := llm.NewClient(llm.ClientConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		}, logger)
		adapter := llm.NewAdapter(client, 0, logger)
		searchSources = append(searchSources, adapter)
		detailChain = append(detailChain, adapter)
		logger.Info().Str("model", cfg.OpenAI.Model).Msg("generative source enabled")
	} else {
		logger.Warn().Msg("generative source disabled (set SHOPSCOUT_OPENAI_API_KEY)")
	}

	searchSources = append(searchSources, catalogs...)
	return searchSources, detailChain
}
