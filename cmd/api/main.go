package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schoolhubng/Schooladmindesign/backend/internal/adapters/cache"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/adapters/database"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/adapters/events"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/api/handlers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/api/routes"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/application/services"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/domain/providers"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/postgres"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/clients/redis"
	"github.com/schoolhubng/Schooladmindesign/backend/internal/infrastructure/observability"
	"github.com/schoolhubng/Schooladmindesign/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	// Redis is optional: without it searches run uncached and mutation
	// events are not consumed
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		defer eventBus.Close()
	}

	providerTimeout := time.Duration(cfg.Search.ProviderTimeoutSeconds) * time.Second
	searchProviders := []providers.SearchProvider{
		database.NewSchoolSearchProvider(pgClient, providerTimeout),
		database.NewStudentSearchProvider(pgClient, providerTimeout),
		database.NewProspectSearchProvider(pgClient, providerTimeout),
		database.NewUserSearchProvider(pgClient, providerTimeout),
		database.NewAddressSearchProvider(pgClient, providerTimeout),
	}

	highlighter := services.NewHighlightService()
	mapper := services.NewSearchMapperService(highlighter)
	fanout := services.NewSearchFanoutService(searchProviders, mapper, highlighter, cfg.Search.OverFetchFactor, metrics)
	aggregator := services.NewSearchAggregatorService(
		fanout,
		services.NewSearchRankingService(),
		services.NewSuggestionService(),
		cacheProvider,
		metrics,
		cfg.Search.CacheTTLSeconds,
		cfg.Search.SuggestionTTLSeconds,
	)

	if eventBus != nil {
		invalidation := services.NewCacheInvalidationService(aggregator, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			defer invalidation.Stop()
		}
	}

	router := routes.NewRouter(handlers.NewSearchHandler(aggregator), metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
}
