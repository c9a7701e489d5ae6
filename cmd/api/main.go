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

	"github.com/carelink-cm/carelink-backend/internal/adapters/cache"
	"github.com/carelink-cm/carelink-backend/internal/adapters/database"
	"github.com/carelink-cm/carelink-backend/internal/adapters/events"
	"github.com/carelink-cm/carelink-backend/internal/adapters/history"
	"github.com/carelink-cm/carelink-backend/internal/api/handlers"
	"github.com/carelink-cm/carelink-backend/internal/api/middleware"
	"github.com/carelink-cm/carelink-backend/internal/api/routes"
	"github.com/carelink-cm/carelink-backend/internal/application/services"
	"github.com/carelink-cm/carelink-backend/internal/domain/providers"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/doctorapi"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/postgres"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/clients/redis"
	"github.com/carelink-cm/carelink-backend/internal/infrastructure/observability"
	"github.com/carelink-cm/carelink-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
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
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - caching and pub/sub degrade gracefully
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize the upstream doctor API client
	doctorAPI := doctorapi.NewClient(
		cfg.DoctorAPI.BaseURL,
		time.Duration(cfg.DoctorAPI.TimeoutSeconds)*time.Second,
	)

	// Initialize adapters
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)
	analyticsAdapter := database.NewSearchAnalyticsAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for the analytics live feed
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Search history survives restarts only when Redis is available
	var historyStore providers.HistoryStore
	if redisClient != nil {
		historyStore = history.NewRedisHistoryStore(redisClient)
	} else {
		historyStore = history.NewMemoryHistoryStore()
		log.Println("Search history running in-memory (Redis not available)")
	}

	// Initialize services
	trendingService, err := services.NewTrendingTermsService(cfg.Search.TrendingTermsPath)
	if err != nil {
		log.Fatalf("Failed to load trending terms config: %v", err)
	}

	doctorService := services.NewDoctorService(
		doctorAPI,
		doctorAdapter,
		services.NewDoctorFilterService(),
		services.NewSearchRankingService(),
		services.NewSearchStatsService(),
	)
	historyService := services.NewSearchHistoryService(historyStore, cfg.Search.HistoryLimit)
	suggestionService := services.NewSuggestionService(trendingService)
	analyticsService := services.NewSearchAnalyticsService(analyticsAdapter, eventBus)

	// Initialize handlers
	doctorHandler := handlers.NewDoctorHandler(doctorService, historyService, analyticsService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, doctorService, historyService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentAdapter, doctorService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		doctorHandler,
		suggestionHandler,
		historyHandler,
		appointmentHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
