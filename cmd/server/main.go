package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/config"
	"storefront-gateway/internal/app/controller"
	"storefront-gateway/internal/app/model"
	"storefront-gateway/internal/app/search"
	"storefront-gateway/internal/app/service"
	"storefront-gateway/internal/app/store"
	"storefront-gateway/internal/events"
	"storefront-gateway/internal/middleware"
	"storefront-gateway/internal/router"
	"storefront-gateway/internal/scheduler"
	"storefront-gateway/internal/storage"
	"storefront-gateway/pkg/logger"
	"storefront-gateway/pkg/saleor"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting storefront gateway", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"channel":     cfg.Saleor.Channel,
		"log_level":   logLevel,
	})

	// Initialize storage backend
	st, closeStorage, err := buildStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", err)
	}
	defer closeStorage()

	// Initialize state stores, restoring persisted records
	cartStore := store.NewCartStore(st)
	sessionStore := store.NewSessionStore(st)

	// Initialize the commerce API client
	saleorClient, err := saleor.NewClient(saleor.Config{
		APIURL:  cfg.Saleor.APIURL,
		Channel: cfg.Saleor.Channel,
		Timeout: cfg.Saleor.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to initialize commerce API client", err)
	}

	// Initialize services
	authService := service.NewAuthService(saleorClient, sessionStore)
	catalogService := service.NewCatalogService(saleorClient)

	// Initialize the debounced search pipeline
	coordinator := search.NewCoordinator(cfg.Search.DebounceDelay, func(ctx context.Context, query string) ([]model.Product, error) {
		return catalogService.Search(ctx, query, cfg.Search.PageSize)
	})
	defer coordinator.Stop()

	// Initialize the event stream and wire store changes into it
	hub := events.NewHub(func() []events.Event {
		return []events.Event{
			{Topic: events.TopicCart, Payload: cartStore.State()},
			{Topic: events.TopicSession, Payload: sessionStore.State()},
			{Topic: events.TopicSearch, Payload: coordinator.State()},
		}
	}, coordinator.SetQuery)
	go hub.Run()

	cartStore.OnChange(func(state store.CartState) {
		hub.Publish(events.TopicCart, state)
	})
	sessionStore.OnChange(func(state store.SessionState) {
		hub.Publish(events.TopicSession, state)
	})
	coordinator.OnChange(func(state search.State) {
		hub.Publish(events.TopicSearch, state)
	})

	// Validate the persisted session against the backend
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Saleor.Timeout)
		defer cancel()
		if err := authService.Restore(ctx); err != nil {
			logger.Warn("Session restore failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Start the periodic token rotation
	refreshScheduler := scheduler.NewSessionRefreshScheduler(authService, sessionStore, cfg.Session.RefreshInterval)
	if err := refreshScheduler.Start(); err != nil {
		logger.Fatal("Failed to start session refresh scheduler", err)
	}
	defer refreshScheduler.Stop()

	// Initialize controllers
	authController := controller.NewAuthController(authService, sessionStore)
	cartController := controller.NewCartController(cartStore)
	catalogController := controller.NewCatalogController(catalogService)
	searchController := controller.NewSearchController(catalogService, coordinator, cfg.Search.PageSize)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)

	// Setup router
	r := router.NewRouter(
		authController,
		cartController,
		catalogController,
		searchController,
		sessionMiddleware,
		hub,
		cfg,
	)
	engine := r.Setup()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": server.Addr,
			"pid":     os.Getpid(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", err)
	}

	logger.Info("Server stopped successfully")
}

// buildStorage picks the persistence backend from configuration. The
// file backend is the default; redis serves setups where the gateway
// runs alongside an existing instance.
func buildStorage(cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		rs, err := storage.NewRedisStorage(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() {
			if err := rs.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}, nil
	default:
		fs, err := storage.NewFileStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	}
}
