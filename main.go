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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medregistry/api/audit"
	"github.com/medregistry/api/cache"
	"github.com/medregistry/api/config"
	"github.com/medregistry/api/controller"
	"github.com/medregistry/api/db"
	logger "github.com/medregistry/api/logging"
	"github.com/medregistry/api/ratelimit"
	"github.com/medregistry/api/router"
	"github.com/medregistry/api/service"
	"github.com/medregistry/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Postgres
	if err := db.InitPostgres(); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()

	// Request governance: in-process cache with periodic sweep plus the
	// per-identity rate/concurrency tracker. Both own background goroutines
	// with explicit lifecycles.
	store := cache.NewStore(config.GetDuration("cache.sweepInterval"))
	defer store.Stop()
	invalidator := cache.NewInvalidator(store)

	tracker := ratelimit.NewTracker(config.GetDuration("ratelimit.cleanupInterval"))
	defer tracker.Stop()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	notificationService := util.NewNotificationService()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	// Initialize services
	services := service.InitializeServices(
		db.Postgres,
		auditService,
		validationUtil,
		store,
		invalidator,
		notificationService,
		eventBus,
	)

	// Initialize controllers
	controllers := controller.InitializeControllers(services, store, tracker, auditService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, tracker, config.GetStringSlice("ratelimit.skipPrefixes"))

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
