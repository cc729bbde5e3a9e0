package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	catalogapp "github.com/shopcrm/backend/internal/application/catalog"
	customerapp "github.com/shopcrm/backend/internal/application/customer"
	shopapp "github.com/shopcrm/backend/internal/application/shop"
	"github.com/shopcrm/backend/internal/infrastructure/cache"
	"github.com/shopcrm/backend/internal/infrastructure/config"
	"github.com/shopcrm/backend/internal/infrastructure/event"
	"github.com/shopcrm/backend/internal/infrastructure/logger"
	"github.com/shopcrm/backend/internal/infrastructure/persistence"
	"github.com/shopcrm/backend/internal/infrastructure/telemetry"
	"github.com/shopcrm/backend/internal/interfaces/http/handler"
	"github.com/shopcrm/backend/internal/interfaces/http/middleware"
	"github.com/shopcrm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			ShopCRM Backend API
//	@version		1.0
//	@description	Customer identity and relationship service for multi-shop commerce

//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.FromConfig(cfg.Log, cfg.App.Env))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting ShopCRM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	gormLogger := logger.NewGormLogger(log,
		logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
		logger.WithMaxSQLLength(cfg.Database.LogMaxSQL),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Metrics
	var (
		reg         *prometheus.Registry
		httpMetrics *telemetry.HTTPMetrics
		recorder    customerapp.Recorder
	)
	if cfg.Metrics.Enabled {
		reg = telemetry.NewRegistry()
		if _, err := telemetry.RegisterDBMetrics(db.DB, reg, telemetry.DBMetricsConfig{
			Enabled:            true,
			Namespace:          cfg.Metrics.Namespace,
			DBName:             cfg.Database.DBName,
			SlowQueryThreshold: cfg.Database.SlowThreshold,
		}, log); err != nil {
			log.Fatal("Failed to register database metrics", zap.Error(err))
		}
		if httpMetrics, err = telemetry.NewHTTPMetrics(reg, cfg.Metrics.Namespace); err != nil {
			log.Fatal("Failed to register HTTP metrics", zap.Error(err))
		}
		customerMetrics, err := telemetry.NewCustomerMetrics(reg, cfg.Metrics.Namespace)
		if err != nil {
			log.Fatal("Failed to register customer metrics", zap.Error(err))
		}
		recorder = customerMetrics
	}

	// Reference cache for shop and channel names
	var names shopapp.NameCache
	if cfg.Cache.Enabled {
		factory := cache.NewReferenceCacheFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log))
		referenceCache, closeCache, err := factory.CreateCache(context.Background())
		if err != nil {
			log.Fatal("Failed to create reference cache", zap.Error(err))
		}
		defer func() {
			if err := closeCache(); err != nil {
				log.Warn("Failed to close cache", zap.Error(err))
			}
		}()
		names = referenceCache
	}

	// Repositories
	shopRepo := persistence.NewGormShopRepository(db.DB)
	channelRepo := persistence.NewGormChannelRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.Kafka.Enabled {
		producer, err := event.NewSyncProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("Failed to connect to Kafka", zap.Error(err), zap.Strings("brokers", cfg.Kafka.Brokers))
		}
		forwarder := event.NewKafkaForwarder(producer, event.NewEventSerializer(), cfg.Kafka.Topic, log)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Warn("Failed to close Kafka producer", zap.Error(err))
			}
		}()
		eventBus.Subscribe(forwarder, forwarder.EventTypes()...)
		log.Info("Forwarding customer events to Kafka", zap.String("topic", cfg.Kafka.Topic))
	}
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	shopService := shopapp.NewShopService(shopRepo, names, log)
	channelService := shopapp.NewChannelService(channelRepo, shopRepo, names, log)
	catalogService := catalogapp.NewCatalogService(categoryRepo, itemRepo, shopRepo, log)
	customerService := customerapp.NewCustomerService(
		customerRepo,
		shopapp.NewShopDirectory(shopRepo, names),
		shopapp.NewChannelDirectory(channelRepo, names),
	)
	customerService.SetEventPublisher(eventBus)
	customerService.SetRecorder(recorder)
	customerService.SetLogger(log)

	// HTTP
	middleware.SetupValidator()

	engineCfg := router.EngineConfig{
		Logger:         log,
		HTTPMetrics:    httpMetrics,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}
	if reg != nil {
		engineCfg.MetricsHandler = telemetry.Handler(reg)
		engineCfg.MetricsPath = cfg.Metrics.Path
	}

	engine, err := router.NewEngine(engineCfg, router.Handlers{
		Customer: handler.NewCustomerHandler(customerService),
		Shop:     handler.NewShopHandler(shopService, channelService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Health:   handler.NewHealthHandler(map[string]handler.Pinger{"database": db}),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	// Drain in-flight publishes before the Kafka producer closes
	if err := eventBus.Stop(ctx); err != nil {
		log.Warn("Event bus did not stop cleanly", zap.Error(err))
	}

	log.Info("Server exited")
}
