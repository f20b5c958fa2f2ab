package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appintegration "github.com/shopsync/backend/internal/application/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/cache"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/erp"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/scheduler"
	"github.com/shopsync/backend/internal/infrastructure/storefront"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
	"github.com/shopsync/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront sync connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Webhook deduplication store: Redis when reachable, in-memory
	// fallback otherwise.
	dedupFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	dedup, err := dedupFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := dedup.Close(); err != nil {
			log.Error("Failed to close idempotency store", zap.Error(err))
		}
	}()

	// Upstream clients
	erpClient := erp.NewVerialClient(&erp.VerialConfig{
		Host:           cfg.Verial.Host,
		Session:        cfg.Verial.Session,
		OnlineSession:  cfg.Verial.OnlineSession,
		TimeoutSeconds: cfg.Verial.TimeoutSeconds,
	})
	shopifyClient := storefront.NewShopifyClient(&storefront.ShopifyConfig{
		APIVersion:     cfg.Shopify.APIVersion,
		WebhookSecret:  cfg.Shopify.WebhookSecret,
		TimeoutSeconds: cfg.Shopify.TimeoutSeconds,
	})

	// Repositories
	orders := persistence.NewGormOrderRepository(db.DB)
	customers := persistence.NewGormCustomerRepository(db.DB)
	products := persistence.NewGormProductRepository(db.DB)
	shops := persistence.NewGormShopRepository(db.DB)
	productMappings := persistence.NewGormProductMappingRepository(db.DB)
	customerMappings := persistence.NewGormCustomerMappingRepository(db.DB)
	orderMappings := persistence.NewGormOrderMappingRepository(db.DB)
	syncLogs := persistence.NewGormSyncLogRepository(db.DB)
	recorder := persistence.NewGormSubmissionRecorder(db.DB)

	// Best-effort webhook subscription; the endpoint tolerates
	// re-registration and the shop may not be configured yet.
	if addr := cfg.Shopify.WebhookAddress; addr != "" {
		if shop, err := shops.Get(context.Background()); err != nil {
			log.Warn("Skipping webhook registration, shop not configured", zap.Error(err))
		} else if err := shopifyClient.RegisterOrderWebhook(context.Background(), shop, addr); err != nil {
			log.Warn("Order webhook registration failed", zap.Error(err))
		} else {
			log.Info("Order webhook registered", zap.String("address", addr))
		}
	}

	// Application services
	resolution := appintegration.NewCustomerResolutionService(customers, customerMappings, erpClient, log)
	builder := appintegration.NewOrderPayloadBuilder(products, productMappings)
	submitService := appintegration.NewOrderSubmitService(
		orders, orderMappings, recorder, syncLogs, resolution, builder, erpClient, log)
	statusService := appintegration.NewOrderStatusService(orders, orderMappings, erpClient, log)
	mappingService := appintegration.NewProductMappingService(products, productMappings, erpClient, log)
	stockService := appintegration.NewStockSyncService(shops, products, productMappings, erpClient, shopifyClient, log)
	ingestService := appintegration.NewOrderIngestService(orders, customers, shops, shopifyClient, log)

	// Background sync scheduler
	syncScheduler := buildScheduler(cfg, log, submitService, statusService, stockService, mappingService)
	if syncScheduler != nil {
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
	}

	// HTTP server
	engine := buildEngine(cfg, log)
	webhookHandler := handler.NewWebhookHandler(
		shopifyClient, ingestService, submitService, dedup,
		shared.DefaultIdempotencyConfig().TTL, log)
	syncHandler := handler.NewSyncHandler(
		submitService, statusService, stockService, mappingService, ingestService, syncLogs, erpClient, log)
	systemHandler := handler.NewSystemHandler(db, erpClient)

	router.NewRouter(engine).
		Register(systemHandler).
		Register(webhookHandler).
		Register(syncHandler).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if syncScheduler != nil {
		if err := syncScheduler.Stop(ctx); err != nil {
			log.Error("Scheduler shutdown failed", zap.Error(err))
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}

// buildEngine assembles the gin engine with the shared middleware stack
func buildEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies configuration", zap.Error(err))
		}
	}
	return engine
}

// buildScheduler registers the periodic sync jobs. Returns nil when the
// scheduler is disabled by configuration.
func buildScheduler(
	cfg *config.Config,
	log *zap.Logger,
	submit *appintegration.OrderSubmitService,
	status *appintegration.OrderStatusService,
	stock *appintegration.StockSyncService,
	mappings *appintegration.ProductMappingService,
) *scheduler.SyncScheduler {
	if !cfg.Scheduler.Enabled {
		log.Info("Sync scheduler disabled by configuration")
		return nil
	}

	s, err := scheduler.NewSyncScheduler(scheduler.SyncSchedulerConfig{
		Enabled:    true,
		JobTimeout: cfg.Scheduler.JobTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to create sync scheduler", zap.Error(err))
	}

	jobs := []scheduler.Job{
		{
			Name:       scheduler.JobStockSync,
			Interval:   cfg.Scheduler.StockSyncInterval,
			RunAtStart: true,
			Run: func(ctx context.Context) error {
				_, err := stock.SyncStock(ctx)
				return err
			},
		},
		{
			Name:       scheduler.JobOrderStatus,
			Interval:   cfg.Scheduler.OrderStatusInterval,
			RunAtStart: true,
			Run: func(ctx context.Context) error {
				_, err := status.SyncStatuses(ctx)
				return err
			},
		},
		{
			Name:     scheduler.JobCatalogMap,
			Interval: cfg.Scheduler.CatalogMapInterval,
			Run: func(ctx context.Context) error {
				_, err := mappings.AutoMapByBarcode(ctx)
				return err
			},
		},
		{
			Name:     scheduler.JobPendingSubmit,
			Interval: cfg.Scheduler.OrderStatusInterval,
			Run: func(ctx context.Context) error {
				_, err := submit.SubmitPending(ctx)
				return err
			},
		},
	}
	for _, job := range jobs {
		if err := s.Register(job); err != nil {
			log.Fatal("Failed to register sync job",
				zap.String("job", job.Name),
				zap.Error(err),
			)
		}
	}
	return s
}
