package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/actions"
	"github.com/posadmin/backoffice/internal/infrastructure/cache"
	"github.com/posadmin/backoffice/internal/infrastructure/config"
	"github.com/posadmin/backoffice/internal/infrastructure/logger"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/storage"
	"github.com/posadmin/backoffice/internal/infrastructure/telemetry"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
	"github.com/posadmin/backoffice/internal/interfaces/http/router"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting back-office gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// Initialize tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Session cookie codec and manager
	codec, err := session.NewCodec(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		log.Fatal("Failed to initialize session codec", zap.Error(err))
	}
	manager := session.NewManager(codec, cfg.Cookie, cfg.Session.TTL, log)

	// Upstream clients. The plain client carries no bearer token; only the
	// login endpoint uses it.
	authedClient, err := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, upstream.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize upstream client", zap.Error(err))
	}
	plainClient, err := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout,
		upstream.WithLogger(log), upstream.Plain())
	if err != nil {
		log.Fatal("Failed to initialize upstream auth client", zap.Error(err))
	}

	// Idempotency store: Redis when configured, in-memory otherwise
	store := cache.NewIdempotencyStore(&cfg.Redis, log)
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	imageStore := newImageStore(cfg, log)

	deps := router.Deps{
		Config:     cfg,
		Logger:     log,
		Manager:    manager,
		Store:      store,
		Auth:       actions.NewAuth(plainClient, authedClient, log),
		Brands:     actions.NewBrands(authedClient, log),
		Customers:  actions.NewCustomers(authedClient, log),
		Products:   actions.NewProducts(authedClient, log),
		Stocks:     actions.NewStocks(authedClient, log),
		Staff:      actions.NewStaff(authedClient, log),
		Recipes:    actions.NewRecipes(authedClient, log),
		Invoices:   actions.NewInvoices(authedClient, log),
		Warehouses: actions.NewWarehouses(authedClient, log),
		Importer:   actions.NewImporter(authedClient, log),
		Uploader:   actions.NewUploader(imageStore, log),
		Version:    version,
	}

	engine, err := router.New(deps)
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newImageStore connects to object storage when it is configured and falls
// back to the in-memory stub otherwise, so image uploads degrade instead of
// blocking startup.
func newImageStore(cfg *config.Config, log *zap.Logger) storage.ImageStore {
	if cfg.Storage.Bucket == "" || cfg.Storage.AccessKey == "" {
		log.Warn("Object storage not configured, image uploads will not persist")
		return storage.NewStubImageStore()
	}

	s3Store, err := storage.NewS3ImageStore(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Warn("Failed to initialize object storage, falling back to stub", zap.Error(err))
		return storage.NewStubImageStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Store.EnsureBucket(ctx); err != nil {
		log.Warn("Failed to ensure storage bucket", zap.Error(err))
	}

	log.Info("Object storage connected", zap.String("bucket", s3Store.Bucket()))
	return s3Store
}
