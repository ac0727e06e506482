package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"docstore/docs"
	"docstore/internal/config"
	"docstore/internal/database"
	"docstore/internal/database/migration"
	handlers "docstore/internal/http/handler"
	"docstore/internal/http/middleware"
	"docstore/internal/logging"
	"docstore/internal/otel"
	"docstore/internal/repository/postgres"
	"docstore/internal/service"
	"docstore/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Document Store API
// @version 1.0
// @description Upload, list and download documents.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logging.New(os.Stdout, cfg.Location())
	logging.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := database.RegisterMetrics(reg, db, cfg.Database.Name); err != nil {
		fatal(log, "failed to register database metrics", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "failed to register http metrics", err)
	}

	// Blob storage: local disk by default, MinIO when STORAGE_BACKEND=minio
	blobs, err := storage.New(cfg.Storage)
	if err != nil {
		fatal(log, "failed to initialize blob storage", err)
	}

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(blobs, docRepo, service.Options{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		Logger:            log,
	})

	app := fiber.New(fiber.Config{
		AppName:               "docstore",
		BodyLimit:             int(cfg.Upload.MaxSizeBytes),
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		ExposeHeaders: "Content-Disposition," + middleware.RequestIDHeader,
	}))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, docSvc, cfg.Pagination)
	app.Get(middleware.MetricsPath, handlers.MetricsHandler(reg))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server_started", map[string]any{
			"component":       "http",
			"addr":            addr,
			"storage_backend": cfg.Storage.Backend,
			"max_upload_mb":   cfg.Upload.MaxSizeBytes >> 20,
		})
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			fatal(log, "failed to start server", err)
		}
	case <-ctx.Done():
	}

	log.Info("server_stopping", map[string]any{"component": "http"})
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server shutdown failed", err, map[string]any{"component": "http"})
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracer shutdown failed", err, map[string]any{"component": "otel"})
	}
}

func fatal(log *logging.Logger, msg string, err error) {
	log.Error(msg, err, map[string]any{"component": "main", "status": "error"})
	os.Exit(1)
}
